package render

// Renderer turns a laid out document into markup.
type Renderer interface {
	// RenderMarkup returns only the invoice element, suitable for embedding.
	RenderMarkup(doc Document) (string, error)
	// RenderHTML returns a standalone page including styles.
	RenderHTML(doc Document) (string, error)
}
