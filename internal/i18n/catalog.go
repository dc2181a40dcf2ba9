package i18n

import (
	"golang.org/x/text/language"
)

// OverrideSource supplies operator label overrides keyed by language code.
type OverrideSource interface {
	Labels() map[string]map[string]string
}

// Catalog resolves labels, preferring overrides over the built-in tables.
type Catalog struct {
	overrides OverrideSource
}

// NewCatalog returns a Catalog. src may be nil.
func NewCatalog(src OverrideSource) *Catalog {
	return &Catalog{overrides: src}
}

// Lookup returns the label for key, or key itself when no table defines it.
func (c *Catalog) Lookup(lang Language, key string) string {
	if c != nil && c.overrides != nil {
		if table, ok := c.overrides.Labels()[string(lang)]; ok {
			if value, ok := table[key]; ok {
				return value
			}
		}
	}
	if value, ok := base[lang][key]; ok {
		return value
	}
	return key
}

// Table returns the full resolved table for lang.
func (c *Catalog) Table(lang Language) Table {
	out := make(Table, len(base[lang]))
	for key := range base[lang] {
		out[key] = c.Lookup(lang, key)
	}
	return out
}

var (
	supportedTags = []language.Tag{language.Turkish, language.English}
	matcher       = language.NewMatcher(supportedTags)
)

// Negotiate picks a supported language from an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Language) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Languages[index]
}
