package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/draft"
	"github.com/smallbiznis/fatura/internal/observability/logger"
	"go.uber.org/zap"
)

// updateFieldRequest carries raw form input. Numeric fields are coerced, never rejected.
type updateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type draftResponse struct {
	Draft  invoicedomain.Draft  `json:"draft"`
	Totals invoicedomain.Totals `json:"totals"`
}

func (s *Server) respondDraft(c *gin.Context, status int, d invoicedomain.Draft) {
	c.JSON(status, gin.H{"data": draftResponse{Draft: d, Totals: s.ws.Totals()}})
}

func (s *Server) GetDraft(c *gin.Context) {
	s.respondDraft(c, http.StatusOK, s.ws.Draft())
}

func (s *Server) GetDraftTotals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.ws.Totals()})
}

func (s *Server) NewInvoice(c *gin.Context) {
	d, err := s.ws.NewInvoice(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusCreated, d)
}

func (s *Server) UpdateDraftField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	field := strings.TrimSpace(req.Field)
	d, err := s.ws.Edit(c.Request.Context(), "field", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.SetField(d, field, req.Value)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}

func (s *Server) AddItem(c *gin.Context) {
	d, err := s.ws.Edit(c.Request.Context(), "item.add", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.AddItem(d), nil
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusCreated, d)
}

func (s *Server) UpdateItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	d, err := s.ws.Edit(c.Request.Context(), "item.update", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.UpdateItem(d, index, strings.TrimSpace(req.Field), req.Value)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}

func (s *Server) RemoveItem(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	d, err := s.ws.Edit(c.Request.Context(), "item.remove", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.RemoveItem(d, index)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}

func (s *Server) AddExtraSection(c *gin.Context) {
	d, err := s.ws.Edit(c.Request.Context(), "extra.add", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.AddExtraSection(d), nil
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusCreated, d)
}

func (s *Server) UpdateExtraSection(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	d, err := s.ws.Edit(c.Request.Context(), "extra.update", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.UpdateExtraSection(d, index, strings.TrimSpace(req.Field), req.Value)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}

func (s *Server) RemoveExtraSection(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	d, err := s.ws.Edit(c.Request.Context(), "extra.remove", func(d invoicedomain.Draft) (invoicedomain.Draft, error) {
		return draft.RemoveExtraSection(d, index)
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}

func (s *Server) SaveDraftToHistory(c *gin.Context) {
	ctx := c.Request.Context()
	replaced := s.ws.SaveToHistory(ctx)
	d := s.ws.Draft()

	logger.WithInvoice(logger.WithContext(ctx, s.log), d.ID, d.InvoiceNumber).
		Info("draft saved to history", zap.Bool("replaced", replaced))

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":       d.ID,
		"replaced": replaced,
	}})
}

// PreviewDraft renders the draft as a standalone page, or only the invoice element
// when embed=true.
func (s *Server) PreviewDraft(c *gin.Context) {
	embed, err := parseOptionalBool(c.Query("embed"))
	if err != nil {
		AbortWithError(c, newValidationError("embed", "invalid_embed", "embed must be a boolean"))
		return
	}

	var out string
	if embed != nil && *embed {
		out, err = s.ws.Markup()
	} else {
		out, err = s.ws.PreviewHTML()
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) PrintDraft(c *gin.Context) {
	out, err := s.ws.PrintHTML()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
