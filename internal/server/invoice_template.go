package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type createTemplateRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateInvoiceTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ws.SaveTemplate(c.Request.Context(), req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoiceTemplates(c *gin.Context) {
	resp, err := s.ws.Templates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ApplyInvoiceTemplate merges a template into the working draft. An unknown id
// leaves the draft unchanged and reports applied=false.
func (s *Server) ApplyInvoiceTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	d, applied, err := s.ws.ApplyTemplate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"applied": applied,
		"draft":   d,
		"totals":  s.ws.Totals(),
	}})
}

func (s *Server) DeleteInvoiceTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	deleted, err := s.ws.DeleteTemplate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
