package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fatura/internal/history"
	"github.com/smallbiznis/fatura/pkg/pagination"
)

func (s *Server) ListHistory(c *gin.Context) {
	var req pagination.Pagination
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items, pageInfo, err := pagination.Page(s.ws.History(), req, func(entry history.Summary) string {
		return entry.ID
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      items,
		"page_info": pageInfo,
	})
}

func (s *Server) LoadHistoryEntry(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	d, err := s.ws.LoadFromHistory(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondDraft(c, http.StatusOK, d)
}
