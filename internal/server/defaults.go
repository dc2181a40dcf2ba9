package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetDefaults(c *gin.Context) {
	stored, err := s.ws.StoredDefaults(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if stored == nil {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stored})
}

// SaveDefaults snapshots the reusable fields of the working draft.
func (s *Server) SaveDefaults(c *gin.Context) {
	if err := s.ws.SaveDefaults(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"saved": true}})
}

func (s *Server) ApplyDefaults(c *gin.Context) {
	d, applied, err := s.ws.ApplyDefaults(c.Request.Context())
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
