package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fatura/internal/i18n"
)

type setLanguageRequest struct {
	Language string `json:"language"`
}

type setThemeModeRequest struct {
	ThemeMode string `json:"themeMode" binding:"required"`
}

type setTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

func (s *Server) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.ws.State()})
}

// SetLanguage switches the label language. An empty language is negotiated from
// the Accept-Language header.
func (s *Server) SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	raw := strings.TrimSpace(req.Language)
	if raw == "" {
		current := s.ws.State().Language
		raw = string(i18n.Negotiate(c.GetHeader("Accept-Language"), current))
	}

	language, err := s.ws.SetLanguage(raw)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"language": language}})
}

func (s *Server) SetThemeMode(c *gin.Context) {
	var req setThemeModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mode, err := s.ws.SetThemeMode(req.ThemeMode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"themeMode": mode}})
}

func (s *Server) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"themeMode": s.ws.ToggleTheme()}})
}

func (s *Server) SetTab(c *gin.Context) {
	var req setTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tab, err := s.ws.SetTab(req.Tab)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tab": tab}})
}

func (s *Server) GetLabels(c *gin.Context) {
	language, labels := s.ws.Labels()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"language": language, "labels": labels}})
}
