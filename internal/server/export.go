package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExportDraft starts a PDF export of the draft as it is now. Later edits do not
// reach the file.
func (s *Server) ExportDraft(c *gin.Context) {
	job, err := s.ws.Export()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("export_job_id", job.ID)

	c.JSON(http.StatusAccepted, gin.H{"data": job.View()})
}

func (s *Server) GetExport(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	job, ok := s.ws.ExportJob(id)
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.Set("export_job_id", job.ID)

	c.JSON(http.StatusOK, gin.H{"data": job.View()})
}
