package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleV1View returns the chart description for a selection
// GET /api/v1/views/:mode
func (s *Server) handleV1View(c *gin.Context) {
	fig, ok := s.buildFigure(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": fig,
		"meta": gin.H{
			"version": s.dataset.Version(),
		},
	})
}
