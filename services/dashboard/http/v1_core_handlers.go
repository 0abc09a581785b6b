package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
)

// handleV1Countries returns the countries present in both years
// GET /api/v1/core/countries
func (s *Server) handleV1Countries(c *gin.Context) {
	countries := s.dataset.Countries()
	if countries == nil {
		countries = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": countries,
		"meta": gin.H{
			"count": len(countries),
		},
	})
}

// handleV1Records returns the merged table
// GET /api/v1/core/records
func (s *Server) handleV1Records(c *gin.Context) {
	records := s.dataset.Records()
	if records == nil {
		records = []gfsi.MergedRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"meta": gin.H{
			"count":   len(records),
			"columns": s.dataset.Columns(),
			"stats":   s.dataset.Stats(),
			"version": s.dataset.Version(),
		},
	})
}
