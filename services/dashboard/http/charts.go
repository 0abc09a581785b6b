package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/cache"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/render"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectionFromRequest reads :mode and ?country=.
func selectionFromRequest(c *gin.Context) (views.Selection, error) {
	mode, err := views.ParseMode(c.Param("mode"))
	if err != nil {
		return views.Selection{}, err
	}
	return views.Selection{Mode: mode, Country: c.Query("country")}, nil
}

// buildFigure answers 400 for a bad request and 422 for a selection that
// cannot be drawn. The bool reports whether the caller may continue.
func (s *Server) buildFigure(c *gin.Context) (views.Figure, bool) {
	sel, err := selectionFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return views.Figure{}, false
	}

	fig, err := views.Build(s.dataset, sel)
	if err != nil {
		respondBuildError(c, err)
		return views.Figure{}, false
	}
	return fig, true
}

func respondBuildError(c *gin.Context, err error) {
	_ = c.Error(err)

	var selErr *views.SelectionError
	if errors.As(err, &selErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": selErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// handleChart returns the rendered image for a selection.
// GET /charts/:mode and /api/v1/charts/:mode
func (s *Server) handleChart(c *gin.Context) {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fig, ok := s.buildFigure(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	data, hit, err := s.renderChart(ctx, fig, format)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (s *Server) renderChart(ctx context.Context, fig views.Figure, format render.Format) ([]byte, bool, error) {
	key := cache.ChartKey{
		Version: s.dataset.Version(),
		Mode:    fig.Mode.Slug(),
		Format:  string(format),
		Width:   s.cfg.ChartWidth,
		Height:  s.cfg.ChartHeight,
	}
	if fig.Radar != nil {
		key.Country = fig.Radar.Country
	}

	return s.cache.GetOrRender(ctx, key, func() ([]byte, error) {
		var buf bytes.Buffer
		if err := s.plotter.Render(fig, format, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// handleExport streams an xlsx workbook for a selection.
// GET /api/v1/export/:mode
func (s *Server) handleExport(c *gin.Context) {
	fig, ok := s.buildFigure(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteWorkbook(&buf, s.dataset, fig); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gfsi-"+fig.Mode.Slug()+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
