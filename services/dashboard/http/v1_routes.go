package http

// registerV1Routes sets up the v1 API.
// Groups: /api/v1/core, /api/v1/views, /api/v1/charts, /api/v1/export
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())
	if s.cfg.BearerToken != "" {
		v1.Use(bearerAuthMiddleware(s.cfg.BearerToken))
	}

	// Core endpoints - the merged table
	core := v1.Group("/core")
	{
		core.GET("/countries", s.handleV1Countries)
		core.GET("/records", s.handleV1Records)
	}

	v1.GET("/views/:mode", s.handleV1View)

	// Rendering endpoints share the render limiter
	rendered := v1.Group("", s.rateLimited())
	{
		rendered.GET("/charts/:mode", s.handleChart)
		rendered.GET("/export/:mode", s.handleExport)
	}
}
