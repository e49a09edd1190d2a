package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	pipeline *Pipeline
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, pipeline *Pipeline) *Router {
	return &Router{
		cfg:      cfg,
		pipeline: pipeline,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	// Rendered artifacts are served straight off the workspace
	e.Static(rt.cfg.Server.StaticPrefix, rt.cfg.Server.OutputDir)

	v1 := e.Group("/v1")
	rt.setupPipelineRoutes(v1)
}

// setupPipelineRoutes configures the stage and autopilot endpoints
func (rt *Router) setupPipelineRoutes(g *echo.Group) {
	g.POST("/script", rt.pipeline.GenerateScript)
	g.POST("/audio", rt.pipeline.GenerateAudio)
	g.POST("/assets", rt.pipeline.GenerateAssets)
	g.POST("/transcript", rt.pipeline.GenerateTranscript)
	g.POST("/mix", rt.pipeline.MixVideo)
	g.POST("/autopilot", rt.pipeline.Autopilot)
	g.GET("/runs/:id", rt.pipeline.GetRun)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
