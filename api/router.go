// Package api wires the gin engine: middleware chain, route groups and the
// controllers that register on them.
package api

import (
	"github.com/nesmy/users-api/api/health"
	"github.com/nesmy/users-api/api/middleware"
	"github.com/nesmy/users-api/api/user"
	"github.com/nesmy/users-api/config"

	"github.com/gin-gonic/gin"
)

// Router holds the engine and the registered controllers.
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	userController   *user.Controller
}

// NewRouter creates the engine with the middleware chain installed. The
// middleware order matters: the request id must exist before anything logs,
// and recovery must wrap everything downstream.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	userController *user.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		userController:   userController,
	}
}

// SetupRoutes registers all routes.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.userController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
