// Package api assembles the gin engine for the front-end edge.
package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/bibocomdigital/bibomarket-frontend/internal/api/handler"
	"github.com/bibocomdigital/bibomarket-frontend/internal/api/middleware"
	"github.com/bibocomdigital/bibomarket-frontend/internal/config"
)

// NewRouter builds the engine with the full middleware chain and the
// follow routes mounted under /api/v1.
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware("bibomarket-frontend"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.WithSession())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.GET("/suggestions", middleware.RequireSession(), h.Suggestions)
		users.GET("/:user_id/followers", h.ListFollowers)
		users.GET("/:user_id/following", h.ListFollowing)
		users.GET("/:user_id/relationship", h.Relationship)
		users.POST("/:user_id/follow",
			middleware.RequireSession(),
			middleware.RateLimit(cfg.Server.ToggleRate, cfg.Server.ToggleBurst),
			h.ToggleFollow)
	}

	return r
}
