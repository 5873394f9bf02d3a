package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagesage/core/internal/middleware"
	"github.com/pagesage/core/internal/modules/ai"
	"github.com/pagesage/core/internal/modules/content"
	pkgredis "github.com/pagesage/core/internal/pkg/redis"
	"github.com/pagesage/core/internal/pkg/response"
	"github.com/pagesage/core/internal/pkg/tokenizer"
)

func (a *App) registerRoutes(rc *pkgredis.Client, contentSvc *content.Service, aiSvc *ai.Service, truncator *tokenizer.Truncator) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		if db, err := a.db.DB(); err != nil || db.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "jobs": a.sched.List()})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	// Opt-in replay protection for mutating routes (requires Redis).
	r.Use(middleware.Idempotence(rc.Raw()))

	root := r.Group("")
	content.NewHandler(contentSvc, aiSvc, truncator, a.cfg.Content.MaxTokens, a.logger).RegisterRoutes(root)
	ai.NewHandler(aiSvc, a.logger).RegisterRoutes(root)
}
