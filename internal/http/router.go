package http

import (
	"context"
	"net/http"
	"time"

	"realty_leads_backend/internal/http/middleware"
	"realty_leads_backend/platform/config"
	"realty_leads_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the gin engine with shared middleware, the health
// endpoint, and every module's routes mounted under /api.
func NewRouter(cfg config.HTTPConfig, log *logger.Logger, health HealthChecker, modules ...Module) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestTimer(log))
	engine.Use(cors.New(corsConfig(cfg)))

	engine.GET("/api/health", func(c *gin.Context) {
		if err := health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	for _, m := range modules {
		m.RegisterRoutes(api)
		log.Info("routes registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg config.HTTPConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
		return c
	}
	if origins := cfg.GetCORSOrigins(); len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return c
}
