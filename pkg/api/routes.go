package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fortimon/pkg/config"
	"fortimon/pkg/plugin"
)

// NewRouter wires the HTTP surface of the check server.
func NewRouter(cfg *config.Config, registry *plugin.Registry) *gin.Engine {
	metrics := NewMetrics(cfg.MetricsNamespace)
	checks := NewCheckHandler(cfg, registry, metrics)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api/v1")
	{
		checks.RegisterRoutes(apiGroup)
	}

	return r
}
