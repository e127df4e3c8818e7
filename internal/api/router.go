package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charlesng35/pitwall/internal/app"
	"github.com/charlesng35/pitwall/internal/handlers"
	"github.com/charlesng35/pitwall/internal/middleware"
	"github.com/charlesng35/pitwall/internal/monitoring"
)

// NewRouter builds the Gin engine for the operational surface: probes and
// Prometheus metrics. Disabled endpoints fall through to the JSON 404 handler.
func NewRouter(cfg *app.Config, health *monitoring.HealthManager) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config must be provided")
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	if cfg.Monitoring.Health.Enabled {
		probes := handlers.NewHealthHandler(health)
		r.GET("/health", probes.Liveness)
		r.GET("/health/ready", probes.Readiness)
	}

	if cfg.Monitoring.Prometheus.Enabled {
		r.GET(metricsEndpoint(cfg), gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

func metricsEndpoint(cfg *app.Config) string {
	endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
	if endpoint == "" {
		return "/metrics"
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return endpoint
}
