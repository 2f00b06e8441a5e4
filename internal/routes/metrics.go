package routes

import (
	"portalseguranca/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupMetricsRoutes expõe as métricas Prometheus em /metrics
func SetupMetricsRoutes(engine *gin.Engine) {
	telemetry.InitMetrics()

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
