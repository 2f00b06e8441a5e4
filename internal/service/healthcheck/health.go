package healthcheck

import (
	"context"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"time"

	"github.com/gin-gonic/gin"
)

// Version da API reportada no healthcheck
const Version = "1.0.0"

var startedAt = time.Now()

// Health - Healthcheck endpoint
// @Summary      Healthcheck
// @Description  Verifica o store e, quando configurados, Redis e Elasticsearch. Store fora do ar responde 503.
// @Tags         healthcheck
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /healthcheck/ [get]
func Health(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status, code := "OK", http.StatusOK
		checks := map[string]string{}

		var cameras []entities.Camera
		if err := cfg.Store.Load(ctx, store.Cameras, &cameras); err != nil {
			cfg.Logger.Error("Healthcheck: store unavailable", err)
			checks["store"] = "DOWN"
			status, code = "DOWN", http.StatusServiceUnavailable
		} else {
			checks["store"] = "UP"
		}

		if cfg.Redis != nil {
			if err := cfg.Redis.Ping(ctx); err != nil {
				cfg.Logger.Error("Healthcheck: redis unavailable", err)
				checks["redis"] = "DOWN"
				if code == http.StatusOK {
					status = "DEGRADED"
				}
			} else {
				checks["redis"] = "UP"
			}
		} else {
			checks["redis"] = "DISABLED"
		}

		if cfg.ES != nil {
			if err := cfg.ES.Ping(ctx); err != nil {
				cfg.Logger.Error("Healthcheck: elasticsearch unavailable", err)
				checks["elasticsearch"] = "DOWN"
				if code == http.StatusOK {
					status = "DEGRADED"
				}
			} else {
				checks["elasticsearch"] = "UP"
			}
		} else {
			checks["elasticsearch"] = "DISABLED"
		}

		uptime := time.Since(startedAt).Round(time.Second).String()
		c.JSON(code, dto.NewHealthResponse(c, status, "Portal Segurança API", Version, uptime, checks))
	}
}
