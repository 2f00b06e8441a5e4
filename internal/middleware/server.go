package middleware

import (
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SetupServer sets up a new gin engine with the semaphore, cors, rate limit,
// logger, request id, ssl and recovery middlewares
func SetupServer(cfg *config.App) (engine *gin.Engine) {
	if cfg.Settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine = gin.New()
	engine.MaxMultipartMemory = cfg.Settings.UploadMaxMB << 20

	setupSemaphore(engine, cfg.Settings.MaxRequestCountGlobal)
	setupCors(engine, cfg.Settings.CorsOrigins)
	if cfg.Redis != nil {
		setupRedisDB(engine, cfg)
	}
	setupLogger(engine, cfg.Logger)
	setupIds(engine)

	if cfg.Settings.TLSEnabled() {
		setupSSL(engine, cfg)
	}

	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		cfg.Logger.Error("panic recovered", nil, map[string]interface{}{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			c,
			http.StatusInternalServerError,
			"Internal Server Error",
			"Erro interno do servidor",
			nil,
		))
	}))

	return engine
}

// setupCors libera as origens de CORS_ORIGINS; "*" libera todas
func setupCors(engine *gin.Engine, origins []string) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && strings.TrimSpace(origins[0]) == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}

	engine.Use(cors.New(corsCfg))
}

// setupSSL is a function that sets up the SSL configuration for the server
func setupSSL(engine *gin.Engine, cfg *config.App) {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          true,
		SSLHost:              ":" + cfg.Settings.Port,
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		IsDevelopment:        !cfg.Settings.IsProduction(),
	})

	engine.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			cfg.Logger.Warn("Error trying make a secure https: " + err.Error())
			c.Abort()
			return
		}
		// redirect feito pelo secure
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	})
}
