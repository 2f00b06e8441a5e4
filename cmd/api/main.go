package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"portalseguranca/internal/config"
	"portalseguranca/internal/jobs"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/routes"
	"portalseguranca/internal/service/usuarios"
	"portalseguranca/internal/telemetry"
	"syscall"
	"time"

	_ "portalseguranca/docs"

	"github.com/gin-gonic/gin"
)

// @title           Portal Segurança API
// @version         1.0
// @description     API do portal municipal de segurança pública: denúncias, câmeras, notícias e estatísticas.
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Token no formato: Bearer {token}
func main() {

	if err := config.LoadEnvFile(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Error loading settings: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	cfg, err := config.NewConfig(ctx, settings)
	cancel()
	if err != nil {
		if cfg != nil && cfg.Logger != nil {
			cfg.Logger.Fatal("Error creating config", err)
			cfg.CloseAll()
		}
		log.Fatalf("Error creating config: %v", err)
	}
	defer cfg.CloseAll()

	cfg.Logger.Info(fmt.Sprintf("Starting server with execution ID %s", cfg.Logger.ExecutionID))

	telemetry.InitMetrics()

	if err := usuarios.BootstrapAdmin(context.Background(), cfg); err != nil {
		cfg.Logger.Error("Error creating bootstrap admin", err)
	}

	scheduler, err := jobs.Start(cfg)
	if err != nil {
		cfg.Logger.Error("Stats job disabled", err)
	} else {
		defer func() { <-scheduler.Stop().Done() }()
	}

	engine := middleware.SetupServer(cfg)

	routes.InitiateRoutes(engine, cfg)

	startServer(engine, cfg)
}

func startServer(engine *gin.Engine, cfg *config.App) {
	srv := &http.Server{
		Addr:              ":" + cfg.Settings.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.Settings.TLSEnabled() {
			cfg.Logger.Info("Starting server with TLS...", map[string]interface{}{"port": cfg.Settings.Port})
			errCh <- srv.ListenAndServeTLS(cfg.Settings.CertFile, cfg.Settings.KeyFile)
			return
		}
		cfg.Logger.Info("Starting server...", map[string]interface{}{"port": cfg.Settings.Port})
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			cfg.Logger.Fatal("Error starting server", err)
			log.Printf("Error starting server: %v", err)
		}
		return
	case sig := <-quit:
		cfg.Logger.Info("Shutting down server", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		cfg.Logger.Error("Error during shutdown", err)
	}
}
