package routes

import (
	"portalseguranca/internal/config"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/security"
	"portalseguranca/internal/service/analyses"
	"portalseguranca/internal/service/cameras"
	"portalseguranca/internal/service/denuncias"
	"portalseguranca/internal/service/healthcheck"
	"portalseguranca/internal/service/noticias"
	"portalseguranca/internal/service/uploads"
	"portalseguranca/internal/service/usuarios"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitiateRoutes is a function that initializes the routes for the application
func InitiateRoutes(engine *gin.Engine, cfg *config.App) {

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthGroup := engine.Group("/healthcheck")
	{
		healthGroup.GET("/", healthcheck.Health(cfg))
	}

	SetupMetricsRoutes(engine)

	engine.Static(uploads.PublicPrefix, cfg.Settings.UploadDir)

	api := engine.Group("/api")

	comite := middleware.Auth(cfg.Tokens, security.RoleComite)
	admin := middleware.Auth(cfg.Tokens, security.RoleAdmin)

	// Dashboard: estatísticas públicas, relatório só para o comitê
	analysesGroup := api.Group("/analyses")
	{
		analysesGroup.GET("/stats", analyses.GetStats(cfg))
		analysesGroup.GET("/relatorio", comite, analyses.GetRelatorio(cfg))
	}

	// Denúncias: cidadão registra, comitê gerencia
	denunciasGroup := api.Group("/denuncias")
	{
		denunciasGroup.POST("", denuncias.Create(cfg))

		denunciasGroup.GET("", comite, denuncias.List(cfg))
		denunciasGroup.GET("/busca", comite, denuncias.Search(cfg))
		denunciasGroup.GET("/:id", comite, denuncias.GetByID(cfg))
		denunciasGroup.PUT("/:id", comite, denuncias.Update(cfg))
		denunciasGroup.PATCH("/:id/status", comite, denuncias.PatchStatus(cfg))
		denunciasGroup.DELETE("/:id", comite, denuncias.Delete(cfg))
	}

	camerasGroup := api.Group("/cameras")
	{
		camerasGroup.GET("", cameras.List(cfg))
		camerasGroup.GET("/:id", cameras.GetByID(cfg))

		camerasGroup.POST("", comite, cameras.Create(cfg))
		camerasGroup.PUT("/:id", comite, cameras.Update(cfg))
		camerasGroup.DELETE("/:id", comite, cameras.Delete(cfg))
	}

	// Notícias: rascunhos só aparecem para quem tem token
	noticiasGroup := api.Group("/noticias")
	{
		noticiasGroup.GET("", middleware.OptionalAuth(cfg.Tokens), noticias.List(cfg))
		noticiasGroup.GET("/:id", middleware.OptionalAuth(cfg.Tokens), noticias.GetByID(cfg))

		noticiasGroup.POST("", comite, noticias.Create(cfg))
		noticiasGroup.PUT("/:id", comite, noticias.Update(cfg))
		noticiasGroup.DELETE("/:id", comite, noticias.Delete(cfg))
	}

	api.POST("/uploads", comite, uploads.Upload(cfg))

	authRoutes := api.Group("/auth")
	{
		// Público
		authRoutes.POST("/login", usuarios.LoginHandler(cfg))

		// Autenticados (qualquer perfil)
		authRoutes.GET("/me", comite, usuarios.Me(cfg))
		authRoutes.POST("/change-password", comite, usuarios.ChangePassword(cfg))
	}

	// Gerenciamento de usuários: apenas ADMIN
	usuariosGroup := api.Group("/usuarios", admin)
	{
		usuariosGroup.GET("", usuarios.List(cfg))
		usuariosGroup.POST("", usuarios.Create(cfg))
		usuariosGroup.DELETE("/:id", usuarios.Delete(cfg))
	}
}
