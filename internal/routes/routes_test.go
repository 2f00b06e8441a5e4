package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"portalseguranca/internal/config/apptest"
	"portalseguranca/internal/security"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateRoutes_Access(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := apptest.New(t)
	engine := gin.New()
	InitiateRoutes(engine, cfg)

	admin := apptest.Token(t, cfg, 1, security.RoleAdmin)
	comite := apptest.Token(t, cfg, 2, security.RoleComite)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"stats is public", http.MethodGet, "/api/analyses/stats", "", http.StatusOK},
		{"cameras are public", http.MethodGet, "/api/cameras", "", http.StatusOK},
		{"noticias are public", http.MethodGet, "/api/noticias", "", http.StatusOK},
		{"healthcheck", http.MethodGet, "/healthcheck/", "", http.StatusOK},
		{"relatorio requires token", http.MethodGet, "/api/analyses/relatorio", "", http.StatusUnauthorized},
		{"denuncias list requires token", http.MethodGet, "/api/denuncias", "", http.StatusUnauthorized},
		{"denuncias list with comite", http.MethodGet, "/api/denuncias", comite, http.StatusOK},
		{"usuarios forbidden for comite", http.MethodGet, "/api/usuarios", comite, http.StatusForbidden},
		{"usuarios with admin", http.MethodGet, "/api/usuarios", admin, http.StatusOK},
		{"admin reaches comite routes", http.MethodGet, "/api/denuncias/busca?q=luz", admin, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nada", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestInitiateRoutes_ServesUploadsAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := apptest.New(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Settings.UploadDir, "foto.txt"), []byte("conteudo"), 0o644))

	engine := gin.New()
	InitiateRoutes(engine, cfg)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/foto.txt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "conteudo", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portal_seguranca_cameras_disponibilidade_percent")
}
