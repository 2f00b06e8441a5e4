package noticias_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"portalseguranca/internal/config"
	"portalseguranca/internal/config/apptest"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/security"
	"portalseguranca/internal/service/noticias"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newRouter(cfg *config.App) *gin.Engine {
	router := gin.New()
	public := router.Group("/api/noticias", middleware.OptionalAuth(cfg.Tokens))
	public.GET("", noticias.List(cfg))
	public.GET("/:id", noticias.GetByID(cfg))

	comite := router.Group("/api/noticias", middleware.Auth(cfg.Tokens, security.RoleComite))
	comite.POST("", noticias.Create(cfg))
	comite.PUT("/:id", noticias.Update(cfg))
	comite.DELETE("/:id", noticias.Delete(cfg))
	return router
}

func request(t *testing.T, router *gin.Engine, method, path, token, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func TestList_Visibility(t *testing.T) {
	cfg := apptest.New(t)
	apptest.Seed(t, cfg, store.Noticias, []entities.Noticia{
		{Id: 1, Titulo: "Publicada", Publicada: true, Categoria: "Monitoramento"},
		{Id: 2, Titulo: "Rascunho", Publicada: false},
		{Id: 3, Titulo: "Outra", Publicada: true, Categoria: "Eventos"},
	})
	router := newRouter(cfg)
	token := apptest.Token(t, cfg, 2, security.RoleComite)

	tests := []struct {
		name     string
		path     string
		token    string
		expected []int
	}{
		{"público vê só publicadas", "/api/noticias", "", []int{3, 1}},
		{"todas sem token é ignorado", "/api/noticias?todas=true", "", []int{3, 1}},
		{"todas com token inválido é ignorado", "/api/noticias?todas=true", "Bearer x.y.z", []int{3, 1}},
		{"todas com token", "/api/noticias?todas=true", token, []int{3, 2, 1}},
		{"categoria", "/api/noticias?categoria=eventos", "", []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, router, http.MethodGet, tt.path, tt.token, "", nil)
			require.Equal(t, http.StatusOK, w.Code)
			var got []int
			for _, n := range data[[]entities.Noticia](t, w) {
				got = append(got, n.Id)
			}
			assert.Equal(t, tt.expected, got)
		})
	}

	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodGet, "/api/noticias/2", "", "", nil).Code)
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodGet, "/api/noticias/2", token, "", nil).Code)
}

func TestCreateUpdateDelete(t *testing.T) {
	cfg := apptest.New(t)
	router := newRouter(cfg)
	token := apptest.Token(t, cfg, 2, security.RoleComite)

	// sem token
	w := request(t, router, http.MethodPost, "/api/noticias", "", "application/json", bytes.NewBufferString(`{"titulo":"a","conteudo":"b"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// JSON, publicada por padrão
	w = request(t, router, http.MethodPost, "/api/noticias", token, "application/json", bytes.NewBufferString(`{"titulo":"Novas câmeras","conteudo":"Texto"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	n := data[entities.Noticia](t, w)
	assert.Equal(t, 1, n.Id)
	assert.True(t, n.Publicada)

	// multipart com imagem e rascunho
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("dados", `{"titulo":"Operação","conteudo":"Texto","publicada":false}`))
	fw, err := mw.CreateFormFile("imagem", "capa.png")
	require.NoError(t, err)
	_, err = fw.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w = request(t, router, http.MethodPost, "/api/noticias", token, mw.FormDataContentType(), &buf)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	n = data[entities.Noticia](t, w)
	assert.Equal(t, 2, n.Id)
	assert.False(t, n.Publicada)
	require.True(t, strings.HasPrefix(n.Imagem, "/uploads/"))
	imagemPath := filepath.Join(cfg.Settings.UploadDir, filepath.Base(n.Imagem))
	_, err = os.Stat(imagemPath)
	require.NoError(t, err)

	// PDF não serve como imagem
	buf.Reset()
	mw = multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("dados", `{"titulo":"Operação","conteudo":"Texto"}`))
	fw, err = mw.CreateFormFile("imagem", "capa.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4\n%%EOF\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	w = request(t, router, http.MethodPut, "/api/noticias/2", token, mw.FormDataContentType(), &buf)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	// update mantém a imagem e publica
	w = request(t, router, http.MethodPut, "/api/noticias/2", token, "application/json", bytes.NewBufferString(`{"titulo":"Operação Verão","conteudo":"Texto","publicada":true}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	n = data[entities.Noticia](t, w)
	assert.Equal(t, "Operação Verão", n.Titulo)
	assert.True(t, n.Publicada)
	assert.Equal(t, "2025-03-15T17:00:00.000Z", n.UpdatedAt)
	assert.NotEmpty(t, n.Imagem)

	assert.Equal(t, http.StatusBadRequest, request(t, router, http.MethodPut, "/api/noticias/2", token, "application/json", bytes.NewBufferString(`{"titulo":"sem conteúdo"}`)).Code)
	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodPut, "/api/noticias/9", token, "application/json", bytes.NewBufferString(`{"titulo":"a","conteudo":"b"}`)).Code)

	// delete remove a imagem do disco
	assert.Equal(t, http.StatusOK, request(t, router, http.MethodDelete, "/api/noticias/2", token, "", nil).Code)
	_, err = os.Stat(imagemPath)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, http.StatusNotFound, request(t, router, http.MethodDelete, "/api/noticias/2", token, "", nil).Code)
}
