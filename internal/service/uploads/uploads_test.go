package uploads_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"portalseguranca/internal/config/apptest"
	"portalseguranca/internal/service/uploads"
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

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name           string
		field          string
		filename       string
		content        []byte
		expectedStatus int
		validateFunc   func(t *testing.T, uploadDir string, body map[string]interface{})
	}{
		{
			name:           "png aceito",
			field:          "arquivo",
			filename:       "foto.PNG",
			content:        pngHeader,
			expectedStatus: http.StatusCreated,
			validateFunc: func(t *testing.T, uploadDir string, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "image/png", data["mimeType"])
				p := data["path"].(string)
				assert.True(t, strings.HasPrefix(p, "/uploads/"))
				assert.True(t, strings.HasSuffix(p, ".png"))
				_, err := os.Stat(filepath.Join(uploadDir, filepath.Base(p)))
				assert.NoError(t, err)
			},
		},
		{
			name:           "pdf sem extensão recebe a do conteúdo",
			field:          "arquivo",
			filename:       "boletim",
			content:        []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"),
			expectedStatus: http.StatusCreated,
			validateFunc: func(t *testing.T, _ string, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "application/pdf", data["mimeType"])
				assert.True(t, strings.HasSuffix(data["path"].(string), ".pdf"))
			},
		},
		{
			name:           "texto disfarçado de imagem",
			field:          "arquivo",
			filename:       "foto.jpg",
			content:        []byte("isto não é uma imagem"),
			expectedStatus: http.StatusUnsupportedMediaType,
			validateFunc: func(t *testing.T, uploadDir string, body map[string]interface{}) {
				entries, _ := os.ReadDir(uploadDir)
				assert.Empty(t, entries)
			},
		},
		{
			name:           "acima do limite",
			field:          "arquivo",
			filename:       "grande.png",
			content:        append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...),
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "campo ausente",
			field:          "outro",
			filename:       "foto.png",
			content:        pngHeader,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := apptest.New(t)
			router := gin.New()
			router.POST("/api/uploads", uploads.Upload(cfg))

			body, contentType := multipartBody(t, tt.field, tt.filename, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateFunc != nil {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				tt.validateFunc(t, cfg.Settings.UploadDir, resp)
			}
		})
	}
}

func TestRemove_IgnoresForeignPaths(t *testing.T) {
	cfg := apptest.New(t)
	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	uploads.Remove(cfg, outside)
	uploads.Remove(cfg, "/uploads/../../"+filepath.Base(outside))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
