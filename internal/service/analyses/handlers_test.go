package analyses_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"portalseguranca/internal/config/apptest"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/jsonfile"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/service/analyses"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetStats(t *testing.T) {
	cfg := apptest.New(t)
	apptest.Seed(t, cfg, store.Denuncias, []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-03-15T10:00:00-03:00", Status: "resolvida", Prioridade: "alta", TipoOcorrencia: "Furto"},
		{Id: 2, CreatedAt: "2025-02-10T10:00:00-03:00", Status: "pendente"},
	})
	apptest.Seed(t, cfg, store.Cameras, []entities.Camera{
		{Id: 1, Status: "online", Type: "PTZ"},
		{Id: 2, Status: "offline"},
	})

	tests := []struct {
		name           string
		corrupt        bool
		expectedStatus int
		validateFunc   func(t *testing.T, body []byte)
	}{
		{
			name:           "snapshot como corpo puro",
			expectedStatus: http.StatusOK,
			validateFunc: func(t *testing.T, body []byte) {
				var resp map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Contains(t, resp, "denuncias")
				assert.NotContains(t, resp, "success")

				var snap struct {
					Denuncias struct {
						Total          int `json:"total"`
						Hoje           int `json:"hoje"`
						TaxaResolucao  int `json:"taxaResolucao"`
						VariacaoMensal int `json:"variacaoMensal"`
					} `json:"denuncias"`
					Cameras struct {
						TaxaDisponibilidade int `json:"taxaDisponibilidade"`
					} `json:"cameras"`
					UltimaAtualizacao string `json:"ultimaAtualizacao"`
				}
				require.NoError(t, json.Unmarshal(body, &snap))
				assert.Equal(t, 2, snap.Denuncias.Total)
				assert.Equal(t, 1, snap.Denuncias.Hoje)
				assert.Equal(t, 50, snap.Denuncias.TaxaResolucao)
				assert.Equal(t, 0, snap.Denuncias.VariacaoMensal)
				assert.Equal(t, 50, snap.Cameras.TaxaDisponibilidade)
				assert.Equal(t, "2025-03-15T17:00:00.000Z", snap.UltimaAtualizacao)
			},
		},
		{
			name:           "coleção corrompida",
			corrupt:        true,
			expectedStatus: http.StatusInternalServerError,
			validateFunc: func(t *testing.T, body []byte) {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, float64(500), resp["code"])
				assert.Equal(t, "Erro ao carregar estatísticas", resp["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.corrupt {
				path := cfg.Store.(*jsonfile.Store).Path(store.Cameras)
				require.NoError(t, os.WriteFile(path, []byte("{nao e json"), 0o644))
			}

			router := gin.New()
			router.GET("/api/analyses/stats", analyses.GetStats(cfg))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/stats", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			tt.validateFunc(t, w.Body.Bytes())
		})
	}
}

func TestGetStats_MalformedFieldOnlyUndercounts(t *testing.T) {
	cfg := apptest.New(t)
	path := cfg.Store.(*jsonfile.Store).Path(store.Denuncias)
	raw := `[
	  {"id": 1, "createdAt": "2025-03-15T10:00:00-03:00", "tipoOcorrencia": "Furto"},
	  {"id": 2, "createdAt": 1741000000000, "horaOcorrencia": 7, "tipoOcorrencia": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	router := gin.New()
	router.GET("/api/analyses/stats", analyses.GetStats(cfg))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/stats", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap struct {
		Denuncias struct {
			Total int `json:"total"`
			Hoje  int `json:"hoje"`
			Ano   int `json:"ano"`
		} `json:"denuncias"`
		Graficos struct {
			PorCategoria map[string]int `json:"porCategoria"`
			PorHorario   struct {
				Manha int `json:"manha"`
			} `json:"porHorario"`
		} `json:"graficos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Denuncias.Total)
	assert.Equal(t, 1, snap.Denuncias.Hoje)
	assert.Equal(t, 1, snap.Denuncias.Ano)
	assert.Equal(t, map[string]int{"Furto": 1, "Outro": 1}, snap.Graficos.PorCategoria)
	assert.Equal(t, 1, snap.Graficos.PorHorario.Manha)
}

func TestGetRelatorio(t *testing.T) {
	cfg := apptest.New(t)
	apptest.Seed(t, cfg, store.Denuncias, []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-03-15T10:00:00-03:00", TipoOcorrencia: "Iluminação", HoraOcorrencia: "21:30"},
	})

	router := gin.New()
	router.GET("/api/analyses/relatorio", analyses.GetRelatorio(cfg))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/relatorio", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=relatorio-20250315.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestRenderReport_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	snap := analyses.ComputeStats(nil, nil, apptest.Agora)

	require.NoError(t, analyses.RenderReport(&buf, snap, apptest.Agora))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
