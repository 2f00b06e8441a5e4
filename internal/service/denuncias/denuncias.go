package denuncias

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/notifier"
	"portalseguranca/internal/service/analyses"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// StatusPendente é o status inicial de toda denúncia
const StatusPendente = "pendente"

// StatusPermitidos são os valores aceitos em PATCH /status
var StatusPermitidos = []string{
	"pendente",
	"em andamento",
	"emAndamento",
	"resolvida",
	"resolvido",
	"concluído",
	"cancelada",
}

// ValidStatus informa se o status é aceito
func ValidStatus(status string) bool {
	for _, s := range StatusPermitidos {
		if s == status {
			return true
		}
	}
	return false
}

var errMissingDados = errors.New("campo 'dados' é obrigatório no multipart")

// bindRequest aceita JSON ou multipart com o JSON no campo "dados"
func bindRequest(c *gin.Context, req *dto.DenunciaRequest) error {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return c.ShouldBindJSON(req)
	}

	dados := c.PostForm("dados")
	if dados == "" {
		return errMissingDados
	}
	if err := json.Unmarshal([]byte(dados), req); err != nil {
		return fmt.Errorf("campo 'dados' inválido: %w", err)
	}
	return binding.Validator.ValidateStruct(req)
}

// apply copia os campos editáveis do request para a entidade
func apply(d *entities.Denuncia, req dto.DenunciaRequest) {
	d.Titulo = strings.TrimSpace(req.Titulo)
	d.Descricao = strings.TrimSpace(req.Descricao)
	d.TipoOcorrencia = strings.TrimSpace(req.TipoOcorrencia)
	d.Prioridade = req.Prioridade
	d.Urgente = req.Urgente
	d.DataOcorrencia = req.DataOcorrencia
	d.HoraOcorrencia = req.HoraOcorrencia
	d.Endereco = req.Endereco
	d.Bairro = req.Bairro
	d.Latitude = req.Latitude
	d.Longitude = req.Longitude
	d.Anonimo = req.Anonimo
	d.Observacoes = req.Observacoes
	if req.Anonimo {
		d.NomeDenunciante = ""
		d.Contato = ""
	} else {
		d.NomeDenunciante = req.NomeDenunciante
		d.Contato = req.Contato
	}
}

// sortNewestFirst ordena pela data efetiva; datas inválidas vão para o fim, empates pelo id
func sortNewestFirst(items []entities.Denuncia, loc *time.Location) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[int]keyed, len(items))
	for _, d := range items {
		ts, ok := analyses.ParseTimestamp(d.DataEfetiva(), loc)
		keys[d.Id] = keyed{ts, ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := keys[items[i].Id], keys[items[j].Id]
		if ki.ok != kj.ok {
			return ki.ok
		}
		if ki.ok && !ki.t.Equal(kj.t) {
			return ki.t.After(kj.t)
		}
		return items[i].Id > items[j].Id
	})
}

// afterWrite reindexa no Elasticsearch quando habilitado; falhas só são registradas
func afterWrite(cfg *config.App, d entities.Denuncia) {
	if cfg.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cfg.ES.IndexDenuncia(ctx, d); err != nil {
		cfg.Logger.Error("Error indexing denuncia", err, map[string]interface{}{"id": d.Id})
	}
}

// notifyAsync avisa o comitê sem segurar a resposta
func notifyAsync(cfg *config.App, d entities.Denuncia) {
	if !notifier.ShouldNotify(d) {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := cfg.Notifier.NotifyDenuncia(ctx, d); err != nil {
			cfg.Logger.Error("Error notifying comite", err, map[string]interface{}{"id": d.Id})
		}
	}()
}

func notFound(c *gin.Context, id int) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, "Not Found", "Denúncia não encontrada", id))
}

func internalError(c *gin.Context, cfg *config.App, message string, err error) {
	cfg.Logger.Error(message, err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", message, nil))
}
