package denuncias

import (
	"context"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// List handles GET /api/denuncias
// @Summary      Listar denúncias
// @Description  Lista as denúncias da mais recente para a mais antiga, com filtros opcionais
// @Tags         denuncias
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status"
// @Param        prioridade  query  string  false  "Prioridade"
// @Param        tipo        query  string  false  "Tipo de ocorrência"
// @Success      200  {object}  dto.SuccessResponse{data=[]entities.Denuncia}
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /denuncias [get]
func List(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter dto.DenunciaFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid query parameters", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Denuncia](ctx, cfg.Store, store.Denuncias)
		if err != nil {
			internalError(c, cfg, "Erro ao listar denúncias", err)
			return
		}

		out := make([]entities.Denuncia, 0, len(items))
		for _, d := range items {
			if matches(d, filter) {
				out = append(out, d)
			}
		}
		sortNewestFirst(out, cfg.Location)

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, out, ""))
	}
}

func matches(d entities.Denuncia, f dto.DenunciaFilter) bool {
	if f.Status != "" {
		status := d.Status
		if status == "" {
			status = StatusPendente
		}
		if !strings.EqualFold(status, f.Status) {
			return false
		}
	}
	if f.Prioridade != "" && normalizePrioridade(d.Prioridade) != normalizePrioridade(f.Prioridade) {
		return false
	}
	if f.Tipo != "" && !strings.EqualFold(d.Categoria(), f.Tipo) {
		return false
	}
	return true
}

func normalizePrioridade(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "média" {
		return "media"
	}
	return p
}
