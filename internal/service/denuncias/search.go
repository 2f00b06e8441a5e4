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

// Search handles GET /api/denuncias/busca
// @Summary      Buscar denúncias
// @Description  Busca textual em título, descrição, tipo, endereço e bairro. Usa o Elasticsearch quando configurado.
// @Tags         denuncias
// @Produce      json
// @Security     BearerAuth
// @Param        q          query  string  true   "Texto da busca"
// @Param        page       query  int     false  "Página (padrão 1)"
// @Param        page_size  query  int     false  "Itens por página (padrão 20, máximo 100)"
// @Success      200  {object}  dto.PaginatedResponse{data=[]entities.Denuncia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /denuncias/busca [get]
func Search(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params dto.SearchParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Parâmetro 'q' é obrigatório", err.Error()))
			return
		}
		params.Normalize()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if cfg.ES != nil {
			result, err := cfg.ES.SearchDenuncias(ctx, params)
			if err == nil {
				c.JSON(http.StatusOK, dto.NewPaginatedResponse(c, result.Denuncias, dto.NewPagination(params.Page, params.PageSize, result.Total), ""))
				return
			}
			cfg.Logger.Error("Elasticsearch search failed, using in-memory search", err)
		}

		items, err := store.LoadAll[entities.Denuncia](ctx, cfg.Store, store.Denuncias)
		if err != nil {
			internalError(c, cfg, "Erro ao buscar denúncias", err)
			return
		}

		found := SearchInMemory(items, params.Query)
		sortNewestFirst(found, cfg.Location)

		total := len(found)
		start := params.Offset()
		if start > total {
			start = total
		}
		end := start + params.PageSize
		if end > total {
			end = total
		}

		c.JSON(http.StatusOK, dto.NewPaginatedResponse(c, found[start:end], dto.NewPagination(params.Page, params.PageSize, int64(total)), ""))
	}
}

// SearchInMemory filtra por substring sem diferenciar maiúsculas
func SearchInMemory(items []entities.Denuncia, query string) []entities.Denuncia {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entities.Denuncia, 0)
	for _, d := range items {
		for _, field := range []string{d.Titulo, d.Descricao, d.TipoOcorrencia, d.Endereco, d.Bairro} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
