package denuncias

import (
	"context"
	"errors"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/service/uploads"
	"portalseguranca/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// GetByID handles GET /api/denuncias/:id
// @Summary      Buscar denúncia por ID
// @Tags         denuncias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da denúncia"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Denuncia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /denuncias/{id} [get]
func GetByID(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Denuncia](ctx, cfg.Store, store.Denuncias)
		if err != nil {
			internalError(c, cfg, "Erro ao buscar denúncia", err)
			return
		}

		i := store.IndexOf(items, id)
		if i < 0 {
			notFound(c, id)
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, items[i], ""))
	}
}

// Update handles PUT /api/denuncias/:id
// @Summary      Atualizar denúncia
// @Description  Substitui os campos editáveis. id, status, anexos e createdAt são mantidos.
// @Tags         denuncias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int                  true  "ID da denúncia"
// @Param        denuncia  body  dto.DenunciaRequest  true  "Dados da denúncia"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Denuncia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /denuncias/{id} [put]
func Update(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		var req dto.DenunciaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var updated entities.Denuncia
		err := store.Update(ctx, cfg.Store, store.Denuncias, func(items []entities.Denuncia) ([]entities.Denuncia, error) {
			i := store.IndexOf(items, id)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			apply(&items[i], req)
			items[i].UpdatedAt = utils.Timestamp(cfg.Now())
			updated = items[i]
			return items, nil
		})
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, id)
			return
		}
		if err != nil {
			internalError(c, cfg, "Erro ao atualizar denúncia", err)
			return
		}

		afterWrite(cfg, updated)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, updated, "Denúncia atualizada"))
	}
}

// PatchStatus handles PATCH /api/denuncias/:id/status
// @Summary      Alterar status
// @Tags         denuncias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                true  "ID da denúncia"
// @Param        status  body  dto.StatusRequest  true  "Novo status"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Denuncia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /denuncias/{id}/status [patch]
func PatchStatus(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		var req dto.StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}
		if !ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Status inválido", StatusPermitidos))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var updated entities.Denuncia
		err := store.Update(ctx, cfg.Store, store.Denuncias, func(items []entities.Denuncia) ([]entities.Denuncia, error) {
			i := store.IndexOf(items, id)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			items[i].Status = req.Status
			if req.Observacoes != "" {
				items[i].Observacoes = req.Observacoes
			}
			items[i].UpdatedAt = utils.Timestamp(cfg.Now())
			updated = items[i]
			return items, nil
		})
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, id)
			return
		}
		if err != nil {
			internalError(c, cfg, "Erro ao alterar status", err)
			return
		}

		afterWrite(cfg, updated)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, updated, "Status atualizado"))
	}
}

// Delete handles DELETE /api/denuncias/:id
// @Summary      Remover denúncia
// @Tags         denuncias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da denúncia"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /denuncias/{id} [delete]
func Delete(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var removed entities.Denuncia
		err := store.Update(ctx, cfg.Store, store.Denuncias, func(items []entities.Denuncia) ([]entities.Denuncia, error) {
			i := store.IndexOf(items, id)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			removed = items[i]
			return append(items[:i], items[i+1:]...), nil
		})
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, id)
			return
		}
		if err != nil {
			internalError(c, cfg, "Erro ao remover denúncia", err)
			return
		}

		for _, p := range removed.Anexos {
			uploads.Remove(cfg, p)
		}
		if cfg.ES != nil {
			if err := cfg.ES.DeleteDenuncia(ctx, id); err != nil {
				cfg.Logger.Error("Error removing denuncia from index", err, map[string]interface{}{"id": id})
			}
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, gin.H{"id": id}, "Denúncia removida"))
	}
}
