package cameras

import (
	"context"
	"errors"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var statusValidos = []string{
	entities.CameraOnline,
	entities.CameraOffline,
	entities.CameraMaintenance,
	entities.CameraManutencao,
}

// List handles GET /api/cameras
// @Summary      Listar câmeras
// @Description  Endpoint público usado pelo mapa. Filtro opcional por status.
// @Tags         cameras
// @Produce      json
// @Param        status  query  string  false  "online, offline, maintenance ou manutencao"
// @Success      200  {object}  dto.SuccessResponse{data=[]entities.Camera}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /cameras [get]
func List(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Camera](ctx, cfg.Store, store.Cameras)
		if err != nil {
			internalError(c, cfg, "Erro ao listar câmeras", err)
			return
		}

		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filtered := make([]entities.Camera, 0, len(items))
			for _, cam := range items {
				if strings.EqualFold(cam.Status, status) {
					filtered = append(filtered, cam)
				}
			}
			items = filtered
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, items, ""))
	}
}

// GetByID handles GET /api/cameras/:id
// @Summary      Buscar câmera por ID
// @Tags         cameras
// @Produce      json
// @Param        id   path      int  true  "ID da câmera"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Camera}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cameras/{id} [get]
func GetByID(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Camera](ctx, cfg.Store, store.Cameras)
		if err != nil {
			internalError(c, cfg, "Erro ao buscar câmera", err)
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

// Create handles POST /api/cameras
// @Summary      Cadastrar câmera
// @Tags         cameras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        camera  body  dto.CameraRequest  true  "Dados da câmera"
// @Success      201  {object}  dto.SuccessResponse{data=entities.Camera}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.AuthErrorResponse
// @Router       /cameras [post]
func Create(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bind(c)
		if !ok {
			return
		}

		cam := entities.Camera{CreatedAt: utils.Timestamp(cfg.Now())}
		apply(&cam, req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := store.Update(ctx, cfg.Store, store.Cameras, func(items []entities.Camera) ([]entities.Camera, error) {
			cam.Id = store.NextID(items)
			return append(items, cam), nil
		})
		if err != nil {
			internalError(c, cfg, "Erro ao cadastrar câmera", err)
			return
		}

		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, cam, "Câmera cadastrada"))
	}
}

// Update handles PUT /api/cameras/:id
// @Summary      Atualizar câmera
// @Tags         cameras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                true  "ID da câmera"
// @Param        camera  body  dto.CameraRequest  true  "Dados da câmera"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Camera}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cameras/{id} [put]
func Update(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}
		req, ok := bind(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var updated entities.Camera
		err := store.Update(ctx, cfg.Store, store.Cameras, func(items []entities.Camera) ([]entities.Camera, error) {
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
			internalError(c, cfg, "Erro ao atualizar câmera", err)
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, updated, "Câmera atualizada"))
	}
}

// Delete handles DELETE /api/cameras/:id
// @Summary      Remover câmera
// @Tags         cameras
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da câmera"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cameras/{id} [delete]
func Delete(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := store.Update(ctx, cfg.Store, store.Cameras, func(items []entities.Camera) ([]entities.Camera, error) {
			i := store.IndexOf(items, id)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			return append(items[:i], items[i+1:]...), nil
		})
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, id)
			return
		}
		if err != nil {
			internalError(c, cfg, "Erro ao remover câmera", err)
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, gin.H{"id": id}, "Câmera removida"))
	}
}

func bind(c *gin.Context) (dto.CameraRequest, bool) {
	var req dto.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
		return req, false
	}
	if !entities.ValidCameraStatus(req.Status) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Status inválido", statusValidos))
		return req, false
	}
	return req, true
}

func apply(cam *entities.Camera, req dto.CameraRequest) {
	cam.Nome = strings.TrimSpace(req.Nome)
	cam.Localizacao = req.Localizacao
	cam.Latitude = req.Latitude
	cam.Longitude = req.Longitude
	cam.Status = req.Status
	cam.Type = req.Type
	cam.Resolution = req.Resolution
	cam.StreamUrl = req.StreamUrl
}

func notFound(c *gin.Context, id int) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, "Not Found", "Câmera não encontrada", id))
}

func internalError(c *gin.Context, cfg *config.App, message string, err error) {
	cfg.Logger.Error(message, err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", message, nil))
}
