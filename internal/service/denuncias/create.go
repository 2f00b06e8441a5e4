package denuncias

import (
	"context"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/service/uploads"
	"portalseguranca/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// Create handles POST /api/denuncias
// @Summary      Registrar denúncia
// @Description  Endpoint público. Aceita JSON ou multipart com o JSON no campo "dados" e arquivos em "anexos"
// @Tags         denuncias
// @Accept       json,mpfd
// @Produce      json
// @Param        denuncia  body      dto.DenunciaRequest  false  "Dados da denúncia (JSON)"
// @Param        dados     formData  string               false  "Dados da denúncia (multipart)"
// @Param        anexos    formData  file                 false  "Anexos (PDF, JPEG, PNG, WEBP)"
// @Success      201  {object}  dto.SuccessResponse{data=entities.Denuncia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /denuncias [post]
func Create(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.DenunciaRequest
		if err := bindRequest(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		var anexos []string
		if form, err := c.MultipartForm(); err == nil && form != nil && len(form.File["anexos"]) > 0 {
			saved, err := uploads.SaveAll(cfg, form.File["anexos"])
			if err != nil {
				uploads.RespondError(c, cfg, err)
				return
			}
			for _, s := range saved {
				anexos = append(anexos, s.Path)
			}
		}

		d := entities.Denuncia{
			Status:    StatusPendente,
			Anexos:    anexos,
			CreatedAt: utils.Timestamp(cfg.Now()),
		}
		apply(&d, req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := store.Update(ctx, cfg.Store, store.Denuncias, func(items []entities.Denuncia) ([]entities.Denuncia, error) {
			d.Id = store.NextID(items)
			return append(items, d), nil
		})
		if err != nil {
			for _, p := range anexos {
				uploads.Remove(cfg, p)
			}
			internalError(c, cfg, "Erro ao registrar denúncia", err)
			return
		}

		afterWrite(cfg, d)
		notifyAsync(cfg, d)

		middleware.AddLogFields(c, map[string]interface{}{"denuncia_id": d.Id, "anexos": len(d.Anexos)})
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, d, "Denúncia registrada"))
	}
}
