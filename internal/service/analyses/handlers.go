package analyses

import (
	"context"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// LoadInputs carrega denúncias e câmeras em paralelo
func LoadInputs(ctx context.Context, st store.Store) ([]entities.Denuncia, []entities.Camera, error) {
	var denuncias []entities.Denuncia
	var cameras []entities.Camera

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		denuncias, err = store.LoadAll[entities.Denuncia](gctx, st, store.Denuncias)
		return err
	})
	g.Go(func() error {
		var err error
		cameras, err = store.LoadAll[entities.Camera](gctx, st, store.Cameras)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return denuncias, cameras, nil
}

// LoadSnapshot carrega as coleções e calcula o snapshot para now
func LoadSnapshot(ctx context.Context, st store.Store, now time.Time) (dto.StatsSnapshot, error) {
	denuncias, cameras, err := LoadInputs(ctx, st)
	if err != nil {
		return dto.StatsSnapshot{}, err
	}
	return ComputeStats(denuncias, cameras, now), nil
}

// GetStats handles GET /api/analyses/stats
// @Summary      Estatísticas do dashboard
// @Description  Contagens de denúncias por janela de tempo, prioridade, status, categoria e horário, séries mensais e indicadores das câmeras
// @Tags         analyses
// @Produce      json
// @Success      200  {object}  dto.StatsSnapshot
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /analyses/stats [get]
func GetStats(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		snapshot, err := LoadSnapshot(ctx, cfg.Store, cfg.Now())
		if err != nil {
			cfg.Logger.Error("Error loading stats", err)
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", "Erro ao carregar estatísticas", err.Error()))
			return
		}

		c.JSON(http.StatusOK, snapshot)
	}
}
