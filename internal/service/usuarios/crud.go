package usuarios

import (
	"context"
	"errors"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var (
	errSenhaIncorreta = errors.New("senha atual incorreta")
	errEmailEmUso     = errors.New("email already exists")
)

// List handles GET /api/usuarios
// @Summary      Listar usuários
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse{data=[]dto.UsuarioResponse}
// @Failure      401 {object} dto.AuthErrorResponse
// @Failure      403 {object} dto.AuthErrorResponse
// @Router       /usuarios [get]
func List(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Usuario](ctx, cfg.Store, store.Usuarios)
		if err != nil {
			internalError(c, cfg, "Erro ao listar usuários", err)
			return
		}

		out := make([]dto.UsuarioResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toResponse(u))
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, out, ""))
	}
}

// Create handles POST /api/usuarios
// @Summary      Cadastrar usuário
// @Description  Cria um membro do comitê ou administrador
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        usuario body dto.CreateUsuarioRequest true "Dados do usuário"
// @Success      201 {object} dto.SuccessResponse{data=dto.UsuarioResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad Request"
// @Failure      409 {object} dto.ErrorResponse "Conflict - Email já existe"
// @Failure      500 {object} dto.ErrorResponse "Internal Server Error"
// @Router       /usuarios [post]
func Create(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateUsuarioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		u, err := createUsuario(ctx, cfg, req)
		if errors.Is(err, errEmailEmUso) {
			c.JSON(http.StatusConflict, dto.NewErrorResponse(c, http.StatusConflict, "Conflict", "Email already exists", req.Email))
			return
		}
		if err != nil {
			internalError(c, cfg, "Failed to create user", err)
			return
		}

		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, toResponse(u), "User created successfully"))
	}
}

// Delete handles DELETE /api/usuarios/:id
// @Summary      Remover usuário
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do usuário"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse "Não é possível remover o próprio usuário"
// @Failure      404 {object} dto.ErrorResponse
// @Router       /usuarios/{id} [delete]
func Delete(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		if claims, ok := middleware.CurrentUser(c); ok && claims.UserID == id {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Não é possível remover o próprio usuário", id))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := store.Update(ctx, cfg.Store, store.Usuarios, func(items []entities.Usuario) ([]entities.Usuario, error) {
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
			internalError(c, cfg, "Failed to delete user", err)
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, gin.H{"id": id}, "User deleted successfully"))
	}
}

// BootstrapAdmin cria o primeiro ADMIN a partir de ADMIN_EMAIL/ADMIN_PASSWORD quando não há usuários
func BootstrapAdmin(ctx context.Context, cfg *config.App) error {
	s := cfg.Settings
	if s.AdminEmail == "" || s.AdminPassword == "" {
		return nil
	}

	items, err := store.LoadAll[entities.Usuario](ctx, cfg.Store, store.Usuarios)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}

	u, err := createUsuario(ctx, cfg, dto.CreateUsuarioRequest{
		Nome:   "Administrador",
		Email:  s.AdminEmail,
		Senha:  s.AdminPassword,
		Perfil: "ADMIN",
	})
	if err != nil {
		return err
	}

	cfg.Logger.Info("admin user created", map[string]interface{}{"id": u.Id, "email": u.Email})
	return nil
}

func createUsuario(ctx context.Context, cfg *config.App, req dto.CreateUsuarioRequest) (entities.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return entities.Usuario{}, err
	}

	u := entities.Usuario{
		Nome:      strings.TrimSpace(req.Nome),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		SenhaHash: string(hash),
		Perfil:    req.Perfil,
		Ativo:     true,
		CreatedAt: utils.Timestamp(cfg.Now()),
	}

	err = store.Update(ctx, cfg.Store, store.Usuarios, func(items []entities.Usuario) ([]entities.Usuario, error) {
		if indexByEmail(items, u.Email) >= 0 {
			return nil, errEmailEmUso
		}
		u.Id = store.NextID(items)
		return append(items, u), nil
	})
	return u, err
}

func toResponse(u entities.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		Id:           u.Id,
		Nome:         u.Nome,
		Email:        u.Email,
		Perfil:       u.Perfil,
		Ativo:        u.Ativo,
		CreatedAt:    u.CreatedAt,
		UltimoAcesso: u.UltimoAcesso,
	}
}

func notFound(c *gin.Context, id int) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, "Not Found", "User not found", id))
}

func internalError(c *gin.Context, cfg *config.App, message string, err error) {
	cfg.Logger.Error(message, err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", message, nil))
}
