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

// LoginHandler autentica um membro da equipe e retorna um JWT token
// @Summary      Login
// @Description  Autenticação por email e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Credenciais de login"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad Request - Dados inválidos"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - Credenciais inválidas"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - Usuário inativo"
// @Failure      500 {object} dto.ErrorResponse "Internal Server Error"
// @Router       /auth/login [post]
func LoginHandler(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Usuario](ctx, cfg.Store, store.Usuarios)
		if err != nil {
			internalError(c, cfg, "Erro ao autenticar", err)
			return
		}

		i := indexByEmail(items, req.Email)
		if i < 0 || bcrypt.CompareHashAndPassword([]byte(items[i].SenhaHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(c, http.StatusUnauthorized, "Unauthorized", "Invalid credentials", nil))
			return
		}
		user := items[i]

		if !user.Ativo {
			c.JSON(http.StatusForbidden, dto.NewErrorResponse(c, http.StatusForbidden, "Forbidden", "User account is inactive", nil))
			return
		}

		role, ok := utils.PerfilMapStrToInt[user.Perfil]
		if !ok {
			internalError(c, cfg, "Perfil de usuário inválido", nil)
			return
		}

		token, expiresAt, err := cfg.Tokens.Generate(user.Id, user.Email, role)
		if err != nil {
			internalError(c, cfg, "Failed to generate token", err)
			return
		}

		acesso := utils.Timestamp(cfg.Now())
		err = store.Update(ctx, cfg.Store, store.Usuarios, func(items []entities.Usuario) ([]entities.Usuario, error) {
			if j := store.IndexOf(items, user.Id); j >= 0 {
				items[j].UltimoAcesso = acesso
			}
			return items, nil
		})
		if err != nil {
			cfg.Logger.Warn("Error updating last access: "+err.Error(), map[string]interface{}{"user_id": user.Id})
		}
		user.UltimoAcesso = acesso

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, dto.LoginResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: int(cfg.Tokens.TTL().Seconds()),
			ExpiresAt: expiresAt.UTC(),
			User:      toResponse(user),
		}, "Login successful"))
	}
}

// Me handles GET /api/auth/me
// @Summary      Usuário autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SuccessResponse{data=dto.UsuarioResponse}
// @Failure      401 {object} dto.AuthErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /auth/me [get]
func Me(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, http.StatusUnauthorized, "JWT token not provided"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Usuario](ctx, cfg.Store, store.Usuarios)
		if err != nil {
			internalError(c, cfg, "Erro ao buscar usuário", err)
			return
		}
		i := store.IndexOf(items, claims.UserID)
		if i < 0 {
			notFound(c, claims.UserID)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, toResponse(items[i]), ""))
	}
}

// ChangePassword handles POST /api/auth/change-password
// @Summary      Alterar senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        senha body dto.ChangePasswordRequest true "Senha atual e nova senha"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /auth/change-password [post]
func ChangePassword(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, http.StatusUnauthorized, "JWT token not provided"))
			return
		}

		var req dto.ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			internalError(c, cfg, "Failed to hash password", err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err = store.Update(ctx, cfg.Store, store.Usuarios, func(items []entities.Usuario) ([]entities.Usuario, error) {
			i := store.IndexOf(items, claims.UserID)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			if bcrypt.CompareHashAndPassword([]byte(items[i].SenhaHash), []byte(req.CurrentPassword)) != nil {
				return nil, errSenhaIncorreta
			}
			items[i].SenhaHash = string(hash)
			items[i].UpdatedAt = utils.Timestamp(cfg.Now())
			return items, nil
		})
		switch {
		case errors.Is(err, errSenhaIncorreta):
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(c, http.StatusUnauthorized, "Unauthorized", "Senha atual incorreta", nil))
			return
		case errors.Is(err, store.ErrNotFound):
			notFound(c, claims.UserID)
			return
		case err != nil:
			internalError(c, cfg, "Erro ao alterar senha", err)
			return
		}

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, nil, "Senha alterada"))
	}
}

func indexByEmail(items []entities.Usuario, email string) int {
	email = strings.TrimSpace(email)
	for i, u := range items {
		if strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}
