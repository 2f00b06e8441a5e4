package noticias

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"portalseguranca/internal/service/uploads"
	"portalseguranca/internal/utils"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// List handles GET /api/noticias
// @Summary      Listar notícias
// @Description  Público: apenas publicadas. Com ?todas=true e token válido inclui os rascunhos.
// @Tags         noticias
// @Produce      json
// @Param        todas      query  bool    false  "Incluir não publicadas (requer token)"
// @Param        categoria  query  string  false  "Categoria"
// @Success      200  {object}  dto.SuccessResponse{data=[]entities.Noticia}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /noticias [get]
func List(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Noticia](ctx, cfg.Store, store.Noticias)
		if err != nil {
			internalError(c, cfg, "Erro ao listar notícias", err)
			return
		}

		_, autenticado := middleware.CurrentUser(c)
		todas := autenticado && c.Query("todas") == "true"
		categoria := strings.TrimSpace(c.Query("categoria"))

		out := make([]entities.Noticia, 0, len(items))
		for _, n := range items {
			if !todas && !n.Publicada {
				continue
			}
			if categoria != "" && !strings.EqualFold(n.Categoria, categoria) {
				continue
			}
			out = append(out, n)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Id > out[j].Id })

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, out, ""))
	}
}

// GetByID handles GET /api/noticias/:id
// @Summary      Buscar notícia por ID
// @Description  Rascunhos só são visíveis com token válido
// @Tags         noticias
// @Produce      json
// @Param        id   path      int  true  "ID da notícia"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Noticia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /noticias/{id} [get]
func GetByID(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := store.LoadAll[entities.Noticia](ctx, cfg.Store, store.Noticias)
		if err != nil {
			internalError(c, cfg, "Erro ao buscar notícia", err)
			return
		}

		i := store.IndexOf(items, id)
		_, autenticado := middleware.CurrentUser(c)
		if i < 0 || (!items[i].Publicada && !autenticado) {
			notFound(c, id)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, items[i], ""))
	}
}

// Create handles POST /api/noticias
// @Summary      Publicar notícia
// @Description  JSON ou multipart com o JSON no campo "dados" e a imagem em "imagem". Sem "publicada" a notícia é publicada.
// @Tags         noticias
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        noticia  body      dto.NoticiaRequest  false  "Dados da notícia (JSON)"
// @Param        dados    formData  string              false  "Dados da notícia (multipart)"
// @Param        imagem   formData  file                false  "Imagem (JPEG, PNG, WEBP)"
// @Success      201  {object}  dto.SuccessResponse{data=entities.Noticia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.AuthErrorResponse
// @Router       /noticias [post]
func Create(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.NoticiaRequest
		if err := bindRequest(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		imagem, ok := saveImage(c, cfg)
		if !ok {
			return
		}

		n := entities.Noticia{
			Publicada: true,
			Imagem:    imagem,
			CreatedAt: utils.Timestamp(cfg.Now()),
		}
		apply(&n, req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := store.Update(ctx, cfg.Store, store.Noticias, func(items []entities.Noticia) ([]entities.Noticia, error) {
			n.Id = store.NextID(items)
			return append(items, n), nil
		})
		if err != nil {
			uploads.Remove(cfg, imagem)
			internalError(c, cfg, "Erro ao publicar notícia", err)
			return
		}

		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, n, "Notícia criada"))
	}
}

// Update handles PUT /api/noticias/:id
// @Summary      Atualizar notícia
// @Description  Uma nova imagem substitui a anterior
// @Tags         noticias
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                 true   "ID da notícia"
// @Param        noticia  body      dto.NoticiaRequest  false  "Dados da notícia (JSON)"
// @Param        dados    formData  string              false  "Dados da notícia (multipart)"
// @Param        imagem   formData  file                false  "Imagem (JPEG, PNG, WEBP)"
// @Success      200  {object}  dto.SuccessResponse{data=entities.Noticia}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /noticias/{id} [put]
func Update(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		var req dto.NoticiaRequest
		if err := bindRequest(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Invalid request body", err.Error()))
			return
		}

		imagem, ok := saveImage(c, cfg)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var updated entities.Noticia
		var antiga string
		err := store.Update(ctx, cfg.Store, store.Noticias, func(items []entities.Noticia) ([]entities.Noticia, error) {
			i := store.IndexOf(items, id)
			if i < 0 {
				return nil, store.ErrNotFound
			}
			apply(&items[i], req)
			if imagem != "" {
				antiga = items[i].Imagem
				items[i].Imagem = imagem
			}
			items[i].UpdatedAt = utils.Timestamp(cfg.Now())
			updated = items[i]
			return items, nil
		})
		if err != nil {
			uploads.Remove(cfg, imagem)
			if errors.Is(err, store.ErrNotFound) {
				notFound(c, id)
				return
			}
			internalError(c, cfg, "Erro ao atualizar notícia", err)
			return
		}
		uploads.Remove(cfg, antiga)

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, updated, "Notícia atualizada"))
	}
}

// Delete handles DELETE /api/noticias/:id
// @Summary      Remover notícia
// @Tags         noticias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da notícia"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /noticias/{id} [delete]
func Delete(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var removed entities.Noticia
		err := store.Update(ctx, cfg.Store, store.Noticias, func(items []entities.Noticia) ([]entities.Noticia, error) {
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
			internalError(c, cfg, "Erro ao remover notícia", err)
			return
		}
		uploads.Remove(cfg, removed.Imagem)

		c.JSON(http.StatusOK, dto.NewSuccessResponse(c, gin.H{"id": id}, "Notícia removida"))
	}
}

func bindRequest(c *gin.Context, req *dto.NoticiaRequest) error {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return c.ShouldBindJSON(req)
	}
	dados := c.PostForm("dados")
	if dados == "" {
		return errors.New("campo 'dados' é obrigatório no multipart")
	}
	if err := json.Unmarshal([]byte(dados), req); err != nil {
		return fmt.Errorf("campo 'dados' inválido: %w", err)
	}
	return binding.Validator.ValidateStruct(req)
}

// saveImage grava o campo "imagem" quando presente; em erro já respondeu
func saveImage(c *gin.Context, cfg *config.App) (string, bool) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return "", true
	}
	fh, err := c.FormFile("imagem")
	if err != nil {
		return "", true
	}
	saved, err := uploads.Save(cfg, fh)
	if err != nil {
		uploads.RespondError(c, cfg, err)
		return "", false
	}
	if !strings.HasPrefix(saved.MimeType, "image/") {
		uploads.Remove(cfg, saved.Path)
		uploads.RespondError(c, cfg, fmt.Errorf("%w: imagem deve ser JPEG, PNG ou WEBP", uploads.ErrTypeNotAllowed))
		return "", false
	}
	return saved.Path, true
}

func apply(n *entities.Noticia, req dto.NoticiaRequest) {
	n.Titulo = strings.TrimSpace(req.Titulo)
	n.Resumo = req.Resumo
	n.Conteudo = req.Conteudo
	n.Categoria = req.Categoria
	n.Autor = req.Autor
	if req.Publicada != nil {
		n.Publicada = *req.Publicada
	}
}

func notFound(c *gin.Context, id int) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(c, http.StatusNotFound, "Not Found", "Notícia não encontrada", id))
}

func internalError(c *gin.Context, cfg *config.App, message string, err error) {
	cfg.Logger.Error(message, err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", message, nil))
}
