package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"portalseguranca/internal/config"
	"portalseguranca/internal/middleware"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/utils"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PublicPrefix é a rota em que os arquivos salvos são servidos
const PublicPrefix = "/uploads"

var (
	// ErrTooLarge arquivo acima de UPLOAD_MAX_MB
	ErrTooLarge = errors.New("file too large")
	// ErrTypeNotAllowed conteúdo fora de PDF, JPEG, PNG e WEBP
	ErrTypeNotAllowed = errors.New("file type not allowed")
)

var allowedTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/webp",
}

// Save valida o conteúdo pelo que ele é (não pela extensão) e grava em UPLOAD_DIR com nome uuid
func Save(cfg *config.App, fh *multipart.FileHeader) (dto.UploadResponse, error) {
	maxBytes := cfg.Settings.UploadMaxMB << 20
	if fh.Size > maxBytes {
		return dto.UploadResponse{}, fmt.Errorf("%w: %s has %d bytes, max %d", ErrTooLarge, fh.Filename, fh.Size, maxBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("detecting mime type: %w", err)
	}
	if !allowed(mtype) {
		return dto.UploadResponse{}, fmt.Errorf("%w: %s", ErrTypeNotAllowed, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("rewinding upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" || len(ext) > 10 {
		ext = mtype.Extension()
	}
	name := uuid.New().String() + ext

	if err := os.MkdirAll(cfg.Settings.UploadDir, 0o755); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("creating upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(cfg.Settings.UploadDir, name))
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	// a leitura é limitada porque o Size do header vem do cliente
	written, err := io.Copy(dst, io.LimitReader(src, maxBytes+1))
	if err == nil && written > maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return dto.UploadResponse{}, fmt.Errorf("writing file: %w", err)
	}

	return dto.UploadResponse{
		Path:     path.Join(PublicPrefix, name),
		MimeType: mtype.String(),
		Size:     written,
	}, nil
}

// SaveAll grava todos os arquivos; se algum falhar os já gravados são removidos
func SaveAll(cfg *config.App, files []*multipart.FileHeader) ([]dto.UploadResponse, error) {
	out := make([]dto.UploadResponse, 0, len(files))
	for _, fh := range files {
		saved, err := Save(cfg, fh)
		if err != nil {
			for _, s := range out {
				Remove(cfg, s.Path)
			}
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

// Remove apaga um arquivo salvo a partir do caminho público; caminhos fora de /uploads são ignorados
func Remove(cfg *config.App, publicPath string) {
	if !strings.HasPrefix(publicPath, PublicPrefix+"/") {
		return
	}
	name := filepath.Base(publicPath)
	if err := os.Remove(filepath.Join(cfg.Settings.UploadDir, name)); err != nil && !os.IsNotExist(err) {
		cfg.Logger.Error("Error removing upload", err, map[string]interface{}{"path": publicPath})
	}
}

// RespondError traduz os erros de Save para a resposta HTTP
func RespondError(c *gin.Context, cfg *config.App, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(c, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Arquivo maior que %d MB", cfg.Settings.UploadMaxMB), err.Error()))
	case errors.Is(err, ErrTypeNotAllowed):
		c.JSON(http.StatusUnsupportedMediaType, dto.NewErrorResponse(c, http.StatusUnsupportedMediaType, "Unsupported Media Type", "Tipo de arquivo não permitido (PDF, JPEG, PNG ou WEBP)", err.Error()))
	default:
		cfg.Logger.Error("Error saving upload", err)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", "Erro ao salvar arquivo", nil))
	}
}

// Upload handles POST /api/uploads
// @Summary      Enviar arquivo
// @Description  Salva um arquivo (PDF, JPEG, PNG ou WEBP) e retorna o caminho público
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        arquivo  formData  file  true  "Arquivo"
// @Success      201  {object}  dto.SuccessResponse{data=dto.UploadResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /uploads [post]
func Upload(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("arquivo")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "Campo 'arquivo' é obrigatório", err.Error()))
			return
		}

		saved, err := Save(cfg, fh)
		if err != nil {
			RespondError(c, cfg, err)
			return
		}

		middleware.AddLogFields(c, map[string]interface{}{"upload": saved.Path, "mime": saved.MimeType})
		c.Header("Location", utils.GetCurrentProtocolAndHost(c)+saved.Path)
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(c, saved, "Arquivo salvo"))
	}
}

func allowed(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
