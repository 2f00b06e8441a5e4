package utils

import (
	"net/http"
	"portalseguranca/internal/models/dto"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetCurrentProtocolAndHost returns the current protocol and host
func GetCurrentProtocolAndHost(c *gin.Context) string {
	protocol := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		protocol = "https"
	}
	host := c.Request.Host

	return protocol + "://" + host
}

// ParseID lê o parâmetro :id; se não for inteiro positivo responde 400 e retorna false
func ParseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "Bad Request", "ID inválido", c.Param("id")))
		return 0, false
	}
	return id, true
}
