package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey é a chave do request id no contexto do gin
const RequestIDKey = "request_id"

const maxRequestIDLength = 128

// setupIds -
func setupIds(engine *gin.Engine) {
	engine.Use(RequestIDMiddleware(""))
}

// GetRequestID retrieves the request ID from Gin context
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// RequestIDMiddleware adds request ID to context if not present
func RequestIDMiddleware(headerName string) gin.HandlerFunc {
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	return func(c *gin.Context) {
		if GetRequestID(c) != "" {
			c.Next()
			return
		}
		c.Set(RequestIDKey, ensureRequestID(c, headerName))
		c.Next()
	}
}

// ensureRequestID reaproveita o id enviado pelo cliente ou gera um novo
func ensureRequestID(c *gin.Context, headerName string) string {
	requestID := c.GetHeader(headerName)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = uuid.New().String()
	}
	c.Header(headerName, requestID)
	return requestID
}
