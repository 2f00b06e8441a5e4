package middleware

import (
	"net/http"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey é a chave das claims no contexto do gin
const CurrentUserKey = "currentUser"

// Auth exige um token válido cujo perfil seja igual ou mais privilegiado que level
func Auth(issuer *security.TokenIssuer, level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, msg := parseBearer(issuer, c.GetHeader("Authorization"))
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, http.StatusUnauthorized, msg))
			return
		}

		if claims.Role < 1 || claims.Role > level {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewAuthErrorResponse(c, http.StatusForbidden, "Insufficient permissions"))
			return
		}

		c.Set(CurrentUserKey, claims)
		c.Next()
	}
}

// OptionalAuth guarda as claims quando há um token válido, sem bloquear a requisição
func OptionalAuth(issuer *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := parseBearer(issuer, c.GetHeader("Authorization")); claims != nil {
			c.Set(CurrentUserKey, claims)
		}
		c.Next()
	}
}

// CurrentUser retorna as claims do usuário autenticado
func CurrentUser(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok
}

func parseBearer(issuer *security.TokenIssuer, header string) (*security.Claims, string) {
	if header == "" {
		return nil, "JWT token not provided"
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return nil, "Invalid Authorization header format"
	}

	claims, err := issuer.Verify(parts[1])
	if err != nil {
		return nil, "Invalid token"
	}
	return claims, ""
}
