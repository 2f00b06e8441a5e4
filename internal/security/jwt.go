// Package security emite e valida os tokens JWT da API
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Perfis de acesso. Quanto menor o número, maior o privilégio.
const (
	RoleAdmin  = 1
	RoleComite = 2
)

// Claims é o conteúdo útil de um token válido
type Claims struct {
	UserID int
	Email  string
	Role   int
}

// TokenIssuer assina tokens HS256 com o segredo configurado
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer cria o emissor; o segredo não pode ser vazio
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL retorna a validade dos tokens emitidos
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Generate gera token JWT e retorna também o instante de expiração
func (t *TokenIssuer) Generate(userID int, email string, role int) (string, time.Time, error) {
	expiresAt := t.now().Add(t.ttl)
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify valida assinatura e expiração e extrai as claims
func (t *TokenIssuer) Verify(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(newToken *jwt.Token) (any, error) {
		if _, isValid := newToken.Method.(*jwt.SigningMethodHMAC); !isValid {
			return nil, fmt.Errorf("unexpected signing method: %v", newToken.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, okID := number(mc["user_id"])
	role, okRole := number(mc["role"])
	if !okID || !okRole {
		return nil, errors.New("invalid token claims")
	}
	email, _ := mc["email"].(string)

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}

// claims numéricas chegam como float64 depois do parse
func number(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
