package middleware

import (
	"context"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxRequests = 120
	rateLimitWindow    = 60 * time.Second
)

// WindowCounter conta requisições por chave numa janela fixa
type WindowCounter interface {
	HitWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter encapsula a lógica de rate limiting
type RateLimiter struct {
	counter     WindowCounter
	maxRequests int
	window      time.Duration
	onError     func(err error)
}

// NewRateLimiter cria uma nova instância do rate limiter
func NewRateLimiter(counter WindowCounter, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	return &RateLimiter{
		counter:     counter,
		maxRequests: maxRequests,
		window:      window,
	}
}

// setupRedisDB configura o middleware de rate limiting
func setupRedisDB(engine *gin.Engine, cfg *config.App) {
	rateLimiter := NewRateLimiter(cfg.Redis, cfg.Settings.MaxRequestCountByIP, rateLimitWindow)
	rateLimiter.onError = func(err error) {
		cfg.Logger.Error("rate limiter unavailable", err)
	}
	engine.Use(rateLimiter.Middleware())
}

// Middleware retorna o middleware do Gin para rate limiting.
// Se o Redis falhar a requisição segue sem limite.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		count, ttl, err := rl.counter.HitWindow(c.Request.Context(), c.ClientIP(), rl.window)
		if err != nil {
			if rl.onError != nil {
				rl.onError(err)
			}
			c.Next()
			return
		}

		remaining := rl.maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(rl.maxRequests) {
			rl.handleRateLimitExceeded(c, ttl)
			return
		}

		c.Next()
	}
}

// handleRateLimitExceeded trata quando o limite é excedido
func (rl *RateLimiter) handleRateLimitExceeded(c *gin.Context, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitErrorResponse(
		c,
		retryAfter.Round(time.Second).String(),
		rl.maxRequests,
		0,
		time.Now().UTC().Add(retryAfter),
	))
}

func setupSemaphore(engine *gin.Engine, max int64) {
	engine.Use(Semaphore(max))
}

// Semaphore limita o número de requisições simultâneas
func Semaphore(max int64) gin.HandlerFunc {
	sema := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sema.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				c,
				http.StatusTooManyRequests,
				"Too many requests",
				"Servidor ocupado, tente novamente",
				nil,
			))
			return
		}
		defer sema.Release(1)
		c.Next()
	}
}
