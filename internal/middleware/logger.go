package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"portalseguranca/internal/telemetry"
	"portalseguranca/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// setupLogger -
func setupLogger(engine *gin.Engine, l *logger.FileLogger) {
	middlewareConfig := MiddlewareConfig{
		LogRequestBody:  true,
		LogResponseBody: false,
		MaxBodySize:     2048,
		ExcludedHeaders: []string{
			"authorization",
			"cookie",
			"x-api-key",
		},
		SensitiveFields: []string{
			"password",
			"senha",
			"currentPassword",
			"newPassword",
			"token",
		},
		SkipPaths: []string{
			"/healthcheck/",
			"/metrics",
		},
		ErrorsOnly:      false,
		RequestIDHeader: "X-Request-ID",
	}
	engine.Use(LoggerMiddleware(l, middlewareConfig))
}

// MiddlewareConfig configures the logging middleware
type MiddlewareConfig struct {
	// Whether to log request bodies (only JSON bodies are captured)
	LogRequestBody bool
	// Whether to log response bodies
	LogResponseBody bool
	// Maximum size of bodies to log (in bytes)
	MaxBodySize int
	// Headers to exclude from logging (case-insensitive)
	ExcludedHeaders []string
	// JSON fields replaced by "***" in the logged request body
	SensitiveFields []string
	// Paths to skip logging (exact match)
	SkipPaths []string
	// Whether to log only errors (4xx, 5xx status codes)
	ErrorsOnly bool
	// Custom request ID header name
	RequestIDHeader string
}

// DefaultMiddlewareConfig returns a default configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		LogRequestBody:  true,
		LogResponseBody: true,
		MaxBodySize:     1024, // 1KB
		ExcludedHeaders: []string{
			"authorization",
			"cookie",
			"set-cookie",
			"x-api-key",
			"x-auth-token",
		},
		SensitiveFields: []string{"password", "senha"},
		SkipPaths: []string{
			"/healthcheck/",
		},
		ErrorsOnly:      false,
		RequestIDHeader: "X-Request-ID",
	}
}

// responseBodyWriter wraps gin.ResponseWriter to capture response body
type responseBodyWriter struct {
	gin.ResponseWriter
	body  *bytes.Buffer
	limit int
}

func (w *responseBodyWriter) Write(data []byte) (int, error) {
	if w.body != nil && w.body.Len()+len(data) <= w.limit {
		w.body.Write(data)
	}
	return w.ResponseWriter.Write(data)
}

// LoggerMiddleware creates a Gin middleware that logs HTTP requests
// and records the request metrics
func LoggerMiddleware(l *logger.FileLogger, config ...MiddlewareConfig) gin.HandlerFunc {
	cfg := DefaultMiddlewareConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	excludedHeaders := make(map[string]bool)
	for _, header := range cfg.ExcludedHeaders {
		excludedHeaders[strings.ToLower(header)] = true
	}

	sensitive := make(map[string]bool)
	for _, f := range cfg.SensitiveFields {
		sensitive[strings.ToLower(f)] = true
	}

	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(cfg.RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}
		c.Header(cfg.RequestIDHeader, requestID)
		c.Set(RequestIDKey, requestID)

		if skipPaths[c.Request.URL.Path] {
			c.Next()
			telemetry.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
			return
		}

		var requestBody string
		if cfg.LogRequestBody && c.Request.Body != nil && strings.HasPrefix(c.ContentType(), "application/json") {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

				if len(bodyBytes) <= cfg.MaxBodySize {
					requestBody = redactJSON(bodyBytes, sensitive)
				} else {
					requestBody = "[BODY TOO LARGE]"
				}
			}
		}

		var responseBodyBuf *bytes.Buffer
		if cfg.LogResponseBody {
			responseBodyBuf = bytes.NewBuffer(make([]byte, 0, cfg.MaxBodySize))
			c.Writer = &responseBodyWriter{
				ResponseWriter: c.Writer,
				body:           responseBodyBuf,
				limit:          cfg.MaxBodySize,
			}
		}

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		telemetry.ObserveRequest(c.Request.Method, c.FullPath(), statusCode, duration)

		if cfg.ErrorsOnly && statusCode < 400 {
			return
		}

		headers := make(map[string]string)
		for name, values := range c.Request.Header {
			if !excludedHeaders[strings.ToLower(name)] && len(values) > 0 {
				headers[name] = values[0]
			}
		}

		var responseBody string
		if responseBodyBuf != nil {
			responseBody = responseBodyBuf.String()
		}

		level := logger.LevelInfo
		message := "HTTP Request"
		switch {
		case statusCode >= 500:
			level, message = logger.LevelError, "HTTP Server Error"
		case statusCode >= 400:
			level, message = logger.LevelWarn, "HTTP Client Error"
		case statusCode >= 300:
			message = "HTTP Redirect"
		}

		fields := map[string]interface{}{
			"component": "http_middleware",
		}
		if customFields, exists := c.Get("log_fields"); exists {
			if fieldMap, ok := customFields.(map[string]interface{}); ok {
				for k, v := range fieldMap {
					fields[k] = v
				}
			}
		}

		logCtx := logger.LogContext{
			HTTP: &logger.HTTPContext{
				Method:       c.Request.Method,
				Path:         c.Request.URL.Path,
				Query:        c.Request.URL.RawQuery,
				UserAgent:    c.Request.UserAgent(),
				RemoteIP:     c.ClientIP(),
				Headers:      headers,
				StatusCode:   statusCode,
				ResponseSize: c.Writer.Size(),
				RequestID:    requestID,
				RequestBody:  requestBody,
				ResponseBody: responseBody,
			},
			Performance: &logger.PerformanceContext{
				Duration:   duration,
				DurationMs: float64(duration.Microseconds()) / 1000,
			},
			Fields: fields,
		}

		if claims, ok := CurrentUser(c); ok {
			logCtx.User = &logger.UserContext{
				ID:    strconv.Itoa(claims.UserID),
				Email: claims.Email,
				Role:  strconv.Itoa(claims.Role),
			}
		}

		if len(c.Errors) > 0 {
			last := c.Errors.Last()
			logCtx.Error = &logger.ErrorContext{Type: "gin", Message: last.Error()}
		}

		l.WithContext(level, message, logCtx)
	}
}

// redactJSON mascara campos sensíveis em qualquer nível do corpo
func redactJSON(body []byte, sensitive map[string]bool) string {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return "[INVALID JSON]"
	}
	v = redactValue(v, sensitive)
	out, err := json.Marshal(v)
	if err != nil {
		return "[INVALID JSON]"
	}
	return string(out)
}

func redactValue(v interface{}, sensitive map[string]bool) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, inner := range t {
			if sensitive[strings.ToLower(k)] {
				t[k] = "***"
				continue
			}
			t[k] = redactValue(inner, sensitive)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = redactValue(t[i], sensitive)
		}
		return t
	}
	return v
}

// AddLogFields adds custom fields to be included in logs
func AddLogFields(c *gin.Context, fields map[string]interface{}) {
	existing, exists := c.Get("log_fields")
	if !exists {
		c.Set("log_fields", fields)
		return
	}

	if existingMap, ok := existing.(map[string]interface{}); ok {
		for k, v := range fields {
			existingMap[k] = v
		}
		c.Set("log_fields", existingMap)
	} else {
		c.Set("log_fields", fields)
	}
}
