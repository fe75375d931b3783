package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per completed request.
func RequestLogger() gin.HandlerFunc {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		attrs := buildLogAttributes(c, status, duration)

		logger.LogAttrs(c.Request.Context(), determineLogLevel(status), "request completed", attrs...)
	}
}

func determineLogLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func buildLogAttributes(c *gin.Context, status int, duration time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	}

	appendStringAttr(&attrs, "query", c.Request.URL.RawQuery)
	appendStringAttr(&attrs, "client_ip", clientIP(c.Request.Header, c.ClientIP()))
	appendStringAttr(&attrs, "user_agent", c.Request.UserAgent())
	appendStringAttr(&attrs, "request_id", c.Request.Header.Get("X-Request-Id"))

	if size := c.Writer.Size(); size >= 0 {
		attrs = append(attrs, slog.Int("response_bytes", size))
	}
	if len(c.Errors) > 0 {
		attrs = append(attrs, slog.String("error", c.Errors.String()))
	}
	return attrs
}

func appendStringAttr(attrs *[]slog.Attr, key, value string) {
	if value == "" {
		return
	}
	*attrs = append(*attrs, slog.String(key, value))
}

func clientIP(header http.Header, fallback string) string {
	forwarded := header.Get("X-Forwarded-For")
	if forwarded == "" {
		return fallback
	}
	for _, part := range strings.Split(forwarded, ",") {
		if candidate := strings.TrimSpace(part); candidate != "" {
			return candidate
		}
	}
	return fallback
}
