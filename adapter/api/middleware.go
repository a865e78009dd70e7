package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/identity/application/session"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestContext stamps request and correlation ids on the request context.
func requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := observability.WithRequestID(c.Request.Context(), c.GetHeader(requestIDHeader))
		ctx = observability.WithCorrelationID(ctx, observability.RequestIDFromContext(ctx))
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, observability.RequestIDFromContext(ctx))
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			observability.DurationKey, time.Since(start).Milliseconds(),
		)
	}
}

// requireSession resolves the bearer token into a user or aborts with 401.
func requireSession(resolver session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(session.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func currentUser(c *gin.Context) uuid.UUID {
	id, _ := session.UserIDFromContext(c.Request.Context())
	return id
}
