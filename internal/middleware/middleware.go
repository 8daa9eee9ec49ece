package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memorywall/api/internal/helpers"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Log request completion
		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Handle any errors that occurred during request processing
		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(500, gin.H{
					"error":      "Internal server error",
					"request_id": requestID,
				})
			}
		}
	}
}

// CallerContext extracts the caller identity from the request headers once
// per request and stores it in the gin context for every handler downstream.
// The admin check is a plain equality against the configured passcode; there
// are no tokens or sessions anywhere in the system.
func CallerContext(adminPasscode, defaultHostID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := headerValue(c, "x-host-id")
		if hostID == "" {
			hostID = defaultHostID
		}

		userID := headerValue(c, "x-user-id")
		passcode := headerValue(c, "x-admin-passcode")

		caller := &helpers.Caller{
			HostID:  hostID,
			UserID:  userID,
			IsAdmin: passcode != "" && adminPasscode != "" && passcode == adminPasscode,
		}

		c.Set(helpers.CallerKey, caller)
		c.Next()
	}
}

func headerValue(c *gin.Context, name string) string {
	return strings.TrimSpace(c.GetHeader(name))
}
