package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-annor/stayhub/internal/helpers"
)

const identityKey = "identity"

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

		c.Next()

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

// ErrorHandler logs any errors handlers attached to the context. The JSON
// body has already been written by the handler at that point, so this only
// records; it never writes a response.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			requestID, _ := c.Get("request_id")
			for _, err := range c.Errors {
				logger.Error("Request error",
					"request_id", requestID,
					"error", err.Error(),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
			}
		}
	}
}

// bearerToken pulls the session token from the Authorization header, or
// falls back to the __session cookie the frontend sets.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("__session"); err == nil {
		return cookie
	}
	return ""
}

// Auth validates the caller's session token against the identity
// provider's JWKS and stores the resulting Identity on the context.
func Auth(jwksURL string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, helpers.ErrorResponse("authentication required"))
			return
		}

		claims, err := helpers.ValidateToken(token, jwksURL)
		if err != nil {
			logger.Warn("Token validation failed", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, helpers.Identity{
			UserID: claims.Subject,
			Email:  claims.Email,
		})
		c.Next()
	}
}

// OptionalAuth attaches an Identity when a valid token is present but lets
// anonymous requests through.
func OptionalAuth(jwksURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := helpers.ValidateToken(token, jwksURL); err == nil {
				c.Set(identityKey, helpers.Identity{
					UserID: claims.Subject,
					Email:  claims.Email,
				})
			}
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated Identity, or a zero Identity for
// anonymous requests.
func GetIdentity(c *gin.Context) helpers.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(helpers.Identity); ok {
			return id
		}
	}
	return helpers.Identity{}
}
