package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SharerHeader carries the caller's user id when a trusted gateway
// has already authenticated the request.
const SharerHeader = "X-Sharer-User-Id"

// MiddlewareConfig configures AuthRequired.
type MiddlewareConfig struct {
	JWTManager        *JWTManager
	Denylist          Denylist // optional
	TrustSharerHeader bool
	Logger            *zap.Logger
}

// AuthRequired is a Gin middleware that authenticates the caller either from
// Authorization: Bearer <token> or, when enabled, from the X-Sharer-User-Id header.
func AuthRequired(cfg MiddlewareConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if header == "" && cfg.TrustSharerHeader {
			userID := c.GetHeader(SharerHeader)
			if _, err := uuid.Parse(userID); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "missing or invalid " + SharerHeader + " header",
				})
				return
			}
			c.Set(ctxUserID, userID)
			c.Next()
			return
		}

		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := cfg.JWTManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		if cfg.Denylist != nil {
			revoked, err := cfg.Denylist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("token denylist lookup failed", zap.String("jti", claims.ID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid or expired token",
				})
				return
			}
		}

		c.Set(ctxUserID, claims.UserID())
		c.Set(ctxTokenID, claims.ID)
		c.Set(ctxTokenExpiry, claims.ExpiresAt.Time)

		c.Next()
	}
}
