package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID      = "userID"
	ctxTokenID     = "tokenID"
	ctxTokenExpiry = "tokenExpiry"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetToken returns the id and expiry of the bearer token used for the request.
// ok is false when the request was authenticated by the gateway header.
func GetToken(c *gin.Context) (id string, expiresAt time.Time, ok bool) {
	id = c.GetString(ctxTokenID)
	if id == "" {
		return "", time.Time{}, false
	}
	return id, c.GetTime(ctxTokenExpiry), true
}
