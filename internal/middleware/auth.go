package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zerix-app/zerix/pkg/session"
)

const UserIDKey = "userID"

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "zerix_session"

// TokenFromRequest reads the session token from the Authorization
// header, falling back to the session cookie.
func TokenFromRequest(c *gin.Context) string {
	hdr := c.GetHeader("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware resolves the acting user from the session store.
func AuthMiddleware(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}

		userID, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
