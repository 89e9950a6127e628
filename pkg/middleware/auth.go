package middleware

import (
	"net/http"

	"exchange_back/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "session"

	userIDKey = "userId"
	emailKey  = "userEmail"
	roleKey   = "userRole"
)

type TokenParser interface {
	Parse(signed string) (*token.Claims, error)
}

// AuthMiddleware requires a valid session cookie and puts the caller's id,
// email and role on the context. The role is taken from the token as is.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		signed, err := c.Cookie(SessionCookie)
		if err != nil || signed == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		claims, err := parser.Parse(signed)
		if err != nil {
			logrus.WithError(err).Debug("rejected session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(roleKey) != role {
			logrus.WithFields(logrus.Fields{
				"user_id": c.GetString(userIDKey),
				"path":    c.FullPath(),
			}).Warn("forbidden")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func UserEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

func UserRole(c *gin.Context) string {
	return c.GetString(roleKey)
}
