package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"luggagelite/utils"
)

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthUserMiddleware authenticates customer requests. On success the
// authenticated user id is stored in the context under "userID".
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil || subject == "" || role != utils.TokenRoleUser {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("userID", subject)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by
// JWTAuthUserMiddleware.
func UserIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
