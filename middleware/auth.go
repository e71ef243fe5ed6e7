package middleware

import (
	"net/http"
	"strings"

	"pescalia/models"
	"pescalia/utils"

	"github.com/gin-gonic/gin"
)

const authContextKey = "authContext"

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// JWTAuthMiddleware validates the bearer token and stores the caller's
// AuthContext on the request. When optional is true, requests without a
// token pass through anonymously (empty AuthContext); protected routes use
// optional=false.
func JWTAuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		auth, err := utils.AuthContextFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(authContextKey, auth)
		c.Next()
	}
}

// JWTAuthAdminMiddleware requires a valid token carrying the admin role.
// The role is checked before the chain continues, so a non-admin request
// never reaches the handler.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		auth, err := utils.AuthContextFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if !auth.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		c.Set(authContextKey, auth)
		c.Next()
	}
}

// GetAuthContext returns the caller identity set by the auth middleware; a
// zero AuthContext means anonymous.
func GetAuthContext(c *gin.Context) models.AuthContext {
	if v, ok := c.Get(authContextKey); ok {
		if auth, ok := v.(models.AuthContext); ok {
			return auth
		}
	}
	return models.AuthContext{}
}
