package api

import (
	"net/http"
	"strings"

	"github.com/Karatsuyu/delicious-food-app/internal/auth"
	"github.com/Karatsuyu/delicious-food-app/internal/service"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the resulting
// principal in the request context. Handlers hand it to services
// explicitly; nothing below the API layer reads ambient request state.
func AuthMiddleware(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokens.VerifyToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(principalKey, service.Principal{
			UserID:  claims.UserID,
			Email:   claims.Email,
			IsStaff: claims.IsStaff,
		})
		c.Next()
	}
}

// getPrincipal returns the authenticated caller set by AuthMiddleware.
func getPrincipal(c *gin.Context) service.Principal {
	principal, _ := c.Get(principalKey)
	p, _ := principal.(service.Principal)
	return p
}
