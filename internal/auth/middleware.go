package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
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

		tokenStr := parts[1]

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		// Store identity info into Gin context for later handlers.
		c.Set("subjectID", claims.SubjectID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireEmployee rejects requests whose token does not carry the employee role.
// Must run after AuthRequired.
func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != RoleEmployee {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "employee role required",
			})
			return
		}
		c.Next()
	}
}
