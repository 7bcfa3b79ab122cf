package auth

import "github.com/gin-gonic/gin"

// GetSubjectID returns the authenticated subject's ID or empty string.
func GetSubjectID(c *gin.Context) string {
	if v, ok := c.Get("subjectID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole returns the authenticated subject's role or empty string.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
