package middleware

import (
	"net/http"
	"strings"

	"Gavel/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthRequired accepts either a cookie session or a Bearer JWT. Whichever
// succeeds, the user's email ends up in the gin context under "email".
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if email := session.Get("Email"); email != nil {
		c.Set("email", email.(string))
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if claims, err := utils.ParseToken(token); err == nil {
			c.Set("email", claims.Email)
			c.Next()
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
