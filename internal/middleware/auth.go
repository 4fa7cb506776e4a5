package middleware

import (
	"net/http"
	"strings"

	"roamio/config"
	"roamio/internal/auth"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets UserID, Email, Role in
// context. 401s are distinct from 403s so the client can tell "log in" apart
// from "no permission".
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.Fail("missing authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.Fail("invalid authorization format"))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.Fail("invalid or expired token"))
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from context (must be used after AuthRequired).
func GetUserID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}
