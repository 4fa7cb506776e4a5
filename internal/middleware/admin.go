package middleware

import (
	"net/http"

	"roamio/internal/domain"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user has the ADMIN role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(string) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, common.Fail("admin access required"))
			return
		}
		c.Next()
	}
}
