package middleware

import (
	"net/http"
	"slices"

	"darb_pms/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			abortWithMessage(c, http.StatusForbidden, "Role not found")
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			abortWithMessage(c, http.StatusForbidden, "Invalid role type")
			return
		}

		if !slices.Contains(allowedRoles, userRole) {
			abortWithMessage(c, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
