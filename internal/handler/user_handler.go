package handler

import (
	"net/http"

	"darb_pms/internal/model"
	"darb_pms/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin-only user management routes.
type UserHandler struct {
	responder
	service service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.AuthService, production bool) *UserHandler {
	return &UserHandler{responder: responder{production: production}, service: s}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users retrieved successfully", "data": views, "count": len(views)})
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=admin user ceo"`
	}
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.service.ChangeRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "data": user.View()})
}

// RegisterUserRoutes registers user management routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users", authMW, adminMW)
	{
		users.GET("", h.ListUsers)
		users.PATCH("/:id/role", h.ChangeRole)
	}
}
