package handlers

import (
	"github.com/gin-gonic/gin"

	"lease-backend/internal/services"
	"lease-backend/internal/utils"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetUsers 用户目录，用于选择分享对象，只含公开字段
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, users)
}
