package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lease-backend/internal/services"
	"lease-backend/internal/utils"
)

// handleServiceError 把服务层的错误分类映射到响应码
func handleServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		utils.ValidationError(c, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLeaseExpired):
		utils.Gone(c, err.Error())
	case errors.Is(err, services.ErrInvalidToken):
		utils.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(c, http.StatusUnauthorized, err.Error())
	default:
		logrus.WithError(err).Error("未处理的服务错误")
		utils.InternalError(c)
	}
}
