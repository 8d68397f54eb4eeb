package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lease-backend/internal/config"
	"lease-backend/internal/models"
	"lease-backend/internal/services"
	"lease-backend/internal/utils"
)

type ShareHandler struct {
	shareService *services.ShareService
	config       *config.Config
}

func NewShareHandler(shareService *services.ShareService, cfg *config.Config) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		config:       cfg,
	}
}

// CreateShareToken 签发（或复用）租约的分享令牌
func (h *ShareHandler) CreateShareToken(c *gin.Context) {
	userID, _ := c.Get("user_id")
	leaseID := c.Param("id")

	token, err := h.shareService.IssueShareToken(userID.(uint), leaseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, models.ShareTokenResponse{
		Token:    token,
		ShareURL: fmt.Sprintf("%s/dashboard/share/%s", h.config.Frontend.BaseURL, token),
	})
}

// ShareLease 把租约分享给指定用户（只读）
func (h *ShareHandler) ShareLease(c *gin.Context) {
	userID, _ := c.Get("user_id")
	leaseID := c.Param("id")

	var req models.ShareLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	share, err := h.shareService.ShareWithUser(userID.(uint), leaseID, req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Created(c, "租约分享成功", share)
}

// GetSharedLease 匿名通过分享令牌读取租约摘要
func (h *ShareHandler) GetSharedLease(c *gin.Context) {
	token := c.Param("token")

	view, err := h.shareService.ResolveShareToken(token)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, view)
}
