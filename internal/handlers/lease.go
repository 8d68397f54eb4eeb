package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lease-backend/internal/models"
	"lease-backend/internal/services"
	"lease-backend/internal/utils"
)

type LeaseHandler struct {
	leaseService *services.LeaseService
}

func NewLeaseHandler(leaseService *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// GetLeases 本人租约与被分享租约的并集，附带费用汇总
func (h *LeaseHandler) GetLeases(c *gin.Context) {
	userID, _ := c.Get("user_id")

	leases, err := h.leaseService.ListLeases(userID.(uint))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, leases)
}

func (h *LeaseHandler) CreateLease(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.LeaseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	lease, err := h.leaseService.CreateLease(userID.(uint), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Created(c, "租约创建成功", lease)
}

func (h *LeaseHandler) GetLease(c *gin.Context) {
	userID, _ := c.Get("user_id")
	leaseID := c.Param("id")

	lease, err := h.leaseService.GetLease(userID.(uint), leaseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, lease)
}

func (h *LeaseHandler) UpdateLease(c *gin.Context) {
	userID, _ := c.Get("user_id")
	leaseID := c.Param("id")

	var req models.LeaseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	lease, err := h.leaseService.UpdateLease(userID.(uint), leaseID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "租约更新成功", lease)
}

func (h *LeaseHandler) DeleteLease(c *gin.Context) {
	userID, _ := c.Get("user_id")
	leaseID := c.Param("id")

	if err := h.leaseService.DeleteLease(userID.(uint), leaseID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "租约删除成功", nil)
}
