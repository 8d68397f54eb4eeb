// internal/services/access.go - 租约访问控制
package services

import (
	"errors"

	"gorm.io/gorm"

	"lease-backend/internal/models"
)

type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// CanRead 所有者和被分享用户可读。
// 匿名令牌访问不经过这里，由 ShareService 单独处理。
func (s *AccessService) CanRead(userID uint, lease *models.Lease) (bool, error) {
	if lease.UserID == userID {
		return true, nil
	}
	return s.isSharedWith(lease.ID, userID)
}

// CanWrite 只有所有者可以修改，分享不授予写权限
func (s *AccessService) CanWrite(userID uint, lease *models.Lease) bool {
	return lease.UserID == userID
}

// CanDelete 只有所有者可以删除
func (s *AccessService) CanDelete(userID uint, lease *models.Lease) bool {
	return lease.UserID == userID
}

// CanShare 校验分享操作：调用者是所有者、目标用户存在、未重复分享
func (s *AccessService) CanShare(userID uint, lease *models.Lease, targetUserID uint) error {
	if lease.UserID != userID {
		return ErrForbidden
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", targetUserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}

	shared, err := s.isSharedWith(lease.ID, targetUserID)
	if err != nil {
		return err
	}
	if shared {
		return ErrConflict
	}

	return nil
}

func (s *AccessService) isSharedWith(leaseID string, userID uint) (bool, error) {
	var share models.SharedLease
	err := s.db.Where("lease_id = ? AND user_id = ?", leaseID, userID).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
