// internal/services/share_service.go - 分享令牌与用户间分享
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lease-backend/internal/models"
	"lease-backend/pkg/leasecalc"
)

type ShareService struct {
	db     *gorm.DB
	access *AccessService
}

func NewShareService(db *gorm.DB, access *AccessService) *ShareService {
	return &ShareService{db: db, access: access}
}

// IssueShareToken 为租约签发分享令牌。已有令牌时原样返回（幂等）。
// 首次签发使用条件更新，并发请求最终收敛到同一个持久化的令牌。
func (s *ShareService) IssueShareToken(userID uint, leaseID string) (string, error) {
	var lease models.Lease
	err := s.db.Where("id = ? AND user_id = ?", leaseID, userID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if lease.ShareToken != nil {
		return *lease.ShareToken, nil
	}

	token := uuid.NewString()
	err = s.db.Model(&models.Lease{}).
		Where("id = ? AND share_token IS NULL", leaseID).
		Update("share_token", token).Error
	if err != nil {
		return "", err
	}

	// 写后重读：并发首发时两个调用方都拿到最终持久化的那个令牌
	if err := s.db.Select("share_token").First(&lease, "id = ?", leaseID).Error; err != nil {
		return "", err
	}
	if lease.ShareToken == nil {
		return "", errors.New("share token not persisted")
	}

	return *lease.ShareToken, nil
}

// ResolveShareToken 解析分享令牌，返回只读投影。
// 格式校验先于任何数据库查询，避免泄露"接近命中"的信息。
func (s *ShareService) ResolveShareToken(token string) (*models.SharedLeaseView, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInvalidToken
	}

	var lease models.Lease
	err := s.db.Preload("User").Where("share_token = ?", token).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 过期与不存在是两种不同的结果
	if lease.EndDate.Before(time.Now()) {
		return nil, ErrLeaseExpired
	}

	summary := leasecalc.Calculate(lease.CalcInput())

	return &models.SharedLeaseView{
		ID:                lease.ID,
		LeaseType:         lease.LeaseType,
		StartDate:         lease.StartDate,
		EndDate:           lease.EndDate,
		MonthlyRent:       lease.MonthlyRent,
		SecurityDeposit:   lease.SecurityDeposit,
		UtilitiesIncluded: lease.UtilitiesIncluded,
		Summary:           &summary,
		Owner: models.SharedLeaseOwner{
			Name:  lease.User.Name,
			Email: lease.User.Email,
		},
	}, nil
}

// ShareWithUser 把租约分享给指定用户（只读）
func (s *ShareService) ShareWithUser(userID uint, leaseID string, targetUserID uint) (*models.SharedLease, error) {
	var lease models.Lease
	err := s.db.Where("id = ?", leaseID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 非所有者不暴露租约存在性
	if lease.UserID != userID {
		return nil, ErrNotFound
	}

	if err := s.access.CanShare(userID, &lease, targetUserID); err != nil {
		return nil, err
	}

	share := models.SharedLease{
		LeaseID: leaseID,
		UserID:  targetUserID,
	}
	if err := s.db.Create(&share).Error; err != nil {
		return nil, err
	}

	return &share, nil
}
