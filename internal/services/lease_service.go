// internal/services/lease_service.go - 租约生命周期
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lease-backend/internal/models"
	"lease-backend/pkg/leasecalc"
	"lease-backend/pkg/validator"
)

type LeaseService struct {
	db     *gorm.DB
	access *AccessService
}

func NewLeaseService(db *gorm.DB, access *AccessService) *LeaseService {
	return &LeaseService{db: db, access: access}
}

func (s *LeaseService) CreateLease(userID uint, req *models.LeaseCreateRequest) (*models.Lease, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}
	if req.StartDate != nil && req.EndDate != nil {
		if err := validateDateRange(*req.StartDate, *req.EndDate); err != nil {
			return nil, err
		}
	}

	lease := models.Lease{
		UserID:          userID,
		StartDate:       req.StartDate.UTC(),
		EndDate:         req.EndDate.UTC(),
		MonthlyRent:     *req.MonthlyRent,
		SecurityDeposit: *req.SecurityDeposit,
		LeaseType:       models.LeaseTypeResidential,
		Notes:           req.Notes,
	}

	// 可选字段缺省时使用文档化的默认值
	if req.AdditionalCharges != nil {
		lease.AdditionalCharges = req.AdditionalCharges
	}
	if req.AnnualRentIncrease != nil {
		lease.AnnualRentIncrease = *req.AnnualRentIncrease
	}
	if req.LeaseType != nil {
		lease.LeaseType = *req.LeaseType
	}
	if req.UtilitiesIncluded != nil {
		lease.UtilitiesIncluded = *req.UtilitiesIncluded
	}
	if req.MonthlyMaintenanceFee != nil {
		lease.MonthlyMaintenanceFee = *req.MonthlyMaintenanceFee
	}
	if req.LatePaymentPenalty != nil {
		lease.LatePaymentPenalty = *req.LatePaymentPenalty
	}

	if err := s.db.Create(&lease).Error; err != nil {
		return nil, err
	}

	return &lease, nil
}

func (s *LeaseService) GetLease(userID uint, leaseID string) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Preload("User").Preload("SharedLeases.User").
		Where("id = ?", leaseID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 不可见的租约与不存在的租约返回同样的结果，避免泄露存在性
	canRead, err := s.access.CanRead(userID, &lease)
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, ErrNotFound
	}

	summary := leasecalc.Calculate(lease.CalcInput())
	lease.Summary = &summary

	return &lease, nil
}

func (s *LeaseService) UpdateLease(userID uint, leaseID string, req *models.LeaseUpdateRequest) (*models.Lease, error) {
	// 分享关系只能通过分享接口修改
	if len(req.SharedLeases) > 0 {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "shared_leases", Message: "分享关系不能通过更新接口修改"},
		}}
	}

	if err := validator.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}

	lease, err := s.findForMutation(userID, leaseID)
	if err != nil {
		return nil, err
	}

	// 与现有值合并后再校验日期区间
	startDate := lease.StartDate
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}
	endDate := lease.EndDate
	if req.EndDate != nil {
		endDate = req.EndDate.UTC()
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	// 只更新请求中出现的字段，缺省字段保持原值
	updates := map[string]interface{}{}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate.UTC()
	}
	if req.MonthlyRent != nil {
		updates["monthly_rent"] = *req.MonthlyRent
	}
	if req.SecurityDeposit != nil {
		updates["security_deposit"] = *req.SecurityDeposit
	}
	if req.AdditionalCharges != nil {
		updates["additional_charges"] = *req.AdditionalCharges
	}
	if req.AnnualRentIncrease != nil {
		updates["annual_rent_increase"] = *req.AnnualRentIncrease
	}
	if req.LeaseType != nil {
		updates["lease_type"] = *req.LeaseType
	}
	if req.UtilitiesIncluded != nil {
		updates["utilities_included"] = *req.UtilitiesIncluded
	}
	if req.MonthlyMaintenanceFee != nil {
		updates["monthly_maintenance_fee"] = *req.MonthlyMaintenanceFee
	}
	if req.LatePaymentPenalty != nil {
		updates["late_payment_penalty"] = *req.LatePaymentPenalty
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(lease).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Lease
	if err := s.db.Preload("SharedLeases.User").First(&updated, "id = ?", leaseID).Error; err != nil {
		return nil, err
	}

	summary := leasecalc.Calculate(updated.CalcInput())
	updated.Summary = &summary

	return &updated, nil
}

// DeleteLease 删除租约并级联删除其分享记录
func (s *LeaseService) DeleteLease(userID uint, leaseID string) error {
	lease, err := s.findForMutation(userID, leaseID)
	if err != nil {
		return err
	}

	// 使用事务确保不留下孤儿分享记录
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lease_id = ?", lease.ID).Delete(&models.SharedLease{}).Error; err != nil {
			return err
		}
		return tx.Delete(lease).Error
	})
}

// ListLeases 返回本人的租约与被分享的租约，每条附带费用汇总。
// 单次调用内顺序稳定：先本人后分享，各自按创建时间倒序。
func (s *LeaseService) ListLeases(userID uint) ([]models.Lease, error) {
	var owned []models.Lease
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id").Find(&owned).Error; err != nil {
		return nil, err
	}

	var shared []models.Lease
	if err := s.db.Joins("JOIN shared_leases ON shared_leases.lease_id = leases.id").
		Where("shared_leases.user_id = ?", userID).
		Order("leases.created_at DESC, leases.id").Find(&shared).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned))
	leases := make([]models.Lease, 0, len(owned)+len(shared))
	for _, batch := range [][]models.Lease{owned, shared} {
		for i := range batch {
			if seen[batch[i].ID] {
				continue
			}
			seen[batch[i].ID] = true
			summary := leasecalc.Calculate(batch[i].CalcInput())
			batch[i].Summary = &summary
			leases = append(leases, batch[i])
		}
	}

	return leases, nil
}

// findForMutation 定位租约并做写权限检查：
// 陌生人拿到 NotFound，被分享的只读用户拿到 Forbidden
func (s *LeaseService) findForMutation(userID uint, leaseID string) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Where("id = ?", leaseID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !s.access.CanWrite(userID, &lease) {
		canRead, err := s.access.CanRead(userID, &lease)
		if err != nil {
			return nil, err
		}
		if canRead {
			return nil, ErrForbidden
		}
		return nil, ErrNotFound
	}

	return &lease, nil
}

func validateDateRange(start, end time.Time) error {
	if leasecalc.TotalMonths(start, end) <= 0 {
		return &ValidationError{Fields: []FieldError{
			{Field: "end_date", Message: "结束日期必须晚于开始日期至少一个整月"},
		}}
	}
	return nil
}
