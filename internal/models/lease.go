package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lease-backend/pkg/leasecalc"
)

type LeaseType string

const (
	LeaseTypeResidential LeaseType = "RESIDENTIAL"
	LeaseTypeCommercial  LeaseType = "COMMERCIAL"
)

// Lease 主键使用 UUID，避免顺序 ID 被枚举
type Lease struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:36"`
	UserID                uint      `json:"user_id" gorm:"not null;index"`
	StartDate             time.Time `json:"start_date" gorm:"not null"`
	EndDate               time.Time `json:"end_date" gorm:"not null"`
	MonthlyRent           float64   `json:"monthly_rent" gorm:"not null"`
	SecurityDeposit       float64   `json:"security_deposit" gorm:"not null;default:0"`
	AdditionalCharges     *float64  `json:"additional_charges,omitempty"`
	AnnualRentIncrease    float64   `json:"annual_rent_increase" gorm:"default:0"`
	LeaseType             LeaseType `json:"lease_type" gorm:"size:20;default:RESIDENTIAL"`
	UtilitiesIncluded     bool      `json:"utilities_included" gorm:"default:false"`
	MonthlyMaintenanceFee float64   `json:"monthly_maintenance_fee" gorm:"default:0"`
	LatePaymentPenalty    float64   `json:"late_payment_penalty" gorm:"default:0"`
	Notes                 *string   `json:"notes,omitempty" gorm:"type:text"`
	ShareToken            *string   `json:"share_token,omitempty" gorm:"size:36;uniqueIndex"`
	CreatedAt             time.Time `json:"created_at" gorm:"index"`
	UpdatedAt             time.Time `json:"updated_at"`

	// 关联
	User         User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SharedLeases []SharedLease `json:"shared_leases,omitempty" gorm:"foreignKey:LeaseID;constraint:OnDelete:CASCADE"`

	// 计算字段
	Summary *leasecalc.Summary `json:"summary,omitempty" gorm:"-"`
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// CalcInput 把租约的财务字段转成计算器输入
func (l *Lease) CalcInput() leasecalc.Input {
	var additional float64
	if l.AdditionalCharges != nil {
		additional = *l.AdditionalCharges
	}
	return leasecalc.Input{
		StartDate:             l.StartDate,
		EndDate:               l.EndDate,
		MonthlyRent:           l.MonthlyRent,
		AnnualRentIncrease:    l.AnnualRentIncrease,
		MonthlyMaintenanceFee: l.MonthlyMaintenanceFee,
		AdditionalCharges:     additional,
		SecurityDeposit:       l.SecurityDeposit,
	}
}

type LeaseCreateRequest struct {
	StartDate             *time.Time `json:"start_date" validate:"required"`
	EndDate               *time.Time `json:"end_date" validate:"required"`
	MonthlyRent           *float64   `json:"monthly_rent" validate:"required,gt=0"`
	SecurityDeposit       *float64   `json:"security_deposit" validate:"required,gte=0"`
	AdditionalCharges     *float64   `json:"additional_charges" validate:"omitempty,gte=0"`
	AnnualRentIncrease    *float64   `json:"annual_rent_increase" validate:"omitempty,gte=0"`
	LeaseType             *LeaseType `json:"lease_type" validate:"omitempty,oneof=RESIDENTIAL COMMERCIAL"`
	UtilitiesIncluded     *bool      `json:"utilities_included"`
	MonthlyMaintenanceFee *float64   `json:"monthly_maintenance_fee" validate:"omitempty,gte=0"`
	LatePaymentPenalty    *float64   `json:"late_payment_penalty" validate:"omitempty,gte=0"`
	Notes                 *string    `json:"notes"`
}

// LeaseUpdateRequest 部分更新：缺省字段保持原值。
// SharedLeases 只用于拒绝通过通用更新修改分享关系。
type LeaseUpdateRequest struct {
	StartDate             *time.Time      `json:"start_date"`
	EndDate               *time.Time      `json:"end_date"`
	MonthlyRent           *float64        `json:"monthly_rent" validate:"omitempty,gt=0"`
	SecurityDeposit       *float64        `json:"security_deposit" validate:"omitempty,gte=0"`
	AdditionalCharges     *float64        `json:"additional_charges" validate:"omitempty,gte=0"`
	AnnualRentIncrease    *float64        `json:"annual_rent_increase" validate:"omitempty,gte=0"`
	LeaseType             *LeaseType      `json:"lease_type" validate:"omitempty,oneof=RESIDENTIAL COMMERCIAL"`
	UtilitiesIncluded     *bool           `json:"utilities_included"`
	MonthlyMaintenanceFee *float64        `json:"monthly_maintenance_fee" validate:"omitempty,gte=0"`
	LatePaymentPenalty    *float64        `json:"late_payment_penalty" validate:"omitempty,gte=0"`
	Notes                 *string         `json:"notes"`
	SharedLeases          json.RawMessage `json:"shared_leases"`
}
