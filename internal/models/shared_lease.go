package models

import (
	"time"

	"lease-backend/pkg/leasecalc"
)

// SharedLease 租约与被分享用户的关联，(lease_id, user_id) 唯一
type SharedLease struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LeaseID   string    `json:"lease_id" gorm:"size:36;not null;uniqueIndex:idx_lease_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_lease_user"`
	CreatedAt time.Time `json:"created_at"`

	// 关联
	Lease Lease `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type ShareLeaseRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

type ShareTokenResponse struct {
	Token    string `json:"token"`
	ShareURL string `json:"share_url"`
}

// SharedLeaseOwner 分享页只暴露所有者的公开信息
type SharedLeaseOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SharedLeaseView 通过分享令牌访问时返回的只读投影，
// 不含完整租约记录和其他用户数据
type SharedLeaseView struct {
	ID                string             `json:"id"`
	LeaseType         LeaseType          `json:"lease_type"`
	StartDate         time.Time          `json:"start_date"`
	EndDate           time.Time          `json:"end_date"`
	MonthlyRent       float64            `json:"monthly_rent"`
	SecurityDeposit   float64            `json:"security_deposit"`
	UtilitiesIncluded bool               `json:"utilities_included"`
	Summary           *leasecalc.Summary `json:"summary"`
	Owner             SharedLeaseOwner   `json:"owner"`
}
