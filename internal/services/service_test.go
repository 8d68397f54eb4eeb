package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lease-backend/internal/models"
)

// setupDB 每个测试一个独立的内存数据库
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Lease{},
		&models.SharedLease{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// createTestLease 创建一条 12 个月、月租 1000 的租约
func createTestLease(t *testing.T, svc *LeaseService, ownerID uint) *models.Lease {
	t.Helper()

	lease, err := svc.CreateLease(ownerID, &models.LeaseCreateRequest{
		StartDate:       timePtr(testDate(2025, time.January, 1)),
		EndDate:         timePtr(testDate(2026, time.January, 1)),
		MonthlyRent:     floatPtr(1000),
		SecurityDeposit: floatPtr(2000),
	})
	require.NoError(t, err)
	return lease
}
