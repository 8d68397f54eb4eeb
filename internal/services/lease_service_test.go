package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-backend/internal/models"
)

func TestCreateLeaseMissingMonthlyRent(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	_, err := svc.CreateLease(owner.ID, &models.LeaseCreateRequest{
		StartDate:       timePtr(testDate(2025, time.January, 1)),
		EndDate:         timePtr(testDate(2026, time.January, 1)),
		SecurityDeposit: floatPtr(0),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "monthly_rent")
}

func TestCreateLeaseEnumeratesAllViolations(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	_, err := svc.CreateLease(owner.ID, &models.LeaseCreateRequest{
		MonthlyRent:     floatPtr(-5),
		SecurityDeposit: floatPtr(-1),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]bool, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["start_date"])
	assert.True(t, fields["end_date"])
	assert.True(t, fields["monthly_rent"])
	assert.True(t, fields["security_deposit"])
}

func TestCreateLeaseRejectsNonPositiveDuration(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	// 同月内结束，整月差为 0
	_, err := svc.CreateLease(owner.ID, &models.LeaseCreateRequest{
		StartDate:       timePtr(testDate(2025, time.January, 1)),
		EndDate:         timePtr(testDate(2025, time.January, 31)),
		MonthlyRent:     floatPtr(1000),
		SecurityDeposit: floatPtr(0),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateLeaseAppliesDefaults(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	lease := createTestLease(t, svc, owner.ID)

	assert.NotEmpty(t, lease.ID)
	assert.Equal(t, models.LeaseTypeResidential, lease.LeaseType)
	assert.False(t, lease.UtilitiesIncluded)
	assert.Zero(t, lease.AnnualRentIncrease)
	assert.Zero(t, lease.MonthlyMaintenanceFee)
	assert.Zero(t, lease.LatePaymentPenalty)
	assert.Nil(t, lease.AdditionalCharges)
	assert.Nil(t, lease.ShareToken)
}

func TestGetLeaseHidesExistenceFromStrangers(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")
	stranger := createTestUser(t, db, "stranger", "stranger@example.com")

	lease := createTestLease(t, svc, owner.ID)

	_, err := svc.GetLease(stranger.ID, lease.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetLease(owner.ID, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 12, got.Summary.TotalMonths)
}

func TestGetLeaseAllowsSharedReader(t *testing.T) {
	db := setupDB(t)
	access := NewAccessService(db)
	svc := NewLeaseService(db, access)
	shareSvc := NewShareService(db, access)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")

	lease := createTestLease(t, svc, owner.ID)
	_, err := shareSvc.ShareWithUser(owner.ID, lease.ID, reader.ID)
	require.NoError(t, err)

	got, err := svc.GetLease(reader.ID, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.ID, got.ID)
}

func TestUpdateLeasePartialKeepsAbsentFields(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	lease := createTestLease(t, svc, owner.ID)

	updated, err := svc.UpdateLease(owner.ID, lease.ID, &models.LeaseUpdateRequest{
		MonthlyRent: floatPtr(1200),
	})
	require.NoError(t, err)

	assert.InDelta(t, 1200, updated.MonthlyRent, 0.001)
	// 未出现在请求里的字段保持原值，不会被重置
	assert.InDelta(t, 2000, updated.SecurityDeposit, 0.001)
	assert.True(t, updated.StartDate.Equal(lease.StartDate))
	assert.True(t, updated.EndDate.Equal(lease.EndDate))
}

func TestUpdateLeaseRejectsSharedLeasesField(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaseService(db, NewAccessService(db))
	owner := createTestUser(t, db, "owner", "owner@example.com")

	lease := createTestLease(t, svc, owner.ID)

	_, err := svc.UpdateLease(owner.ID, lease.ID, &models.LeaseUpdateRequest{
		SharedLeases: []byte(`[{"user_id": 2}]`),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shared_leases", verr.Fields[0].Field)
}

func TestUpdateLeaseForbiddenForSharedReader(t *testing.T) {
	db := setupDB(t)
	access := NewAccessService(db)
	svc := NewLeaseService(db, access)
	shareSvc := NewShareService(db, access)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")
	stranger := createTestUser(t, db, "stranger", "stranger@example.com")

	lease := createTestLease(t, svc, owner.ID)
	_, err := shareSvc.ShareWithUser(owner.ID, lease.ID, reader.ID)
	require.NoError(t, err)

	// 被分享用户可读不可写
	_, err = svc.UpdateLease(reader.ID, lease.ID, &models.LeaseUpdateRequest{
		MonthlyRent: floatPtr(1),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// 陌生人连存在性都不可见
	_, err = svc.UpdateLease(stranger.ID, lease.ID, &models.LeaseUpdateRequest{
		MonthlyRent: floatPtr(1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLeaseCascadesShares(t *testing.T) {
	db := setupDB(t)
	access := NewAccessService(db)
	svc := NewLeaseService(db, access)
	shareSvc := NewShareService(db, access)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")

	lease := createTestLease(t, svc, owner.ID)
	_, err := shareSvc.ShareWithUser(owner.ID, lease.ID, reader.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLease(owner.ID, lease.ID))

	var count int64
	require.NoError(t, db.Model(&models.SharedLease{}).Where("lease_id = ?", lease.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.GetLease(owner.ID, lease.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLeaseOnlyOwner(t *testing.T) {
	db := setupDB(t)
	access := NewAccessService(db)
	svc := NewLeaseService(db, access)
	shareSvc := NewShareService(db, access)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")

	lease := createTestLease(t, svc, owner.ID)
	_, err := shareSvc.ShareWithUser(owner.ID, lease.ID, reader.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteLease(reader.ID, lease.ID), ErrForbidden)
}

func TestListLeasesUnionWithSummaries(t *testing.T) {
	db := setupDB(t)
	access := NewAccessService(db)
	svc := NewLeaseService(db, access)
	shareSvc := NewShareService(db, access)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	other := createTestUser(t, db, "other", "other@example.com")

	mine := createTestLease(t, svc, owner.ID)
	theirs := createTestLease(t, svc, other.ID)
	_, err := shareSvc.ShareWithUser(other.ID, theirs.ID, owner.ID)
	require.NoError(t, err)

	leases, err := svc.ListLeases(owner.ID)
	require.NoError(t, err)
	require.Len(t, leases, 2)

	ids := map[string]bool{}
	for _, l := range leases {
		require.NotNil(t, l.Summary)
		assert.Equal(t, 12, l.Summary.TotalMonths)
		assert.False(t, ids[l.ID], "重复条目")
		ids[l.ID] = true
	}
	assert.True(t, ids[mine.ID])
	assert.True(t, ids[theirs.ID])

	// 相同数据下重复调用结果一致
	again, err := svc.ListLeases(owner.ID)
	require.NoError(t, err)
	require.Len(t, again, 2)
	for i := range leases {
		assert.Equal(t, leases[i].ID, again[i].ID)
	}
}
