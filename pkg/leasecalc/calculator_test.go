package leasecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalMonthsIgnoresDayOfMonth(t *testing.T) {
	// 1月15日到2月1日算 1 个月
	assert.Equal(t, 1, TotalMonths(date(2025, time.January, 15), date(2025, time.February, 1)))
	assert.Equal(t, 12, TotalMonths(date(2025, time.March, 1), date(2026, time.March, 31)))
	assert.Equal(t, 0, TotalMonths(date(2025, time.January, 1), date(2025, time.January, 31)))
}

func TestCalculateAnnualIncreaseCompounds(t *testing.T) {
	// 月租 1000，年涨 10%，25 个月：
	// 第 0-11 月 1000，第 12-23 月 1100，第 24 月 1210
	sum := Calculate(Input{
		StartDate:          date(2024, time.January, 1),
		EndDate:            date(2026, time.February, 1),
		MonthlyRent:        1000,
		AnnualRentIncrease: 10,
	})

	assert.Equal(t, 25, sum.TotalMonths)
	assert.InDelta(t, 12*1000+12*1100+1210, sum.TotalRent, 0.001)
	assert.InDelta(t, 26410, sum.TotalCost, 0.001)
}

func TestCalculateNoIncrease(t *testing.T) {
	sum := Calculate(Input{
		StartDate:             date(2025, time.January, 1),
		EndDate:               date(2026, time.January, 1),
		MonthlyRent:           1500,
		MonthlyMaintenanceFee: 100,
		SecurityDeposit:       3000,
		AdditionalCharges:     250,
	})

	assert.Equal(t, 12, sum.TotalMonths)
	assert.InDelta(t, 18000, sum.TotalRent, 0.001)
	assert.InDelta(t, 1200, sum.TotalMaintenance, 0.001)
	assert.InDelta(t, 18000+3000+250+1200, sum.TotalCost, 0.001)
}

func TestCalculateNonPositiveDuration(t *testing.T) {
	for _, end := range []time.Time{
		date(2025, time.January, 1),
		date(2024, time.June, 1),
	} {
		sum := Calculate(Input{
			StartDate:             date(2025, time.January, 15),
			EndDate:               end,
			MonthlyRent:           1000,
			MonthlyMaintenanceFee: 50,
			SecurityDeposit:       2000,
		})

		assert.LessOrEqual(t, sum.TotalMonths, 0)
		assert.Zero(t, sum.TotalRent)
		assert.Zero(t, sum.TotalMaintenance)
		// 押金和附加费仍计入总额
		assert.InDelta(t, 2000, sum.TotalCost, 0.001)
	}
}
