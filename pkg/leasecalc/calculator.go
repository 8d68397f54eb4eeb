// pkg/leasecalc - 租约费用计算
package leasecalc

import "time"

type Input struct {
	StartDate             time.Time
	EndDate               time.Time
	MonthlyRent           float64
	AnnualRentIncrease    float64
	MonthlyMaintenanceFee float64
	AdditionalCharges     float64
	SecurityDeposit       float64
}

type Summary struct {
	TotalMonths      int     `json:"total_months"`
	TotalRent        float64 `json:"total_rent"`
	TotalMaintenance float64 `json:"total_maintenance"`
	TotalCost        float64 `json:"total_cost"`
}

// TotalMonths 计算整月差，忽略日：1月15日到2月1日算 1 个月
func TotalMonths(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// Calculate 计算租期总费用。年度涨幅按租约周年复利：
// 从第 13 个月起每满 12 个月上调一次。
// totalMonths <= 0 时租金和维护费为 0，调用方应在入参校验时拒绝。
func Calculate(in Input) Summary {
	months := TotalMonths(in.StartDate, in.EndDate)

	var totalRent float64
	rent := in.MonthlyRent
	for i := 0; i < months; i++ {
		if i > 0 && i%12 == 0 {
			rent *= 1 + in.AnnualRentIncrease/100
		}
		totalRent += rent
	}

	var totalMaintenance float64
	if months > 0 {
		totalMaintenance = in.MonthlyMaintenanceFee * float64(months)
	}

	return Summary{
		TotalMonths:      months,
		TotalRent:        totalRent,
		TotalMaintenance: totalMaintenance,
		TotalCost:        totalRent + in.SecurityDeposit + in.AdditionalCharges + totalMaintenance,
	}
}
