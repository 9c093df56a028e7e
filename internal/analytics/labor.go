package analytics

import (
	"time"

	"restaurant_ops_backend/internal/models"
)

const (
	// RegularHoursCap is the per-shift regular hours ceiling; worked
	// time beyond it is overtime. The split is made shift by shift,
	// never over a week or pay period.
	RegularHoursCap = 8.0

	// OvertimeMultiplier applies to the base hourly rate for overtime
	// hours.
	OvertimeMultiplier = 1.5
)

// SplitShiftHours divides worked hours for a single shift into regular
// and overtime portions.
func SplitShiftHours(worked float64) (regular, overtime float64) {
	if worked <= 0 {
		return 0, 0
	}
	if worked <= RegularHoursCap {
		return worked, 0
	}
	return RegularHoursCap, worked - RegularHoursCap
}

// DeriveTimeLog builds the worked-hours record for a shift from its
// clock punches. With no clock-out the log stays open and carries no
// hours yet.
func DeriveTimeLog(shift models.Shift, clockIn time.Time, clockOut *time.Time) models.TimeLog {
	tl := models.TimeLog{
		ShiftID:    shift.ID,
		StaffID:    shift.StaffID,
		LocationID: shift.LocationID,
		ClockIn:    clockIn,
		ClockOut:   clockOut,
		Status:     models.TimeLogStatusOpen,
	}
	if clockOut != nil {
		worked := clockOut.Sub(clockIn).Hours()
		tl.RegularHours, tl.OvertimeHours = SplitShiftHours(worked)
		tl.Status = models.TimeLogStatusClosed
	}
	return tl
}

// ComputeLaborCost derives the compensation record for a closed time
// log. Overtime pays OvertimeMultiplier times the base rate; tips are
// credited to front-of-house roles only.
func ComputeLaborCost(tl models.TimeLog, hourlyRate float64, tips float64, role string) models.LaborCost {
	lc := models.LaborCost{
		TimeLogID:   tl.ID,
		StaffID:     tl.StaffID,
		LocationID:  tl.LocationID,
		WorkDate:    tl.ClockIn.Format("2006-01-02"),
		RegularPay:  tl.RegularHours * hourlyRate,
		OvertimePay: tl.OvertimeHours * hourlyRate * OvertimeMultiplier,
	}
	if models.IsFrontOfHouse(role) {
		lc.Tips = tips
	}
	lc.TotalCompensation = lc.RegularPay + lc.OvertimePay + lc.Tips
	return lc
}

// AggregateLabor sums already-scoped time logs and labor costs and
// relates the spend to revenue from the same scope. The average hourly
// rate is the rate implied by weighted hours,
// (cost - tips) / (regular + 1.5*overtime), not a mean of individual
// rates. Every ratio degrades to 0 on a zero denominator.
func AggregateLabor(logs []models.TimeLog, costs []models.LaborCost, orders []models.Order) models.LaborMetrics {
	var m models.LaborMetrics
	for _, tl := range logs {
		m.TotalRegularHours += tl.RegularHours
		m.TotalOvertimeHours += tl.OvertimeHours
	}
	for _, lc := range costs {
		m.TotalLaborCost += lc.TotalCompensation
		m.TotalTips += lc.Tips
	}

	var totalRevenue float64
	for _, o := range orders {
		totalRevenue += o.TotalAmount
	}
	m.LaborCostPercentage = safeDiv(m.TotalLaborCost, totalRevenue) * 100

	weightedHours := m.TotalRegularHours + m.TotalOvertimeHours*OvertimeMultiplier
	m.AverageHourlyRate = safeDiv(m.TotalLaborCost-m.TotalTips, weightedHours)
	return m
}
