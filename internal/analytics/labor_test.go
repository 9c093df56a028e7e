package analytics

import (
	"math"
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func TestSplitShiftHours(t *testing.T) {
	cases := []struct {
		worked   float64
		regular  float64
		overtime float64
	}{
		{0, 0, 0},
		{-1, 0, 0},
		{4.5, 4.5, 0},
		{8, 8, 0},
		{10, 8, 2},
		{13.25, 8, 5.25},
	}
	for _, c := range cases {
		reg, ot := SplitShiftHours(c.worked)
		if reg != c.regular || ot != c.overtime {
			t.Errorf("SplitShiftHours(%v) = (%v, %v), want (%v, %v)", c.worked, reg, ot, c.regular, c.overtime)
		}
		if ot != math.Max(0, c.worked-RegularHoursCap) && c.worked > 0 {
			t.Errorf("overtime for %vh must be max(0, worked-8)", c.worked)
		}
	}
}

func TestComputeLaborCostTenHourShift(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(10 * time.Hour)
	shift := models.Shift{ID: 5, StaffID: 3, LocationID: 1}

	tl := DeriveTimeLog(shift, clockIn, &clockOut)
	if tl.RegularHours != 8 || tl.OvertimeHours != 2 {
		t.Fatalf("10h shift must split 8/2, got %v/%v", tl.RegularHours, tl.OvertimeHours)
	}
	if tl.Status != models.TimeLogStatusClosed {
		t.Errorf("expected closed log, got %s", tl.Status)
	}

	lc := ComputeLaborCost(tl, 20.0, 0, models.RoleCook)
	// 8*20 + 2*20*1.5 = 220
	if lc.TotalCompensation != 220 {
		t.Errorf("expected total pay 220, got %v", lc.TotalCompensation)
	}
	if lc.RegularPay != 160 || lc.OvertimePay != 60 {
		t.Errorf("unexpected pay split: %+v", lc)
	}
}

func TestDeriveTimeLogOpen(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tl := DeriveTimeLog(models.Shift{ID: 1, StaffID: 2, LocationID: 1}, clockIn, nil)
	if tl.Status != models.TimeLogStatusOpen {
		t.Errorf("expected open log, got %s", tl.Status)
	}
	if tl.RegularHours != 0 || tl.OvertimeHours != 0 {
		t.Errorf("open log must carry no hours, got %+v", tl)
	}
}

func TestTipsFrontOfHouseOnly(t *testing.T) {
	tl := models.TimeLog{RegularHours: 8, ClockIn: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	server := ComputeLaborCost(tl, 15, 40, models.RoleServer)
	if server.Tips != 40 || server.TotalCompensation != 160 {
		t.Errorf("server must receive tips: %+v", server)
	}

	cook := ComputeLaborCost(tl, 15, 40, models.RoleCook)
	if cook.Tips != 0 || cook.TotalCompensation != 120 {
		t.Errorf("back-of-house must not receive tips: %+v", cook)
	}
}

func TestAggregateLabor(t *testing.T) {
	logs := []models.TimeLog{
		{RegularHours: 8, OvertimeHours: 2},
		{RegularHours: 6},
		{RegularHours: 8, OvertimeHours: 1},
	}
	costs := []models.LaborCost{
		{RegularPay: 160, OvertimePay: 60, Tips: 30, TotalCompensation: 250},
		{RegularPay: 90, TotalCompensation: 90},
		{RegularPay: 120, OvertimePay: 22.5, TotalCompensation: 142.5},
	}
	orders := []models.Order{{TotalAmount: 1500}, {TotalAmount: 500}}

	m := AggregateLabor(logs, costs, orders)
	if m.TotalRegularHours != 22 || m.TotalOvertimeHours != 3 {
		t.Errorf("unexpected hour sums: %+v", m)
	}
	// Regular hours can never exceed cap times shift count.
	if m.TotalRegularHours > RegularHoursCap*float64(len(logs)) {
		t.Error("regular hours exceed 8h per shift")
	}
	if m.TotalLaborCost != 482.5 {
		t.Errorf("expected labor cost 482.5, got %v", m.TotalLaborCost)
	}
	wantPct := 482.5 / 2000 * 100
	if math.Abs(m.LaborCostPercentage-wantPct) > 1e-9 {
		t.Errorf("expected labor %% %v, got %v", wantPct, m.LaborCostPercentage)
	}
	// (482.5 - 30) / (22 + 3*1.5)
	wantRate := 452.5 / 26.5
	if math.Abs(m.AverageHourlyRate-wantRate) > 1e-9 {
		t.Errorf("expected implied rate %v, got %v", wantRate, m.AverageHourlyRate)
	}
}

func TestAggregateLaborZeroDenominators(t *testing.T) {
	m := AggregateLabor(nil, nil, nil)
	for name, v := range map[string]float64{
		"labor cost %":  m.LaborCostPercentage,
		"implied rate":  m.AverageHourlyRate,
		"total cost":    m.TotalLaborCost,
		"regular hours": m.TotalRegularHours,
	} {
		if v != 0 {
			t.Errorf("%s: expected 0 on empty input, got %v", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s must never be NaN or Inf", name)
		}
	}

	// Labor with no matching revenue: percentage still defined as 0.
	costs := []models.LaborCost{{TotalCompensation: 300}}
	m = AggregateLabor(nil, costs, nil)
	if m.LaborCostPercentage != 0 {
		t.Errorf("expected 0 labor %% with zero revenue, got %v", m.LaborCostPercentage)
	}
}
