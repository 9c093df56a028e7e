package models

import "time"

// Staff role constants. FOH roles participate in tip pooling, BOH roles
// do not; the labor aggregation relies on this split.
const (
	RoleServer     = "server"
	RoleHost       = "host"
	RoleBartender  = "bartender"
	RoleCashier    = "cashier"
	RoleCook       = "cook"
	RolePrepCook   = "prep_cook"
	RoleDishwasher = "dishwasher"
	RoleManager    = "manager"
)

// Shift status constants.
const (
	ShiftStatusScheduled  = "scheduled"
	ShiftStatusInProgress = "in_progress"
	ShiftStatusCompleted  = "completed"
	ShiftStatusNoShow     = "no_show"
	ShiftStatusCancelled  = "cancelled"
)

// TimeLog status constants.
const (
	TimeLogStatusOpen      = "open"
	TimeLogStatusClosed    = "closed"
	TimeLogStatusFinalized = "finalized"
)

// IsFrontOfHouse reports whether a role shares in tips.
func IsFrontOfHouse(role string) bool {
	switch role {
	case RoleServer, RoleHost, RoleBartender, RoleCashier:
		return true
	}
	return false
}

// StaffMember represents an employee.
type StaffMember struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name" binding:"required"`
	Role        string    `json:"role" db:"role" binding:"required"`
	LocationID  int64     `json:"location_id" db:"location_id" binding:"required"`
	HourlyRate  float64   `json:"hourly_rate" db:"hourly_rate" binding:"required,gt=0"`
	HireDate    *string   `json:"hire_date,omitempty" db:"hire_date"` // YYYY-MM-DD
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Shift represents a scheduled work shift for a staff member.
type Shift struct {
	ID          int64        `json:"id" db:"id"`
	StaffID     int64        `json:"staff_id" db:"staff_id" binding:"required"`
	LocationID  int64        `json:"location_id" db:"location_id" binding:"required"`
	ShiftDate   string       `json:"shift_date" db:"shift_date" binding:"required"` // YYYY-MM-DD
	StartTime   time.Time    `json:"start_time" db:"start_time" binding:"required"`
	EndTime     time.Time    `json:"end_time" db:"end_time" binding:"required"`
	Role        string       `json:"role" db:"role"`
	Status      string       `json:"status" db:"status"`
	Notes       *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	StaffMember *StaffMember `json:"staff_member,omitempty"`
}

// TimeLog is the worked-hours record derived from a shift's clock
// punches. Regular hours are capped at 8 per shift; anything beyond is
// overtime. The split happens here, per shift, never per week.
type TimeLog struct {
	ID            int64      `json:"id" db:"id"`
	ShiftID       int64      `json:"shift_id" db:"shift_id"`
	StaffID       int64      `json:"staff_id" db:"staff_id"`
	LocationID    int64      `json:"location_id" db:"location_id"`
	ClockIn       time.Time  `json:"clock_in" db:"clock_in"`
	ClockOut      *time.Time `json:"clock_out,omitempty" db:"clock_out"`
	RegularHours  float64    `json:"regular_hours" db:"regular_hours"`
	OvertimeHours float64    `json:"overtime_hours" db:"overtime_hours"`
	Status        string     `json:"status" db:"status"`
}

// LaborCost is the compensation record derived from a closed time log
// and the staff member's hourly rate. Overtime pays 1.5x; tips apply to
// front-of-house roles only.
type LaborCost struct {
	ID                int64   `json:"id" db:"id"`
	TimeLogID         int64   `json:"time_log_id" db:"time_log_id"`
	StaffID           int64   `json:"staff_id" db:"staff_id"`
	LocationID        int64   `json:"location_id" db:"location_id"`
	WorkDate          string  `json:"work_date" db:"work_date"` // YYYY-MM-DD
	RegularPay        float64 `json:"regular_pay" db:"regular_pay"`
	OvertimePay       float64 `json:"overtime_pay" db:"overtime_pay"`
	Tips              float64 `json:"tips" db:"tips"`
	TotalCompensation float64 `json:"total_compensation" db:"total_compensation"`
}

// ShiftFilters defines the available filters for querying shifts.
type ShiftFilters struct {
	StaffID    *int64  `form:"staff_id"`
	LocationID *int64  `form:"location_id"`
	Status     *string `form:"status"`
	StartDate  *string `form:"start_date"`
	EndDate    *string `form:"end_date"`
}
