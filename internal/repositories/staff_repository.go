package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_ops_backend/internal/models"
)

// StaffRepository defines the interface for staff, shift, time log and
// labor cost database operations.
type StaffRepository interface {
	CreateStaffMember(staff *models.StaffMember) (int64, error)
	GetStaffMembers(locationID *int64, onlyActive bool) ([]models.StaffMember, error)
	GetStaffMemberByID(staffID int64) (*models.StaffMember, error)

	CreateShift(shift *models.Shift) (int64, error)
	GetShifts(filters models.ShiftFilters) ([]models.Shift, error)
	GetShiftByID(shiftID int64) (*models.Shift, error)
	UpdateShiftStatus(executor SQLExecutor, shiftID int64, status string) error

	CreateTimeLog(executor SQLExecutor, tl *models.TimeLog) (int64, error)
	GetTimeLogByShiftID(shiftID int64) (*models.TimeLog, error)
	UpdateTimeLog(executor SQLExecutor, tl *models.TimeLog) error
	GetTimeLogs(locationID *int64, startDate, endDate *string) ([]models.TimeLog, error)

	CreateLaborCost(executor SQLExecutor, lc *models.LaborCost) (int64, error)
	GetLaborCosts(locationID *int64, startDate, endDate *string) ([]models.LaborCost, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateStaffMember(staff *models.StaffMember) (int64, error) {
	query := `INSERT INTO staff_members
	          (user_id, full_name, role, location_id, hourly_rate, hire_date, phone_number, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		staff.UserID, staff.FullName, staff.Role, staff.LocationID, staff.HourlyRate,
		staff.HireDate, staff.PhoneNumber, staff.IsActive, time.Now(),
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff.ID, nil
}

func (r *staffRepository) GetStaffMembers(locationID *int64, onlyActive bool) ([]models.StaffMember, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, user_id, full_name, role, location_id, hourly_rate,
	    hire_date, phone_number, is_active, created_at, updated_at
	  FROM staff_members`)

	var conditions []string
	var args []interface{}
	if locationID != nil {
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)+1))
		args = append(args, *locationID)
	}
	if onlyActive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY full_name")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	staff := []models.StaffMember{}
	for rows.Next() {
		member, err := scanStaffMember(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}
	return staff, rows.Err()
}

func (r *staffRepository) GetStaffMemberByID(staffID int64) (*models.StaffMember, error) {
	row := r.db.QueryRow(`SELECT id, user_id, full_name, role, location_id, hourly_rate,
	    hire_date, phone_number, is_active, created_at, updated_at
	  FROM staff_members WHERE id = $1`, staffID)
	member, err := scanStaffMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func scanStaffMember(s scanner) (models.StaffMember, error) {
	var member models.StaffMember
	var userID sql.NullInt64
	var hireDate, phone sql.NullString
	if err := s.Scan(&member.ID, &userID, &member.FullName, &member.Role, &member.LocationID,
		&member.HourlyRate, &hireDate, &phone, &member.IsActive,
		&member.CreatedAt, &member.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member, err
		}
		return member, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
	}
	if userID.Valid {
		member.UserID = &userID.Int64
	}
	if hireDate.Valid {
		member.HireDate = &hireDate.String
	}
	if phone.Valid {
		member.PhoneNumber = &phone.String
	}
	return member, nil
}

func (r *staffRepository) CreateShift(shift *models.Shift) (int64, error) {
	query := `INSERT INTO shifts
	          (staff_id, location_id, shift_date, start_time, end_time, role, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		shift.StaffID, shift.LocationID, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.Role, shift.Status, shift.Notes, time.Now(),
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift.ID, nil
}

func (r *staffRepository) GetShifts(filters models.ShiftFilters) ([]models.Shift, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT s.id, s.staff_id, s.location_id, s.shift_date, s.start_time,
	    s.end_time, s.role, s.status, s.notes, s.created_at, s.updated_at
	  FROM shifts s`)

	var conditions []string
	var args []interface{}
	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, len(args)+1))
		args = append(args, value)
	}
	if filters.StaffID != nil {
		add("s.staff_id = $%d", *filters.StaffID)
	}
	if filters.LocationID != nil {
		add("s.location_id = $%d", *filters.LocationID)
	}
	if filters.Status != nil && *filters.Status != "" {
		add("s.status = $%d", *filters.Status)
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		add("s.shift_date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		add("s.shift_date <= $%d", *filters.EndDate)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY s.shift_date DESC, s.start_time")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		var shift models.Shift
		var notes sql.NullString
		if err := rows.Scan(&shift.ID, &shift.StaffID, &shift.LocationID, &shift.ShiftDate,
			&shift.StartTime, &shift.EndTime, &shift.Role, &shift.Status, &notes,
			&shift.CreatedAt, &shift.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
		}
		if notes.Valid {
			shift.Notes = &notes.String
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func (r *staffRepository) GetShiftByID(shiftID int64) (*models.Shift, error) {
	row := r.db.QueryRow(`SELECT id, staff_id, location_id, shift_date, start_time, end_time,
	    role, status, notes, created_at, updated_at
	  FROM shifts WHERE id = $1`, shiftID)

	var shift models.Shift
	var notes sql.NullString
	err := row.Scan(&shift.ID, &shift.StaffID, &shift.LocationID, &shift.ShiftDate,
		&shift.StartTime, &shift.EndTime, &shift.Role, &shift.Status, &notes,
		&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	if notes.Valid {
		shift.Notes = &notes.String
	}
	return &shift, nil
}

func (r *staffRepository) UpdateShiftStatus(executor SQLExecutor, shiftID int64, status string) error {
	result, err := executor.Exec(`UPDATE shifts SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), shiftID)
	if err != nil {
		return fmt.Errorf("%w: updating shift %d status: %v", ErrDatabaseError, shiftID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking shift update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) CreateTimeLog(executor SQLExecutor, tl *models.TimeLog) (int64, error) {
	query := `INSERT INTO time_logs
	          (shift_id, staff_id, location_id, clock_in, clock_out, regular_hours, overtime_hours, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := executor.QueryRow(query,
		tl.ShiftID, tl.StaffID, tl.LocationID, tl.ClockIn, tl.ClockOut,
		tl.RegularHours, tl.OvertimeHours, tl.Status,
	).Scan(&tl.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating time log: %v", ErrDatabaseError, err)
	}
	return tl.ID, nil
}

func (r *staffRepository) GetTimeLogByShiftID(shiftID int64) (*models.TimeLog, error) {
	row := r.db.QueryRow(`SELECT id, shift_id, staff_id, location_id, clock_in, clock_out,
	    regular_hours, overtime_hours, status
	  FROM time_logs WHERE shift_id = $1`, shiftID)

	var tl models.TimeLog
	var clockOut sql.NullTime
	err := row.Scan(&tl.ID, &tl.ShiftID, &tl.StaffID, &tl.LocationID, &tl.ClockIn, &clockOut,
		&tl.RegularHours, &tl.OvertimeHours, &tl.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting time log for shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	if clockOut.Valid {
		tl.ClockOut = &clockOut.Time
	}
	return &tl, nil
}

func (r *staffRepository) UpdateTimeLog(executor SQLExecutor, tl *models.TimeLog) error {
	result, err := executor.Exec(`UPDATE time_logs
	    SET clock_out = $1, regular_hours = $2, overtime_hours = $3, status = $4
	    WHERE id = $5`,
		tl.ClockOut, tl.RegularHours, tl.OvertimeHours, tl.Status, tl.ID)
	if err != nil {
		return fmt.Errorf("%w: updating time log %d: %v", ErrDatabaseError, tl.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking time log update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// dateRangeConditions appends optional location/date conditions for the
// time log and labor cost listings.
func dateRangeConditions(column string, locationID *int64, startDate, endDate *string) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	if locationID != nil {
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)+1))
		args = append(args, *locationID)
	}
	if startDate != nil && *startDate != "" {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", column, len(args)+1))
		args = append(args, *startDate)
	}
	if endDate != nil && *endDate != "" {
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", column, len(args)+1))
		args = append(args, *endDate)
	}
	return conditions, args
}

func (r *staffRepository) GetTimeLogs(locationID *int64, startDate, endDate *string) ([]models.TimeLog, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, shift_id, staff_id, location_id, clock_in, clock_out,
	    regular_hours, overtime_hours, status
	  FROM time_logs`)
	conditions, args := dateRangeConditions("clock_in::date", locationID, startDate, endDate)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY clock_in")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting time logs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	logs := []models.TimeLog{}
	for rows.Next() {
		var tl models.TimeLog
		var clockOut sql.NullTime
		if err := rows.Scan(&tl.ID, &tl.ShiftID, &tl.StaffID, &tl.LocationID, &tl.ClockIn,
			&clockOut, &tl.RegularHours, &tl.OvertimeHours, &tl.Status); err != nil {
			return nil, fmt.Errorf("%w: scanning time log: %v", ErrDatabaseError, err)
		}
		if clockOut.Valid {
			tl.ClockOut = &clockOut.Time
		}
		logs = append(logs, tl)
	}
	return logs, rows.Err()
}

func (r *staffRepository) CreateLaborCost(executor SQLExecutor, lc *models.LaborCost) (int64, error) {
	query := `INSERT INTO labor_costs
	          (time_log_id, staff_id, location_id, work_date, regular_pay, overtime_pay, tips, total_compensation)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := executor.QueryRow(query,
		lc.TimeLogID, lc.StaffID, lc.LocationID, lc.WorkDate,
		lc.RegularPay, lc.OvertimePay, lc.Tips, lc.TotalCompensation,
	).Scan(&lc.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating labor cost: %v", ErrDatabaseError, err)
	}
	return lc.ID, nil
}

func (r *staffRepository) GetLaborCosts(locationID *int64, startDate, endDate *string) ([]models.LaborCost, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, time_log_id, staff_id, location_id, work_date,
	    regular_pay, overtime_pay, tips, total_compensation
	  FROM labor_costs`)
	conditions, args := dateRangeConditions("work_date", locationID, startDate, endDate)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY work_date")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting labor costs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	costs := []models.LaborCost{}
	for rows.Next() {
		var lc models.LaborCost
		if err := rows.Scan(&lc.ID, &lc.TimeLogID, &lc.StaffID, &lc.LocationID, &lc.WorkDate,
			&lc.RegularPay, &lc.OvertimePay, &lc.Tips, &lc.TotalCompensation); err != nil {
			return nil, fmt.Errorf("%w: scanning labor cost: %v", ErrDatabaseError, err)
		}
		costs = append(costs, lc)
	}
	return costs, rows.Err()
}
