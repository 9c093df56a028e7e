package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/analytics"
	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var (
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftNotClockable  = errors.New("shift cannot be clocked in its current status")
	ErrAlreadyClockedIn   = errors.New("shift already has an open time log")
	ErrNotClockedIn       = errors.New("shift has no open time log")
	ErrTimeLogNotClosed   = errors.New("time log is not closed")
	ErrInvalidClockPunch  = errors.New("clock-out must come after clock-in")
)

// ClockOutRequest closes a shift's time log. Tips collected during the
// shift are reported here and credited on finalization.
type ClockOutRequest struct {
	At   *time.Time `json:"at"`
	Tips float64    `json:"tips"`
}

// StaffService covers staff records, shift scheduling and the clock
// punch lifecycle that produces time logs and labor costs.
type StaffService interface {
	CreateStaffMember(staff *models.StaffMember) (*models.StaffMember, error)
	GetStaffMembers(locationID *int64, onlyActive bool) ([]models.StaffMember, error)
	GetStaffMemberByID(staffID int64) (*models.StaffMember, error)

	CreateShift(shift *models.Shift) (*models.Shift, error)
	GetShifts(filters models.ShiftFilters) ([]models.Shift, error)

	ClockIn(shiftID int64, at *time.Time) (*models.TimeLog, error)
	ClockOut(shiftID int64, req ClockOutRequest) (*models.TimeLog, error)
	FinalizeLaborCost(shiftID int64) (*models.LaborCost, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: sr, db: db}
}

func (s *staffService) CreateStaffMember(staff *models.StaffMember) (*models.StaffMember, error) {
	if staff.HourlyRate <= 0 {
		return nil, fmt.Errorf("%w: hourly rate must be positive", ErrValidation)
	}
	staff.IsActive = true
	id, err := s.staffRepo.CreateStaffMember(staff)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return s.staffRepo.GetStaffMemberByID(id)
}

func (s *staffService) GetStaffMembers(locationID *int64, onlyActive bool) ([]models.StaffMember, error) {
	return s.staffRepo.GetStaffMembers(locationID, onlyActive)
}

func (s *staffService) GetStaffMemberByID(staffID int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetStaffMemberByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) CreateShift(shift *models.Shift) (*models.Shift, error) {
	if !shift.StartTime.Before(shift.EndTime) {
		return nil, fmt.Errorf("%w: shift must end after it starts", ErrValidation)
	}
	staff, err := s.GetStaffMemberByID(shift.StaffID)
	if err != nil {
		return nil, err
	}
	if shift.Role == "" {
		shift.Role = staff.Role
	}
	shift.Status = models.ShiftStatusScheduled
	id, err := s.staffRepo.CreateShift(shift)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	return s.staffRepo.GetShiftByID(id)
}

func (s *staffService) GetShifts(filters models.ShiftFilters) ([]models.Shift, error) {
	return s.staffRepo.GetShifts(filters)
}

func (s *staffService) getShift(shiftID int64) (*models.Shift, error) {
	shift, err := s.staffRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

func (s *staffService) ClockIn(shiftID int64, at *time.Time) (*models.TimeLog, error) {
	shift, err := s.getShift(shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftStatusScheduled {
		return nil, fmt.Errorf("%w: status %s", ErrShiftNotClockable, shift.Status)
	}
	if _, err := s.staffRepo.GetTimeLogByShiftID(shiftID); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing time log: %w", err)
	}

	clockIn := time.Now()
	if at != nil {
		clockIn = *at
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	tl := analytics.DeriveTimeLog(*shift, clockIn, nil)
	id, err := s.staffRepo.CreateTimeLog(tx, &tl)
	if err != nil {
		return nil, fmt.Errorf("failed to create time log: %w", err)
	}
	tl.ID = id
	if err := s.staffRepo.UpdateShiftStatus(tx, shiftID, models.ShiftStatusInProgress); err != nil {
		return nil, fmt.Errorf("failed to update shift status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit clock-in: %w", err)
	}
	return &tl, nil
}

func (s *staffService) ClockOut(shiftID int64, req ClockOutRequest) (*models.TimeLog, error) {
	shift, err := s.getShift(shiftID)
	if err != nil {
		return nil, err
	}
	existing, err := s.staffRepo.GetTimeLogByShiftID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get time log: %w", err)
	}
	if existing.Status != models.TimeLogStatusOpen {
		return nil, ErrNotClockedIn
	}

	clockOut := time.Now()
	if req.At != nil {
		clockOut = *req.At
	}
	if !clockOut.After(existing.ClockIn) {
		return nil, ErrInvalidClockPunch
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	tl := analytics.DeriveTimeLog(*shift, existing.ClockIn, &clockOut)
	tl.ID = existing.ID
	if err := s.staffRepo.UpdateTimeLog(tx, &tl); err != nil {
		return nil, fmt.Errorf("failed to close time log: %w", err)
	}
	if err := s.staffRepo.UpdateShiftStatus(tx, shiftID, models.ShiftStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to update shift status: %w", err)
	}

	// The reported tips ride along on finalization; store them with the
	// labor cost in the same transaction so a crash cannot lose them.
	staff, err := s.GetStaffMemberByID(shift.StaffID)
	if err != nil {
		return nil, err
	}
	lc := analytics.ComputeLaborCost(tl, staff.HourlyRate, req.Tips, staff.Role)
	if _, err := s.staffRepo.CreateLaborCost(tx, &lc); err != nil {
		return nil, fmt.Errorf("failed to create labor cost: %w", err)
	}
	tl.Status = models.TimeLogStatusFinalized
	if err := s.staffRepo.UpdateTimeLog(tx, &tl); err != nil {
		return nil, fmt.Errorf("failed to finalize time log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit clock-out: %w", err)
	}
	return &tl, nil
}

// FinalizeLaborCost recomputes and stores the labor cost for a closed
// time log that was not finalized at clock-out (e.g. after a manual
// punch correction). Tips already recorded are not re-credited.
func (s *staffService) FinalizeLaborCost(shiftID int64) (*models.LaborCost, error) {
	shift, err := s.getShift(shiftID)
	if err != nil {
		return nil, err
	}
	tl, err := s.staffRepo.GetTimeLogByShiftID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to get time log: %w", err)
	}
	if tl.Status != models.TimeLogStatusClosed {
		return nil, ErrTimeLogNotClosed
	}
	staff, err := s.GetStaffMemberByID(shift.StaffID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	lc := analytics.ComputeLaborCost(*tl, staff.HourlyRate, 0, staff.Role)
	id, err := s.staffRepo.CreateLaborCost(tx, &lc)
	if err != nil {
		return nil, fmt.Errorf("failed to create labor cost: %w", err)
	}
	lc.ID = id
	tl.Status = models.TimeLogStatusFinalized
	if err := s.staffRepo.UpdateTimeLog(tx, tl); err != nil {
		return nil, fmt.Errorf("failed to finalize time log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finalization: %w", err)
	}
	return &lc, nil
}
