package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// parsePunch turns an optional RFC 3339 clock punch into a time value.
// nil means "now", resolved by the service.
func parsePunch(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid punch time, expected RFC 3339.", err.Error()))
		return nil, false
	}
	return &t, true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

// CreateStaffMember handles hiring a new staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var staff models.StaffMember
	if err := c.ShouldBindJSON(&staff); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	created, err := h.staffService.CreateStaffMember(&staff)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "CreateStaffMember: Error from staffService.CreateStaffMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetStaffMembers handles listing staff, optionally by location.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	var locationID *int64
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid location_id format.", err.Error()))
			return
		}
		locationID = &id
	}
	onlyActive := c.DefaultQuery("active", "true") == "true"

	staff, err := h.staffService.GetStaffMembers(locationID, onlyActive)
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff.", "Internal error"))
		return
	}
	if staff == nil {
		staff = []models.StaffMember{}
	}
	c.JSON(http.StatusOK, staff)
}

// GetStaffMemberByID handles fetching a single staff member.
func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaffMemberByID(staffID)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetStaffMemberByID: Error from staffService.GetStaffMemberByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateShift handles scheduling a new shift.
func (h *StaffHandler) CreateShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	created, err := h.staffService.CreateShift(&shift)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.LogError(err, "CreateShift: Error from staffService.CreateShift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetShifts handles listing shifts with filters.
func (h *StaffHandler) GetShifts(c *gin.Context) {
	var filters models.ShiftFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}
	shifts, err := h.staffService.GetShifts(filters)
	if err != nil {
		utils.LogError(err, "GetShifts: Error from staffService.GetShifts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch shifts.", "Internal error"))
		return
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	c.JSON(http.StatusOK, shifts)
}

// ClockIn opens a time log for a scheduled shift.
func (h *StaffHandler) ClockIn(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		At *string `json:"at"`
	}
	// An empty body is fine; the punch defaults to now.
	if err := c.ShouldBindJSON(&req); err != nil {
		req.At = nil
	}
	at, ok := parsePunch(c, req.At)
	if !ok {
		return
	}

	tl, err := h.staffService.ClockIn(shiftID, at)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		case errors.Is(err, services.ErrShiftNotClockable), errors.Is(err, services.ErrAlreadyClockedIn):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Shift cannot be clocked in.", err.Error()))
		default:
			utils.LogError(err, "ClockIn: Error from staffService.ClockIn")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, tl)
}

// ClockOut closes the shift's time log and records the labor cost.
func (h *StaffHandler) ClockOut(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		At   *string `json:"at"`
		Tips float64 `json:"tips"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		body.At, body.Tips = nil, 0
	}
	if body.Tips < 0 {
		utils.RespondValidationFailed(c, "tips must not be negative")
		return
	}
	at, ok := parsePunch(c, body.At)
	if !ok {
		return
	}

	tl, err := h.staffService.ClockOut(shiftID, services.ClockOutRequest{At: at, Tips: body.Tips})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		case errors.Is(err, services.ErrNotClockedIn):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Shift has no open time log.", err.Error()))
		case errors.Is(err, services.ErrInvalidClockPunch):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.LogError(err, "ClockOut: Error from staffService.ClockOut")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock out.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tl)
}

// FinalizeShift records the labor cost for a shift whose time log was
// closed but not finalized, e.g. after a manual punch correction.
func (h *StaffHandler) FinalizeShift(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lc, err := h.staffService.FinalizeLaborCost(shiftID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		case errors.Is(err, services.ErrNotClockedIn):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Shift has no time log.", err.Error()))
		case errors.Is(err, services.ErrTimeLogNotClosed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Time log is not closed.", err.Error()))
		default:
			utils.LogError(err, "FinalizeShift: Error from staffService.FinalizeLaborCost")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to finalize shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, lc)
}
