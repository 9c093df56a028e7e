package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant_ops_backend/internal/analytics"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the aggregated reporting endpoints. Every
// endpoint accepts a "location" query parameter (a location code or
// "all") and either an explicit date window or an "as_of" instant.
// Defaults are resolved here, at the HTTP boundary, so the layers below
// never consult the clock.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

const (
	defaultWindowDays = 30
	defaultRankLimit  = 5
)

func locationParam(c *gin.Context) string {
	if loc := c.Query("location"); loc != "" {
		return loc
	}
	return "all"
}

// asOfParam parses the optional as_of query value (RFC 3339). Absent,
// it is the current instant.
func asOfParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid as_of value, expected RFC 3339.", err.Error()))
		return time.Time{}, false
	}
	return t, true
}

// windowParams parses start_date/end_date (YYYY-MM-DD, end exclusive
// after normalization). Absent, the window is the last defaultWindowDays
// days ending now.
func windowParams(c *gin.Context) (start, end time.Time, ok bool) {
	startRaw, endRaw := c.Query("start_date"), c.Query("end_date")
	var err error
	if endRaw == "" {
		// Open end: through the end of today.
		end = time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	} else {
		if end, err = utils.ParseDateParam(endRaw, time.UTC); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end_date, expected YYYY-MM-DD.", err.Error()))
			return
		}
		// end_date is inclusive from the caller's point of view.
		end = end.AddDate(0, 0, 1)
	}
	if startRaw == "" {
		start = end.AddDate(0, 0, -defaultWindowDays)
	} else {
		if start, err = utils.ParseDateParam(startRaw, time.UTC); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start_date, expected YYYY-MM-DD.", err.Error()))
			return
		}
	}
	if !start.Before(end) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start_date must not be after end_date.", ""))
		return
	}
	return start, end, true
}

func (h *AnalyticsHandler) respond(c *gin.Context, payload interface{}, err error, what string) {
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Location not found.", err.Error()))
			return
		}
		utils.LogError(err, "AnalyticsHandler: failed to compute "+what)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute "+what+".", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GetDashboard returns the headline dashboard summary.
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}
	summary, err := h.analyticsService.GetDashboard(locationParam(c), asOf)
	h.respond(c, summary, err, "dashboard summary")
}

// GetSales returns sales metrics with a per-channel breakdown.
func (h *AnalyticsHandler) GetSales(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.GetSalesReport(locationParam(c), start, end)
	h.respond(c, report, err, "sales metrics")
}

// GetGrowth returns period-over-period growth. Pass either
// period=today|week|month or last_n_days=N.
func (h *AnalyticsHandler) GetGrowth(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}
	period := c.Query("period")
	lastN := 0
	if raw := c.Query("last_n_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "last_n_days must be a positive integer.", ""))
			return
		}
		lastN = n
	}
	if period == "" && lastN == 0 {
		period = analytics.PeriodMonth
	}

	report, err := h.analyticsService.GetGrowth(locationParam(c), period, lastN, asOf)
	if errors.Is(err, services.ErrInvalidPeriod) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "period must be today, week or month.", err.Error()))
		return
	}
	h.respond(c, report, err, "growth metrics")
}

// GetTopItems returns ranked menu item performance.
func (h *AnalyticsHandler) GetTopItems(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	mode := analytics.RankByRevenue
	switch c.DefaultQuery("rank_by", "revenue") {
	case "revenue":
	case "profit":
		mode = analytics.RankByProfit
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "rank_by must be revenue or profit.", ""))
		return
	}
	limit, ok := limitParam(c, defaultRankLimit)
	if !ok {
		return
	}
	items, err := h.analyticsService.GetTopMenuItems(locationParam(c), start, end, mode, limit)
	h.respond(c, items, err, "menu item ranking")
}

// GetTopStaff returns ranked staff performance.
func (h *AnalyticsHandler) GetTopStaff(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c, defaultRankLimit)
	if !ok {
		return
	}
	staff, err := h.analyticsService.GetTopStaff(locationParam(c), start, end, limit)
	h.respond(c, staff, err, "staff ranking")
}

// GetLabor returns aggregated labor metrics.
func (h *AnalyticsHandler) GetLabor(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	metrics, err := h.analyticsService.GetLaborMetrics(locationParam(c), start, end)
	h.respond(c, metrics, err, "labor metrics")
}

// GetWastage returns per-ingredient wastage reports.
func (h *AnalyticsHandler) GetWastage(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	reports, err := h.analyticsService.GetWastageReports(locationParam(c), start, end)
	h.respond(c, reports, err, "wastage reports")
}

// GetLocations returns the cross-location performance rollup.
func (h *AnalyticsHandler) GetLocations(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	rollup, err := h.analyticsService.GetLocationPerformance(start, end)
	h.respond(c, rollup, err, "location performance")
}

// GetTasks returns aggregated task metrics.
func (h *AnalyticsHandler) GetTasks(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	metrics, err := h.analyticsService.GetTaskMetrics(locationParam(c), start, end)
	h.respond(c, metrics, err, "task metrics")
}

// GetTrend returns the per-day sales trend for a window.
func (h *AnalyticsHandler) GetTrend(c *gin.Context) {
	start, end, ok := windowParams(c)
	if !ok {
		return
	}
	points, err := h.analyticsService.GetSalesTrend(locationParam(c), start, end)
	if errors.Is(err, services.ErrInvalidDateRange) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range.", err.Error()))
		return
	}
	h.respond(c, points, err, "sales trend")
}

func limitParam(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "limit must be a positive integer.", ""))
		return 0, false
	}
	return n, true
}
