package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/analytics"
	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidPeriod    = errors.New("invalid reporting period")
	ErrInvalidDateRange = errors.New("invalid date range")
)

// GrowthReport pairs the growth deltas with the metrics they were
// computed from, as the dashboard renders both.
type GrowthReport struct {
	Current models.SalesMetrics  `json:"current"`
	Prior   models.SalesMetrics  `json:"prior"`
	Growth  models.GrowthMetrics `json:"growth"`
}

// SalesReport is the sales summary response: headline metrics plus the
// per-channel breakdown.
type SalesReport struct {
	Metrics   models.SalesMetrics            `json:"metrics"`
	ByChannel map[string]models.SalesMetrics `json:"by_channel"`
}

// AnalyticsService assembles the collections the aggregation engine
// needs and invokes it. All period boundaries flow from an explicit
// asOf or start/end supplied by the caller; this layer never reads the
// clock itself.
type AnalyticsService interface {
	GetDashboard(locationCode string, asOf time.Time) (*models.DashboardSummary, error)
	GetSalesReport(locationCode string, start, end time.Time) (*SalesReport, error)
	GetGrowth(locationCode, period string, lastNDays int, asOf time.Time) (*GrowthReport, error)
	GetTopMenuItems(locationCode string, start, end time.Time, mode analytics.RankMode, limit int) ([]models.MenuItemPerformance, error)
	GetTopStaff(locationCode string, start, end time.Time, limit int) ([]models.StaffPerformance, error)
	GetLaborMetrics(locationCode string, start, end time.Time) (*models.LaborMetrics, error)
	GetWastageReports(locationCode string, start, end time.Time) ([]models.WastageReport, error)
	GetLocationPerformance(start, end time.Time) ([]models.LocationPerformance, error)
	GetTaskMetrics(locationCode string, start, end time.Time) (*models.TaskMetrics, error)
	GetSalesTrend(locationCode string, start, end time.Time) ([]models.SalesTrendPoint, error)
}

type analyticsService struct {
	orderRepo     repositories.OrderRepository
	staffRepo     repositories.StaffRepository
	menuRepo      repositories.MenuRepository
	inventoryRepo repositories.InventoryRepository
	taskRepo      repositories.TaskRepository
	locationRepo  repositories.LocationRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(
	or repositories.OrderRepository,
	sr repositories.StaffRepository,
	mr repositories.MenuRepository,
	ir repositories.InventoryRepository,
	tr repositories.TaskRepository,
	lr repositories.LocationRepository,
) AnalyticsService {
	return &analyticsService{
		orderRepo:     or,
		staffRepo:     sr,
		menuRepo:      mr,
		inventoryRepo: ir,
		taskRepo:      tr,
		locationRepo:  lr,
	}
}

// resolveLocation turns a scope code into the optional repository-level
// location id filter. The "all" sentinel (and empty string) yields nil.
func (s *analyticsService) resolveLocation(code string) (*int64, []models.Location, error) {
	locations, err := s.locationRepo.GetLocations(false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load locations: %w", err)
	}
	if code == "" || code == models.LocationAll {
		return nil, locations, nil
	}
	for _, loc := range locations {
		if loc.Code == code {
			id := loc.ID
			return &id, locations, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrLocationNotFound, code)
}

func dateStr(t time.Time) *string {
	s := t.Format("2006-01-02")
	return &s
}

// fetchOrders loads completed orders (with items) for a location and an
// inclusive date window around [start, end).
func (s *analyticsService) fetchOrders(locationID *int64, start, end time.Time) ([]models.Order, error) {
	status := models.OrderStatusCompleted
	filters := models.OrderFilters{LocationID: locationID, Status: &status}
	if !start.IsZero() {
		filters.StartDate = dateStr(start)
	}
	if !end.IsZero() {
		filters.EndDate = dateStr(end)
	}
	orders, err := s.orderRepo.GetOrdersWithItems(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// scopeOrders trims a fetched order set to exact period boundaries. The
// repository filter works on whole days; the engine filter applies the
// precise window.
func scopeOrders(orders []models.Order, scope analytics.Scope, locations []models.Location) []models.Order {
	scope.LocationID = models.LocationAll // location already filtered at the repository
	return analytics.FilterOrders(orders, scope, analytics.NewLocationIndex(locations))
}

func (s *analyticsService) GetDashboard(locationCode string, asOf time.Time) (*models.DashboardSummary, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}

	// One fetch covering the widest dashboard window (this month and
	// the running month before it).
	monthScope, priorMonth, _ := analytics.PeriodBounds(analytics.PeriodMonth, asOf)
	orders, err := s.fetchOrders(locationID, priorMonth.Start, monthScope.End)
	if err != nil {
		return nil, err
	}
	// Both open statuses feed the dashboard's pending count.
	openOrders := []models.Order{}
	for _, status := range []string{models.OrderStatusPending, models.OrderStatusPreparing} {
		st := status
		batch, _, err := s.orderRepo.GetOrders(models.OrderFilters{LocationID: locationID, Status: &st})
		if err != nil {
			return nil, fmt.Errorf("failed to load open orders: %w", err)
		}
		openOrders = append(openOrders, batch...)
	}
	tasks, err := s.taskRepo.GetTasks(models.TaskFilters{LocationID: locationID})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	ingredients, err := s.inventoryRepo.GetIngredients(locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	summary := analytics.DashboardSummary(analytics.DashboardInput{
		Orders:      append(orders, openOrders...),
		Tasks:       tasks,
		Ingredients: ingredients,
		Locations:   locations,
	}, locationCode, asOf)
	return &summary, nil
}

func (s *analyticsService) GetSalesReport(locationCode string, start, end time.Time) (*SalesReport, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	return &SalesReport{
		Metrics:   analytics.CalculateSalesMetrics(orders),
		ByChannel: analytics.SalesByChannel(orders),
	}, nil
}

func (s *analyticsService) GetGrowth(locationCode, period string, lastNDays int, asOf time.Time) (*GrowthReport, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}

	var current, prior analytics.Scope
	var label string
	switch period {
	case analytics.PeriodToday, analytics.PeriodWeek, analytics.PeriodMonth:
		current, prior, label = analytics.PeriodBounds(period, asOf)
	case "":
		current, prior, label = analytics.LastNDaysBounds(lastNDays, asOf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	orders, err := s.fetchOrders(locationID, prior.Start, current.End)
	if err != nil {
		return nil, err
	}
	currentMetrics := analytics.CalculateSalesMetrics(scopeOrders(orders, current, locations))
	priorMetrics := analytics.CalculateSalesMetrics(scopeOrders(orders, prior, locations))
	return &GrowthReport{
		Current: currentMetrics,
		Prior:   priorMetrics,
		Growth:  analytics.CalculateGrowth(currentMetrics, priorMetrics, label),
	}, nil
}

func (s *analyticsService) GetTopMenuItems(locationCode string, start, end time.Time, mode analytics.RankMode, limit int) ([]models.MenuItemPerformance, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	return analytics.TopMenuItems(orders, mode, limit), nil
}

func (s *analyticsService) GetTopStaff(locationCode string, start, end time.Time, limit int) ([]models.StaffPerformance, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.GetStaffMembers(locationID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	logs, err := s.staffRepo.GetTimeLogs(locationID, dateStr(start), dateStr(end))
	if err != nil {
		return nil, fmt.Errorf("failed to load time logs: %w", err)
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	return analytics.TopStaff(staff, logs, orders, limit), nil
}

func (s *analyticsService) GetLaborMetrics(locationCode string, start, end time.Time) (*models.LaborMetrics, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	logs, err := s.staffRepo.GetTimeLogs(locationID, dateStr(start), dateStr(end))
	if err != nil {
		return nil, fmt.Errorf("failed to load time logs: %w", err)
	}
	costs, err := s.staffRepo.GetLaborCosts(locationID, dateStr(start), dateStr(end))
	if err != nil {
		return nil, fmt.Errorf("failed to load labor costs: %w", err)
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	// Same exact-window pass the orders get; the repository filters on
	// whole days only.
	scope := analytics.Scope{LocationID: models.LocationAll, Start: start, End: end}
	idx := analytics.NewLocationIndex(locations)
	logs = analytics.FilterTimeLogs(logs, scope, idx)
	costs = analytics.FilterLaborCosts(costs, scope, idx)
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	metrics := analytics.AggregateLabor(logs, costs, orders)
	return &metrics, nil
}

func (s *analyticsService) GetWastageReports(locationCode string, start, end time.Time) ([]models.WastageReport, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	recipes, err := s.menuRepo.GetRecipeLines()
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	moves, err := s.inventoryRepo.GetMovements(models.MovementFilters{
		LocationID: locationID,
		StartDate:  dateStr(start),
		EndDate:    dateStr(end),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load stock movements: %w", err)
	}
	moves = analytics.FilterMovements(moves, analytics.Scope{LocationID: models.LocationAll, Start: start, End: end}, analytics.NewLocationIndex(locations))
	ingredients, err := s.inventoryRepo.GetIngredients(locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	return analytics.WastageReports(orders, recipes, moves, ingredients), nil
}

func (s *analyticsService) GetLocationPerformance(start, end time.Time) ([]models.LocationPerformance, error) {
	locations, err := s.locationRepo.GetLocations(false)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	orders, err := s.fetchOrders(nil, start, end)
	if err != nil {
		return nil, err
	}
	orders = scopeOrders(orders, analytics.Scope{Start: start, End: end}, locations)
	return analytics.LocationRollup(orders, locations), nil
}

func (s *analyticsService) GetTaskMetrics(locationCode string, start, end time.Time) (*models.TaskMetrics, error) {
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.GetTasks(models.TaskFilters{LocationID: locationID})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	scope := analytics.Scope{LocationID: models.LocationAll, Start: start, End: end}
	tasks = analytics.FilterTasks(tasks, scope, analytics.NewLocationIndex(locations))
	metrics := analytics.CalculateTaskMetrics(tasks)
	return &metrics, nil
}

func (s *analyticsService) GetSalesTrend(locationCode string, start, end time.Time) ([]models.SalesTrendPoint, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return nil, ErrInvalidDateRange
	}
	locationID, locations, err := s.resolveLocation(locationCode)
	if err != nil {
		return nil, err
	}
	orders, err := s.fetchOrders(locationID, start, end)
	if err != nil {
		return nil, err
	}
	scope := analytics.Scope{Start: start, End: end}
	orders = scopeOrders(orders, scope, locations)
	return analytics.SalesTrend(orders, scope), nil
}
