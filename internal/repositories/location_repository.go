package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
)

// LocationRepository defines the interface for location database operations.
type LocationRepository interface {
	CreateLocation(loc *models.Location) (int64, error)
	GetLocations(onlyActive bool) ([]models.Location, error)
	GetLocationByCode(code string) (*models.Location, error)
}

type locationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) CreateLocation(loc *models.Location) (int64, error) {
	if loc.Code == models.LocationAll {
		return 0, fmt.Errorf("%w: location code %q is reserved", ErrDuplicateKey, models.LocationAll)
	}
	if loc.Timezone == "" {
		loc.Timezone = "UTC"
	}
	query := `INSERT INTO locations (code, name, address, timezone, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		loc.Code, loc.Name, loc.Address, loc.Timezone, loc.IsActive, time.Now(),
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating location: %v", ErrDatabaseError, err)
	}
	return loc.ID, nil
}

func (r *locationRepository) GetLocations(onlyActive bool) ([]models.Location, error) {
	query := `SELECT id, code, name, address, timezone, is_active, created_at, updated_at FROM locations`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting locations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		var address sql.NullString
		if err := rows.Scan(&loc.ID, &loc.Code, &loc.Name, &address, &loc.Timezone,
			&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning location: %v", ErrDatabaseError, err)
		}
		if address.Valid {
			loc.Address = &address.String
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *locationRepository) GetLocationByCode(code string) (*models.Location, error) {
	row := r.db.QueryRow(`SELECT id, code, name, address, timezone, is_active, created_at, updated_at
	  FROM locations WHERE code = $1`, code)

	var loc models.Location
	var address sql.NullString
	err := row.Scan(&loc.ID, &loc.Code, &loc.Name, &address, &loc.Timezone,
		&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting location %q: %v", ErrDatabaseError, code, err)
	}
	if address.Valid {
		loc.Address = &address.String
	}
	return &loc, nil
}
