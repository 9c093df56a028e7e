package services

import (
	"errors"
	"fmt"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var ErrLocationCodeTaken = errors.New("location code already in use")

type LocationService interface {
	CreateLocation(loc *models.Location) (*models.Location, error)
	GetLocations(onlyActive bool) ([]models.Location, error)
	GetLocationByCode(code string) (*models.Location, error)
}

type locationService struct {
	locationRepo repositories.LocationRepository
}

// NewLocationService creates a new instance of LocationService.
func NewLocationService(lr repositories.LocationRepository) LocationService {
	return &locationService{locationRepo: lr}
}

func (s *locationService) CreateLocation(loc *models.Location) (*models.Location, error) {
	if loc.Code == "" || loc.Code == models.LocationAll {
		return nil, fmt.Errorf("%w: location code %q is reserved", ErrValidation, loc.Code)
	}
	loc.IsActive = true
	id, err := s.locationRepo.CreateLocation(loc)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrLocationCodeTaken
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	loc.ID = id
	return loc, nil
}

func (s *locationService) GetLocations(onlyActive bool) ([]models.Location, error) {
	return s.locationRepo.GetLocations(onlyActive)
}

func (s *locationService) GetLocationByCode(code string) (*models.Location, error) {
	loc, err := s.locationRepo.GetLocationByCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, code)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}
