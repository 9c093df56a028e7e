package handlers

import (
	"errors"
	"net/http"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LocationHandler holds the location service.
type LocationHandler struct {
	locationService services.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(ls services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: ls}
}

// CreateLocation handles opening a new restaurant site.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	created, err := h.locationService.CreateLocation(&loc)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationCodeTaken):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Location code already in use.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.LogError(err, "CreateLocation: Error from locationService.CreateLocation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create location.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetLocations handles listing locations.
func (h *LocationHandler) GetLocations(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	locations, err := h.locationService.GetLocations(onlyActive)
	if err != nil {
		utils.LogError(err, "GetLocations: Error from locationService.GetLocations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch locations.", "Internal error"))
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocationByCode handles fetching a single location by its code.
func (h *LocationHandler) GetLocationByCode(c *gin.Context) {
	loc, err := h.locationService.GetLocationByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Location not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetLocationByCode: Error from locationService.GetLocationByCode")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch location.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, loc)
}
