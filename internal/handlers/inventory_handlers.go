package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// CreateIngredient handles registering a tracked ingredient.
func (h *InventoryHandler) CreateIngredient(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	created, err := h.inventoryService.CreateIngredient(&ing)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "CreateIngredient: Error from inventoryService.CreateIngredient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create ingredient.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetIngredients handles listing ingredients, optionally by location.
func (h *InventoryHandler) GetIngredients(c *gin.Context) {
	var locationID *int64
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid location_id format.", err.Error()))
			return
		}
		locationID = &id
	}

	ingredients, err := h.inventoryService.GetIngredients(locationID)
	if err != nil {
		utils.LogError(err, "GetIngredients: Error from inventoryService.GetIngredients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch ingredients.", "Internal error"))
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	c.JSON(http.StatusOK, ingredients)
}

// RecordMovement handles a manual stock movement (delivery, spoilage,
// transfer and the like).
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req services.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	movement, err := h.inventoryService.RecordMovement(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIngredientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ingredient not found.", err.Error()))
		case errors.Is(err, services.ErrInsufficientStock):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock.", err.Error()))
		case errors.Is(err, services.ErrInvalidMovement):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.LogError(err, "RecordMovement: Error from inventoryService.RecordMovement")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record movement.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// GetMovements handles listing stock movements with filters.
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	var filters models.MovementFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	movements, err := h.inventoryService.GetMovements(filters)
	if err != nil {
		utils.LogError(err, "GetMovements: Error from inventoryService.GetMovements")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch movements.", "Internal error"))
		return
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	c.JSON(http.StatusOK, movements)
}
