package handlers

import (
	"errors"
	"net/http"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TaskHandler holds the task service.
type TaskHandler struct {
	taskService services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(ts services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

// CreateTask handles creating an operational task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	created, err := h.taskService.CreateTask(&task)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "CreateTask: Error from taskService.CreateTask")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create task.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTasks handles listing tasks with filters.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	var filters models.TaskFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	tasks, err := h.taskService.GetTasks(filters)
	if err != nil {
		utils.LogError(err, "GetTasks: Error from taskService.GetTasks")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tasks.", "Internal error"))
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTaskByID handles fetching a single task.
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Task not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetTaskByID: Error from taskService.GetTaskByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch task.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles moving a task through its lifecycle.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	updated, err := h.taskService.UpdateTaskStatus(taskID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Task not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus), errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.LogError(err, "UpdateTaskStatus: Error from taskService.UpdateTaskStatus")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update task.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}
