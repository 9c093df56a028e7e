package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// UpdateTaskStatusRequest moves a task through its lifecycle. Actual
// minutes and quality score are meaningful on completion only.
type UpdateTaskStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	ActualMinutes *int   `json:"actual_minutes"`
	QualityScore  *int   `json:"quality_score"`
}

type TaskService interface {
	CreateTask(task *models.Task) (*models.Task, error)
	GetTasks(filters models.TaskFilters) ([]models.Task, error)
	GetTaskByID(taskID int64) (*models.Task, error)
	UpdateTaskStatus(taskID int64, req UpdateTaskStatusRequest) (*models.Task, error)
}

type taskService struct {
	taskRepo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(tr repositories.TaskRepository) TaskService {
	return &taskService{taskRepo: tr}
}

func (s *taskService) CreateTask(task *models.Task) (*models.Task, error) {
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if !isValidTaskPriority(task.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, task.Priority)
	}
	if task.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: estimated minutes must not be negative", ErrValidation)
	}
	task.Status = models.TaskStatusPending
	id, err := s.taskRepo.CreateTask(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.taskRepo.GetTaskByID(id)
}

func (s *taskService) GetTasks(filters models.TaskFilters) ([]models.Task, error) {
	return s.taskRepo.GetTasks(filters)
}

func (s *taskService) GetTaskByID(taskID int64) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *taskService) UpdateTaskStatus(taskID int64, req UpdateTaskStatusRequest) (*models.Task, error) {
	if !isValidTaskStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTaskStatus, req.Status)
	}
	if req.QualityScore != nil && (*req.QualityScore < 1 || *req.QualityScore > 10) {
		return nil, fmt.Errorf("%w: quality score must be between 1 and 10", ErrValidation)
	}
	if _, err := s.GetTaskByID(taskID); err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if req.Status == models.TaskStatusCompleted {
		now := time.Now()
		completedAt = &now
	}
	if err := s.taskRepo.UpdateTaskStatus(taskID, req.Status, req.ActualMinutes, req.QualityScore, completedAt); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return s.GetTaskByID(taskID)
}

func isValidTaskStatus(status string) bool {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted,
		models.TaskStatusOverdue, models.TaskStatusCancelled:
		return true
	}
	return false
}

func isValidTaskPriority(priority string) bool {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh, models.TaskPriorityUrgent:
		return true
	}
	return false
}
