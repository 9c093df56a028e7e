package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_ops_backend/internal/models"
)

// TaskRepository defines the interface for task-related database operations.
type TaskRepository interface {
	CreateTask(task *models.Task) (int64, error)
	GetTasks(filters models.TaskFilters) ([]models.Task, error)
	GetTaskByID(taskID int64) (*models.Task, error)
	UpdateTaskStatus(taskID int64, status string, actualMinutes *int, qualityScore *int, completedAt *time.Time) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) CreateTask(task *models.Task) (int64, error) {
	query := `INSERT INTO tasks
	          (location_id, assigned_to, title, category, priority, status, due_at,
	           estimated_minutes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		task.LocationID, task.AssignedTo, task.Title, task.Category, task.Priority,
		task.Status, task.DueAt, task.EstimatedMinutes, time.Now(),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating task: %v", ErrDatabaseError, err)
	}
	return task.ID, nil
}

func (r *taskRepository) GetTasks(filters models.TaskFilters) ([]models.Task, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, location_id, assigned_to, title, category, priority,
	    status, due_at, estimated_minutes, actual_minutes, quality_score, completed_at,
	    created_at, updated_at
	  FROM tasks`)

	var conditions []string
	var args []interface{}
	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, len(args)+1))
		args = append(args, value)
	}
	if filters.LocationID != nil {
		add("location_id = $%d", *filters.LocationID)
	}
	if filters.AssignedTo != nil {
		add("assigned_to = $%d", *filters.AssignedTo)
	}
	if filters.Status != nil && *filters.Status != "" {
		add("status = $%d", *filters.Status)
	}
	if filters.Category != nil && *filters.Category != "" {
		add("category = $%d", *filters.Category)
	}
	if filters.Priority != nil && *filters.Priority != "" {
		add("priority = $%d", *filters.Priority)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY due_at")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting tasks: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) GetTaskByID(taskID int64) (*models.Task, error) {
	row := r.db.QueryRow(`SELECT id, location_id, assigned_to, title, category, priority,
	    status, due_at, estimated_minutes, actual_minutes, quality_score, completed_at,
	    created_at, updated_at
	  FROM tasks WHERE id = $1`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) UpdateTaskStatus(taskID int64, status string, actualMinutes *int, qualityScore *int, completedAt *time.Time) error {
	result, err := r.db.Exec(`UPDATE tasks
	    SET status = $1, actual_minutes = COALESCE($2, actual_minutes),
	        quality_score = COALESCE($3, quality_score),
	        completed_at = COALESCE($4, completed_at), updated_at = $5
	    WHERE id = $6`,
		status, actualMinutes, qualityScore, completedAt, time.Now(), taskID)
	if err != nil {
		return fmt.Errorf("%w: updating task %d: %v", ErrDatabaseError, taskID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking task update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(s scanner) (models.Task, error) {
	var task models.Task
	var assignedTo sql.NullInt64
	var actualMinutes, qualityScore sql.NullInt64
	var completedAt sql.NullTime
	if err := s.Scan(&task.ID, &task.LocationID, &assignedTo, &task.Title, &task.Category,
		&task.Priority, &task.Status, &task.DueAt, &task.EstimatedMinutes,
		&actualMinutes, &qualityScore, &completedAt, &task.CreatedAt, &task.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task, err
		}
		return task, fmt.Errorf("%w: scanning task: %v", ErrDatabaseError, err)
	}
	if assignedTo.Valid {
		task.AssignedTo = &assignedTo.Int64
	}
	if actualMinutes.Valid {
		minutes := int(actualMinutes.Int64)
		task.ActualMinutes = &minutes
	}
	if qualityScore.Valid {
		score := int(qualityScore.Int64)
		task.QualityScore = &score
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return task, nil
}
