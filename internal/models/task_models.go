package models

import "time"

// Task status constants.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusOverdue    = "overdue"
	TaskStatusCancelled  = "cancelled"
)

// Task priority constants.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task represents an operational task (cleaning, prep, maintenance,
// admin) assigned to a staff member at a location. QualityScore is an
// optional 1-10 review score recorded on completion.
type Task struct {
	ID               int64      `json:"id" db:"id"`
	LocationID       int64      `json:"location_id" db:"location_id" binding:"required"`
	AssignedTo       *int64     `json:"assigned_to,omitempty" db:"assigned_to"`
	Title            string     `json:"title" db:"title" binding:"required"`
	Category         string     `json:"category" db:"category" binding:"required"`
	Priority         string     `json:"priority" db:"priority"`
	Status           string     `json:"status" db:"status"`
	DueAt            time.Time  `json:"due_at" db:"due_at" binding:"required"`
	EstimatedMinutes int        `json:"estimated_minutes" db:"estimated_minutes"`
	ActualMinutes    *int       `json:"actual_minutes,omitempty" db:"actual_minutes"`
	QualityScore     *int       `json:"quality_score,omitempty" db:"quality_score"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskFilters defines the available filters for querying tasks.
type TaskFilters struct {
	LocationID *int64  `form:"location_id"`
	AssignedTo *int64  `form:"assigned_to"`
	Status     *string `form:"status"`
	Category   *string `form:"category"`
	Priority   *string `form:"priority"`
}
