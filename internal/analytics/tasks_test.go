package analytics

import (
	"math"
	"testing"

	"restaurant_ops_backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestTaskMetrics(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusCompleted, EstimatedMinutes: 30, ActualMinutes: intPtr(40), QualityScore: intPtr(8)},
		{Status: models.TaskStatusCompleted, EstimatedMinutes: 60, ActualMinutes: intPtr(50), QualityScore: intPtr(6)},
		{Status: models.TaskStatusOverdue, EstimatedMinutes: 15},
		{Status: models.TaskStatusPending, EstimatedMinutes: 20},
		{Status: models.TaskStatusCancelled, EstimatedMinutes: 10},
	}

	m := CalculateTaskMetrics(tasks)
	if m.TotalTasks != 5 || m.CompletedTasks != 2 || m.OverdueTasks != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if math.Abs(m.CompletionRate-40) > 1e-9 {
		t.Errorf("expected completion rate 40, got %v", m.CompletionRate)
	}
	if math.Abs(m.AverageQualityScore-7) > 1e-9 {
		t.Errorf("expected average quality 7, got %v", m.AverageQualityScore)
	}
	// (+10 - 10) / 2 timed tasks.
	if m.AvgDurationVariance != 0 {
		t.Errorf("expected zero duration variance, got %v", m.AvgDurationVariance)
	}
}

func TestTaskMetricsEmpty(t *testing.T) {
	m := CalculateTaskMetrics(nil)
	if m.TotalTasks != 0 || m.CompletionRate != 0 || m.AverageQualityScore != 0 || m.AvgDurationVariance != 0 {
		t.Errorf("expected zero-valued metrics, got %+v", m)
	}
}
