package analytics

import (
	"restaurant_ops_backend/internal/models"
)

// CalculateTaskMetrics summarizes an already-scoped task set. Cancelled
// tasks count toward the total but not toward completion. The average
// quality score is taken over scored tasks only, and the duration
// variance over tasks that recorded an actual duration.
func CalculateTaskMetrics(tasks []models.Task) models.TaskMetrics {
	var m models.TaskMetrics
	var scoreSum float64
	var scored int
	var varianceSum float64
	var timed int

	for _, t := range tasks {
		m.TotalTasks++
		switch t.Status {
		case models.TaskStatusCompleted:
			m.CompletedTasks++
		case models.TaskStatusOverdue:
			m.OverdueTasks++
		}
		if t.QualityScore != nil {
			scoreSum += float64(*t.QualityScore)
			scored++
		}
		if t.ActualMinutes != nil {
			varianceSum += float64(*t.ActualMinutes - t.EstimatedMinutes)
			timed++
		}
	}

	m.CompletionRate = safeDiv(float64(m.CompletedTasks), float64(m.TotalTasks)) * 100
	m.AverageQualityScore = safeDiv(scoreSum, float64(scored))
	m.AvgDurationVariance = safeDiv(varianceSum, float64(timed))
	return m
}
