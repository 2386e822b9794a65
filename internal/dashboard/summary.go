// Package dashboard computes task progress statistics over a user's visible
// projects. Summaries are built fresh on every call; nothing is cached.
package dashboard

import (
	"math"

	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/access"
	"github.com/teamtrack-dev/teamtrack/internal/models"
)

type ProjectProgress struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	PendingTasks   int64   `json:"pending_tasks"`
	ProgressPct    float64 `json:"progress_pct"`
}

type Summary struct {
	TotalTasks     int64             `json:"total_tasks"`
	CompletedTasks int64             `json:"completed_tasks"`
	PendingTasks   int64             `json:"pending_tasks"`
	Projects       []ProjectProgress `json:"projects"`
}

// BuildSummary returns global and per-project task counts for the user's
// visible projects. An empty visible set yields an all-zero summary.
func BuildSummary(user *models.User) (*Summary, error) {
	projects, err := access.VisibleProjects(user)

	if err != nil {
		return nil, err
	}

	summary := &Summary{Projects: []ProjectProgress{}}

	if len(projects) == 0 {
		return summary, nil
	}

	projectIDs := make([]uint, 0, len(projects))

	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
	}

	total, completed, pending, err := taskCounts("project_id IN ?", projectIDs)

	if err != nil {
		return nil, err
	}

	summary.TotalTasks = total
	summary.CompletedTasks = completed
	summary.PendingTasks = pending

	for _, project := range projects {
		pTotal, pCompleted, pPending, err := taskCounts("project_id = ?", project.ID)

		if err != nil {
			return nil, err
		}

		summary.Projects = append(summary.Projects, ProjectProgress{
			ID:             project.ID,
			Name:           project.Name,
			TotalTasks:     pTotal,
			CompletedTasks: pCompleted,
			PendingTasks:   pPending,
			ProgressPct:    progressPct(pCompleted, pTotal),
		})
	}

	return summary, nil
}

func taskCounts(query string, args ...interface{}) (total, completed, pending int64, err error) {
	if err = db.DB.Model(&models.Task{}).
		Where(query, args...).
		Count(&total).Error; err != nil {
		return 0, 0, 0, err
	}

	if err = db.DB.Model(&models.Task{}).
		Where(query, args...).
		Where("status = ?", models.TaskStatusDone).
		Count(&completed).Error; err != nil {
		return 0, 0, 0, err
	}

	if err = db.DB.Model(&models.Task{}).
		Where(query, args...).
		Where("status IN ?", []string{models.TaskStatusTodo, models.TaskStatusInProgress}).
		Count(&pending).Error; err != nil {
		return 0, 0, 0, err
	}

	return total, completed, pending, nil
}

// progressPct is completed/total as a percentage rounded to one decimal.
// Projects without tasks report 0.0 rather than dividing by zero.
func progressPct(completed, total int64) float64 {
	if total == 0 {
		return 0.0
	}

	return math.Round(float64(completed)/float64(total)*1000) / 10
}
