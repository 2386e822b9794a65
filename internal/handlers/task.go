package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/access"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dueDateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string `json:"due_date"`
	AssignedTo  *uint  `json:"assigned_to"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *uint   `json:"assigned_to"`
}

type TaskResponse struct {
	ID           uint      `json:"id"`
	ProjectID    uint      `json:"project_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DueDate      *string   `json:"due_date"`
	AssignedToID *uint     `json:"assigned_to_id"`
	CreatedByID  uint      `json:"created_by_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newTaskResponse(task models.Task) TaskResponse {
	response := TaskResponse{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		AssignedToID: task.AssignedToID,
		CreatedByID:  task.CreatedByID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	if task.DueDate != nil {
		formatted := time.Time(*task.DueDate).Format(dueDateLayout)
		response.DueDate = &formatted
	}

	return response
}

func parseDueDate(value string) (*datatypes.Date, error) {
	parsed, err := time.Parse(dueDateLayout, value)

	if err != nil {
		return nil, err
	}

	date := datatypes.Date(parsed)

	return &date, nil
}

// ListTasks returns the project's tasks, most-recently-updated first.
// Filters are optional and conjunctive. Malformed date bounds are treated as
// absent rather than rejected, so a bad filter widens results instead of
// failing the request.
func ListTasks(ctx *gin.Context) {
	project, _, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	query := db.DB.Where("project_id = ?", project.ID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if priority := ctx.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	if assigned := ctx.Query("assigned_to"); assigned != "" {
		if assignedID, err := strconv.ParseUint(assigned, 10, 32); err == nil {
			query = query.Where("assigned_to_id = ?", uint(assignedID))
		}
	}

	if from := ctx.Query("due_date_from"); from != "" {
		if parsed, err := time.Parse(dueDateLayout, from); err == nil {
			query = query.Where("due_date >= ?", datatypes.Date(parsed))
		}
	}

	if to := ctx.Query("due_date_to"); to != "" {
		if parsed, err := time.Parse(dueDateLayout, to); err == nil {
			query = query.Where("due_date <= ?", datatypes.Date(parsed))
		}
	}

	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var tasks []models.Task

	if err := query.Order("updated_at DESC").Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, newTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": response})
}

func CreateTask(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to create tasks in this project") {
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var dueDate *datatypes.Date

	if body.DueDate != "" {
		parsed, err := parseDueDate(body.DueDate)

		if err != nil {
			respondError(ctx, apperrors.Validation("due_date must be formatted as YYYY-MM-DD"))
			return
		}

		dueDate = parsed
	}

	if body.AssignedTo != nil {
		if err := access.EnsureAssignable(project.ID, *body.AssignedTo); err != nil {
			respondError(ctx, err)
			return
		}
	}

	status := body.Status

	if status == "" {
		status = models.TaskStatusTodo
	}

	priority := body.Priority

	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := models.Task{
		ProjectID:    project.ID,
		Title:        body.Title,
		Description:  body.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      dueDate,
		AssignedToID: body.AssignedTo,
		CreatedByID:  currentUser.ID,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.JSON(http.StatusCreated, newTaskResponse(task))
}

func GetTask(ctx *gin.Context) {
	project, _, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	task, ok := fetchTask(ctx, project.ID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newTaskResponse(*task))
}

func UpdateTask(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to update tasks in this project") {
		return
	}

	task, ok := fetchTask(ctx, project.ID)

	if !ok {
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.AssignedTo != nil {
		// Zero clears the assignee; anything else must be a project member.
		if *body.AssignedTo == 0 {
			task.AssignedToID = nil
		} else {
			if err := access.EnsureAssignable(project.ID, *body.AssignedTo); err != nil {
				respondError(ctx, err)
				return
			}
			task.AssignedToID = body.AssignedTo
		}
	}

	if body.DueDate != nil {
		if *body.DueDate == "" {
			task.DueDate = nil
		} else {
			parsed, err := parseDueDate(*body.DueDate)

			if err != nil {
				respondError(ctx, apperrors.Validation("due_date must be formatted as YYYY-MM-DD"))
				return
			}

			task.DueDate = parsed
		}
	}

	if body.Title != nil {
		task.Title = *body.Title
	}

	if body.Description != nil {
		task.Description = *body.Description
	}

	if body.Status != nil {
		task.Status = *body.Status
	}

	if body.Priority != nil {
		task.Priority = *body.Priority
	}

	if err := db.DB.Save(task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.JSON(http.StatusOK, newTaskResponse(*task))
}

func DeleteTask(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to delete tasks in this project") {
		return
	}

	task, ok := fetchTask(ctx, project.ID)

	if !ok {
		return
	}

	if err := db.DB.Delete(task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.Status(http.StatusNoContent)
}

// fetchTask loads :task_id scoped to the project, writing the error response
// itself on failure.
func fetchTask(ctx *gin.Context, projectID uint) (*models.Task, bool) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var task models.Task

	if err := db.DB.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, apperrors.NotFound("Task not found"))
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return nil, false
	}

	return &task, true
}
