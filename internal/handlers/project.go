package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/access"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatedByID: project.CreatedByID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// CreateProject creates the project and the creator's PROJECT_ADMIN
// membership in one transaction; neither row survives without the other.
func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	status := body.Status

	if status == "" {
		status = models.ProjectStatusActive
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		Status:      status,
		CreatedByID: currentUser.ID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		member := models.ProjectMember{
			UserID:    currentUser.ID,
			ProjectID: project.ID,
			Role:      models.MemberRoleProjectAdmin,
		}

		return tx.Create(&member).Error
	})

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, newProjectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := access.VisibleProjects(&currentUser)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, newProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": response})
}

func GetProject(ctx *gin.Context) {
	project, _, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newProjectResponse(*project))
}

func UpdateProject(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to modify this project") {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Name != nil {
		project.Name = *body.Name
	}

	if body.Description != nil {
		project.Description = *body.Description
	}

	if body.Status != nil {
		project.Status = *body.Status
	}

	if err := db.DB.Save(project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.JSON(http.StatusOK, newProjectResponse(*project))
}

// DeleteProject removes the project with its tasks and memberships in one
// transaction. Rows are hard deleted; the project exclusively owns them.
func DeleteProject(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to delete this project") {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Project{}, project.ID).Error
	})

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.Status(http.StatusNoContent)
}

// resolveProjectFromRequest loads the project addressed by :project_id for
// the current user, writing the error response itself when resolution fails.
func resolveProjectFromRequest(ctx *gin.Context) (*models.Project, models.User, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, models.User{}, false
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, models.User{}, false
	}

	project, err := access.ResolveProject(projectID, &currentUser)

	if err != nil {
		respondError(ctx, err)
		return nil, models.User{}, false
	}

	return project, currentUser, true
}

// requireModify enforces the modify permission and writes the 403 itself.
func requireModify(ctx *gin.Context, user *models.User, project *models.Project, message string) bool {
	allowed, err := access.CanModify(user, project)

	if err != nil {
		respondError(ctx, err)
		return false
	}

	if !allowed {
		respondError(ctx, apperrors.PermissionDenied(message))
		return false
	}

	return true
}
