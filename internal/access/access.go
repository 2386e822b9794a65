// Package access is the single place deciding who can see and modify which
// projects. Handlers must not re-implement these checks.
package access

import (
	"errors"

	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"gorm.io/gorm"
)

// VisibleProjects returns every project for a global admin, otherwise exactly
// the projects the user holds a membership on. Most-recently-updated first.
func VisibleProjects(user *models.User) ([]models.Project, error) {
	var projects []models.Project

	if user.IsAdmin() {
		err := db.DB.Order("updated_at DESC").Find(&projects).Error
		return projects, err
	}

	err := db.DB.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ? AND project_members.deleted_at IS NULL", user.ID).
		Order("projects.updated_at DESC").
		Find(&projects).Error

	return projects, err
}

// ResolveProject fetches the project the user may read. A missing project and
// an existing but inaccessible one are both reported as NotFound so that the
// existence of inaccessible projects is never revealed.
func ResolveProject(projectID uint, user *models.User) (*models.Project, error) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Project not found")
		}
		return nil, err
	}

	if user.IsAdmin() || project.CreatedByID == user.ID {
		return &project, nil
	}

	member, err := IsMember(project.ID, user.ID)

	if err != nil {
		return nil, err
	}

	if !member {
		return nil, apperrors.NotFound("Project not found")
	}

	return &project, nil
}

// CanModify reports whether the user may mutate the project or anything it
// owns: global admin, project creator, or PROJECT_ADMIN member.
func CanModify(user *models.User, project *models.Project) (bool, error) {
	if user.IsAdmin() || project.CreatedByID == user.ID {
		return true, nil
	}

	var count int64

	err := db.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ? AND role = ?", project.ID, user.ID, models.MemberRoleProjectAdmin).
		Count(&count).Error

	return count > 0, err
}

// IsMember reports whether the user holds any membership on the project.
func IsMember(projectID uint, userID uint) (bool, error) {
	var count int64

	err := db.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	return count > 0, err
}

// EnsureAssignable validates that the assignee holds a membership on the
// project. This is a data-integrity rule, independent of the acting user.
func EnsureAssignable(projectID uint, assigneeID uint) error {
	member, err := IsMember(projectID, assigneeID)

	if err != nil {
		return err
	}

	if !member {
		return apperrors.PermissionDeniedCode(
			apperrors.CodeAssigneeNotMember,
			"Assigned user must be a member of the project",
		)
	}

	return nil
}
