package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/utils"
	"gorm.io/gorm"
)

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=PROJECT_ADMIN MEMBER"`
}

type MemberResponse struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func newMemberResponse(member models.ProjectMember) MemberResponse {
	return MemberResponse{
		ID:       member.ID,
		UserID:   member.UserID,
		Name:     member.User.Name,
		Email:    member.User.Email,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

func ListMembers(ctx *gin.Context) {
	project, _, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	var members []models.ProjectMember

	if err := db.DB.Preload("User").Where("project_id = ?", project.ID).Find(&members).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		response = append(response, newMemberResponse(member))
	}

	ctx.JSON(http.StatusOK, gin.H{"members": response})
}

// AddMember adds a user to the project. Duplicate pairings are a Conflict and
// leave the membership set untouched.
func AddMember(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to modify this project") {
		return
	}

	var body AddMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var count int64

	if err := db.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, body.UserID).
		Count(&count).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}

	if count > 0 {
		respondError(ctx, apperrors.Conflict("User is already a member of this project"))
		return
	}

	var targetUser models.User

	if err := db.DB.First(&targetUser, body.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, apperrors.NotFound("User not found"))
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	role := body.Role

	if role == "" {
		role = models.MemberRoleMember
	}

	member := models.ProjectMember{
		UserID:    targetUser.ID,
		ProjectID: project.ID,
		Role:      role,
		User:      targetUser,
	}

	if err := db.DB.Omit("User").Create(&member).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.JSON(http.StatusCreated, newMemberResponse(member))
}

func RemoveMember(ctx *gin.Context) {
	project, currentUser, ok := resolveProjectFromRequest(ctx)

	if !ok {
		return
	}

	if !requireModify(ctx, &currentUser, project, "You do not have permission to modify this project") {
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var member models.ProjectMember

	if err := db.DB.Where("project_id = ? AND user_id = ?", project.ID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, apperrors.NotFound("User is not a member of this project"))
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve membership"})
		}
		return
	}

	// Hard delete so the unique (user, project) index allows rejoining.
	if err := db.DB.Unscoped().Delete(&member).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	BroadcastRefresh(project.ID)

	ctx.Status(http.StatusNoContent)
}
