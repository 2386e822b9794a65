package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/db"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/types"
	"github.com/teamtrack-dev/teamtrack/internal/utils"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN TEAM_MEMBER"`
	IsActive *bool   `json:"is_active"`
}

// ListUsers returns all accounts, optionally filtered by role and active
// flag. Admin only (enforced by RequireAdmin in the router).
func ListUsers(ctx *gin.Context) {
	query := db.DB.Order("created_at DESC")

	if role := ctx.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	if active := ctx.Query("is_active"); active != "" {
		if isActive, err := strconv.ParseBool(active); err == nil {
			query = query.Where("is_active = ?", isActive)
		}
	}

	var users []models.User

	if err := query.Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	ctx.JSON(http.StatusOK, gin.H{"users": response})
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, apperrors.NotFound("User not found"))
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// UpdateUser changes a target account's role and/or active flag. An admin
// acting on their own account may not change role or deactivate it; that
// guard exists so the last admin cannot lock themself out.
func UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, apperrors.NotFound("User not found"))
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	if user.ID == currentUser.ID {
		if body.Role != nil && *body.Role != user.Role {
			respondError(ctx, apperrors.PermissionDeniedCode(
				apperrors.CodeCannotChangeOwnRole,
				"You cannot change your own role",
			))
			return
		}
		if body.IsActive != nil && !*body.IsActive {
			respondError(ctx, apperrors.PermissionDeniedCode(
				apperrors.CodeCannotDeactivateSelf,
				"You cannot deactivate your own account",
			))
			return
		}
	}

	updates := make(map[string]interface{})

	if body.Role != nil {
		updates["role"] = *body.Role
	}

	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
