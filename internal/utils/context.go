package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/internal/models"
	"github.com/teamtrack-dev/teamtrack/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (models.User, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, fmt.Errorf("User not authenticated")
	}

	user, ok := value.(models.User)

	if !ok {
		return models.User{}, fmt.Errorf("Invalid user type in context")
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
