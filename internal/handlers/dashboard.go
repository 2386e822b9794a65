package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/internal/dashboard"
	"github.com/teamtrack-dev/teamtrack/internal/utils"
)

// GetDashboardSummary returns task totals and per-project progress for the
// current user's visible projects, computed fresh on every call.
func GetDashboardSummary(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	summary, err := dashboard.BuildSummary(&currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
