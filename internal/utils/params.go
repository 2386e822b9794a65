package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramUint(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " not found")
	}

	value, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(value), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return paramUint(ctx, "project_id")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return paramUint(ctx, "task_id")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return paramUint(ctx, "user_id")
}
