package controller

import (
	"errors"

	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError translates service errors into status codes and short messages.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrMissingCredentials):
		util.BadRequest(ctx, "email and password required")
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, "User exists")
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(ctx, "Invalid credentials")
	case errors.Is(err, util.ErrUserNotFound):
		util.Unauthorized(ctx, "User not found")
	case errors.Is(err, util.ErrModuleNotFound):
		util.NotFound(ctx, "Module not found")
	case errors.Is(err, util.ErrInvalidModule):
		util.UnprocessableEntity(ctx, "Module has no quiz questions")
	default:
		util.LogInternalError(ctx, err)
	}
}
