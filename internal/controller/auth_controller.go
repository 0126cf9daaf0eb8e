package controller

import (
	"net/http"

	"mindra_backend/internal/service"
	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// CredentialsRequest is the body of register and login.
// swagger:model CredentialsRequest
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body CredentialsRequest true "email and password"
// @Success 200 {object} model.AuthResult
// @Failure 400 {object} util.ErrorResponse "email and password required"
// @Failure 409 {object} util.ErrorResponse "User exists"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "email and password required")
		return
	}

	result, err := c.AuthService.Register(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Login godoc
// @Summary Log in
// @Description Exchanges email and password for a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body CredentialsRequest true "email and password"
// @Success 200 {object} model.AuthResult
// @Failure 400 {object} util.ErrorResponse "email and password required"
// @Failure 401 {object} util.ErrorResponse "Invalid credentials"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "email and password required")
		return
	}

	result, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetProfile godoc
// @Summary Current user
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} model.UserInfo
// @Failure 401 {object} util.ErrorResponse
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Error(ctx, http.StatusUnauthorized, "Missing Authorization header")
		return
	}

	profile, err := c.AuthService.GetProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
