// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/auth"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func tokenResponse(pair *auth.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(time.Until(pair.AccessTokenExpiresAt).Seconds()),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(time.Until(pair.RefreshTokenExpiresAt).Seconds()),
	}
}

// RegisterUser handles developer account registration
// @Summary Register a new developer account
// @Description Creates a developer account with the starting PCon balance and returns tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Router /auth/register [post]
func (c *AuthController) RegisterUser(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, pair, err := c.authService.RegisterUser(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("User registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   tokenResponse(pair),
		Account: dto.FromUser(user, true),
	}, "Account created"))
}

// RegisterCompany handles company account registration
// @Summary Register a new company account
// @Description Creates a company account on the basic plan and returns tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterCompanyRequest true "Company registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email or name already exists"
// @Router /auth/register/company [post]
func (c *AuthController) RegisterCompany(ctx *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	company, pair, err := c.authService.RegisterCompany(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Company registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   tokenResponse(pair),
		Account: dto.FromCompany(company, true),
	}, "Account created"))
}

// Login handles authentication for both account kinds
// @Summary Log in
// @Description Authenticates an email and password against users first, then companies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account is banned"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, pair, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var account interface{}
	if actor.Kind == models.KindUser {
		account = dto.FromUser(actor.User, true)
	} else {
		account = dto.FromCompany(actor.Company, true)
	}

	c.logger.Info().Int64("accountID", actor.ID).Str("kind", string(actor.Kind)).Msg("Login succeeded")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   tokenResponse(pair),
		Account: account,
	}, "Logged in"))
}

// Refresh rotates a refresh token
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair; the old refresh token is revoked
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired, or revoked token"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	_, pair, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokenResponse(pair), "Tokens refreshed"))
}

// Logout revokes the presented refresh token
// @Summary Log out
// @Description Revokes the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Token not found"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out"))
}

// LogoutAll revokes every refresh token of the authenticated account
// @Summary Log out everywhere
// @Description Revokes all refresh tokens of the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /auth/logout/all [post]
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	if err := c.authService.LogoutAll(ctx.Request.Context(), actor.ID, actor.Kind); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("accountID", actor.ID).Msg("All sessions revoked")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out everywhere"))
}
