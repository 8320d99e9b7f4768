package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/helpers"
)

// UserController handles user profile and leaderboard operations
type UserController struct {
	userService    *services.UserService
	connectService *services.ConnectService
	logger         zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, connectService *services.ConnectService, logger zerolog.Logger) *UserController {
	return &UserController{userService: userService, connectService: connectService, logger: logger}
}

// Me returns the authenticated account
// @Summary Get own account
// @Description Returns the authenticated user or company profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /me [get]
func (c *UserController) Me(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	if actor.User != nil {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(actor.User, true), ""))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCompany(actor.Company, true), ""))
}

// UpdateMe updates the authenticated user's profile
// @Summary Update own profile
// @Description Updates bio, skills, and social links of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	user, err := c.userService.UpdateProfile(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user, true), "Profile updated"))
}

// GetProfile returns a public user profile by username
// @Summary Get a user profile
// @Description Returns the public profile of a user, including follower counts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{username} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.FromUser(user, false)
	if followers, following, err := c.userService.FollowCounts(ctx.Request.Context(), user.ID); err == nil {
		resp.Followers = followers
		resp.Following = following
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Leaderboard lists users ordered by contribution points
// @Summary List the leaderboard
// @Description Returns users ordered by PC points, optionally filtered by a search term
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Filter by username"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardResponse}
// @Router /users [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.userService.Leaderboard(ctx.Request.Context(), ctx.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entries := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		entries = append(entries, dto.FromUser(&users[i], false))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LeaderboardResponse{
		Users:      entries,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// Follow follows a user
// @Summary Follow a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to follow"
// @Success 200 {object} dto.APIResponse{data=dto.FollowResponse}
// @Failure 400 {object} dto.ErrorResponse "Cannot follow yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/follow [post]
func (c *UserController) Follow(ctx *gin.Context) {
	followeeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	resp, err := c.connectService.Follow(ctx.Request.Context(), actor, followeeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Followed"))
}

// Unfollow stops following a user
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} dto.APIResponse{data=dto.FollowResponse}
// @Router /users/{id}/follow [delete]
func (c *UserController) Unfollow(ctx *gin.Context) {
	followeeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	resp, err := c.connectService.Unfollow(ctx.Request.Context(), actor, followeeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Unfollowed"))
}
