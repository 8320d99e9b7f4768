package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/helpers"
)

// ConnectController handles the social feed and the weekly portfolio showcase
type ConnectController struct {
	connectService *services.ConnectService
	logger         zerolog.Logger
}

// NewConnectController creates a new ConnectController
func NewConnectController(connectService *services.ConnectService, logger zerolog.Logger) *ConnectController {
	return &ConnectController{connectService: connectService, logger: logger}
}

// CreatePost publishes a feed post
// @Summary Create a post
// @Tags connect
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=models.Post}
// @Router /connect/posts [post]
func (c *ConnectController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	post, err := c.connectService.CreatePost(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post, "Post created"))
}

// Feed returns the post feed
// @Summary Read the feed
// @Description Returns the global feed, or only followed accounts when following=true
// @Tags connect
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param following query bool false "Restrict to followed accounts"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Router /connect/feed [get]
func (c *ConnectController) Feed(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	following := false
	if raw := ctx.Query("following"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			following = parsed
		}
	}

	actor := middleware.GetActor(ctx)
	posts, total, err := c.connectService.Feed(ctx.Request.Context(), actor, following, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PostListResponse{
		Posts:      posts,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// GetPost returns a post and its comments
// @Summary Get a post
// @Tags connect
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /connect/posts/{id} [get]
func (c *ConnectController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.connectService.GetPost(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// DeletePost removes a post
// @Summary Delete a post
// @Tags connect
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /connect/posts/{id} [delete]
func (c *ConnectController) DeletePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.connectService.DeletePost(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Post deleted"))
}

// Comment adds a comment to a post
// @Summary Comment on a post
// @Tags connect
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=models.Comment}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /connect/posts/{id}/comments [post]
func (c *ConnectController) Comment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	comment, err := c.connectService.Comment(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment, "Comment added"))
}

// ToggleLike likes or unlikes a post
// @Summary Toggle a like
// @Description Likes the post, or removes the like when already liked
// @Tags connect
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /connect/posts/{id}/like [post]
func (c *ConnectController) ToggleLike(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	resp, err := c.connectService.ToggleLike(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// SubmitPortfolio enters a project into the current weekly showcase
// @Summary Submit a portfolio project
// @Description Enters a project into this week's showcase; one submission per user per week
// @Tags connect
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitPortfolioRequest true "Project details"
// @Success 201 {object} dto.APIResponse{data=models.PortfolioSubmission}
// @Failure 409 {object} dto.ErrorResponse "Already submitted this week"
// @Router /connect/portfolio [post]
func (c *ConnectController) SubmitPortfolio(ctx *gin.Context) {
	var req dto.SubmitPortfolioRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	submission, err := c.connectService.SubmitPortfolio(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(submission, "Project submitted"))
}

// WeeklyShowcase lists a week's portfolio submissions
// @Summary View the weekly showcase
// @Description Lists submissions for the given ISO week, defaulting to the current one
// @Tags connect
// @Produce json
// @Param week query string false "ISO week, e.g. 2026-W35"
// @Success 200 {object} dto.APIResponse{data=dto.PortfolioListResponse}
// @Router /connect/portfolio [get]
func (c *ConnectController) WeeklyShowcase(ctx *gin.Context) {
	resp, err := c.connectService.WeeklyShowcase(ctx.Request.Context(), ctx.Query("week"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
