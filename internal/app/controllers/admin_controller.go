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

// AdminController handles moderation and platform administration
type AdminController struct {
	moderationService *services.ModerationService
	connectService    *services.ConnectService
	storeService      *services.StoreService
	logger            zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(moderationService *services.ModerationService, connectService *services.ConnectService, storeService *services.StoreService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		moderationService: moderationService,
		connectService:    connectService,
		storeService:      storeService,
		logger:            logger,
	}
}

// PendingAnswers lists answers awaiting validation
// @Summary List the moderation queue
// @Description Returns unvalidated answers, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PendingAnswersResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/answers/pending [get]
func (c *AdminController) PendingAnswers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	actor := middleware.GetActor(ctx)
	answers, total, err := c.moderationService.PendingAnswers(ctx.Request.Context(), actor, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PendingAnswersResponse{
		Answers:    answers,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// ValidateAnswer approves an answer
// @Summary Validate an answer
// @Description Approves an answer and awards points to its author
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=models.Answer}
// @Failure 409 {object} dto.ErrorResponse "Answer already validated"
// @Router /admin/answers/{id}/validate [post]
func (c *AdminController) ValidateAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	answer, err := c.moderationService.ValidateAnswer(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answer, "Answer validated"))
}

// RejectAnswer removes an answer from the moderation queue
// @Summary Reject an answer
// @Description Deletes an unvalidated answer with a reason
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param request body dto.RejectAnswerRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Answer already validated"
// @Router /admin/answers/{id}/reject [post]
func (c *AdminController) RejectAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectAnswerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.moderationService.RejectAnswer(ctx.Request.Context(), actor, id, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Answer rejected"))
}

// FeatureQuestion toggles a question's featured flag
// @Summary Feature a question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param featured query bool false "Featured state" default(true)
// @Success 200 {object} dto.APIResponse
// @Router /admin/questions/{id}/feature [post]
func (c *AdminController) FeatureQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	featured := true
	if raw := ctx.Query("featured"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			featured = parsed
		}
	}

	actor := middleware.GetActor(ctx)
	if err := c.moderationService.FeatureQuestion(ctx.Request.Context(), actor, id, featured); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Question updated"))
}

// FeatureSubmission toggles a portfolio submission's featured flag
// @Summary Feature a portfolio submission
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param featured query bool false "Featured state" default(true)
// @Success 200 {object} dto.APIResponse
// @Router /admin/portfolio/{id}/feature [post]
func (c *AdminController) FeatureSubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	featured := true
	if raw := ctx.Query("featured"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			featured = parsed
		}
	}

	actor := middleware.GetActor(ctx)
	if err := c.connectService.FeatureSubmission(ctx.Request.Context(), actor, id, featured); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Submission updated"))
}

// BanUser bans a user account
// @Summary Ban a user
// @Description Bans a user permanently or until the given expiry
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.BanUserRequest true "Ban reason and optional expiry"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Cannot ban an admin"
// @Router /admin/users/{id}/ban [post]
func (c *AdminController) BanUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.BanUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.moderationService.BanUser(ctx.Request.Context(), actor, id, req.Reason, req.Expires); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User banned"))
}

// UnbanUser lifts a user ban
// @Summary Unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/users/{id}/ban [delete]
func (c *AdminController) UnbanUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.moderationService.UnbanUser(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User unbanned"))
}

// AdjustPoints manually adjusts a user's balances
// @Summary Adjust user points
// @Description Applies manual PC and PCon deltas with a reason; balances never go below zero
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.AdjustPointsRequest true "Deltas and reason"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /admin/users/{id}/points [post]
func (c *AdminController) AdjustPoints(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AdjustPointsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	user, err := c.moderationService.AdjustPoints(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user, false), "Points adjusted"))
}

// CreateStoreItem adds a catalog item
// @Summary Create a store item
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreItemRequest true "Item details"
// @Success 201 {object} dto.APIResponse{data=models.StoreItem}
// @Router /admin/store/items [post]
func (c *AdminController) CreateStoreItem(ctx *gin.Context) {
	var req dto.CreateStoreItemRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	item, err := c.storeService.CreateItem(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Item created"))
}

// SetStoreItemActive activates or deactivates a catalog item
// @Summary Toggle a store item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param active query bool true "Active state"
// @Success 200 {object} dto.APIResponse
// @Router /admin/store/items/{id}/active [put]
func (c *AdminController) SetStoreItemActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	active, err := strconv.ParseBool(ctx.Query("active"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid active parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.storeService.SetItemActive(ctx.Request.Context(), actor, id, active); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Item updated"))
}

// PlatformStats returns platform wide counters
// @Summary Get platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlatformStatsResponse}
// @Router /admin/stats [get]
func (c *AdminController) PlatformStats(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	stats, err := c.moderationService.PlatformStats(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
