package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
)

// VoteController handles voting on questions, answers, articles, and portfolio entries
type VoteController struct {
	voteService *services.VoteService
	logger      zerolog.Logger
}

// NewVoteController creates a new VoteController
func NewVoteController(voteService *services.VoteService, logger zerolog.Logger) *VoteController {
	return &VoteController{voteService: voteService, logger: logger}
}

// Vote casts, retracts, or switches a vote
// @Summary Vote on content
// @Description Casting the same direction twice retracts the vote; the opposite direction switches it. Author reputation is adjusted accordingly.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VoteRequest true "Vote target and direction"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid vote target"
// @Failure 403 {object} dto.ErrorResponse "Cannot vote on own content"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Router /votes [post]
func (c *VoteController) Vote(ctx *gin.Context) {
	var req dto.VoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	resp, err := c.voteService.Vote(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Debug().
		Int64("voterID", actor.ID).
		Int64("targetID", req.TargetID).
		Str("targetType", string(req.TargetType)).
		Str("direction", string(resp.Direction)).
		Msg("Vote processed")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
