package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/helpers"
)

// QuestionController handles question and answer operations
type QuestionController struct {
	questionService *services.QuestionService
	logger          zerolog.Logger
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService, logger zerolog.Logger) *QuestionController {
	return &QuestionController{questionService: questionService, logger: logger}
}

// Create posts a new question
// @Summary Ask a question
// @Description Creates a question and awards contribution points to the author
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question content"
// @Success 201 {object} dto.APIResponse{data=models.Question}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Companies cannot ask questions"
// @Router /questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	question, err := c.questionService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question, "Question created"))
}

// List returns questions matching the given filters
// @Summary List questions
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param tag query string false "Filter by tag"
// @Param search query string false "Search in title and body"
// @Param sort query string false "Sort order" Enums(newest, votes, views, unanswered)
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse}
// @Router /questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.QuestionFilter{
		Tag:    ctx.Query("tag"),
		Search: ctx.Query("search"),
		Sort:   ctx.Query("sort"),
	}

	questions, total, err := c.questionService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.QuestionListResponse{
		Questions:  questions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// Get returns a question and its answers
// @Summary Get a question
// @Description Returns the question with its answers and increments the view counter
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.questionService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// Update edits a question
// @Summary Update a question
// @Description Edits title, body, or tags; only the author may edit
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Question}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	question, err := c.questionService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(question, "Question updated"))
}

// Delete removes a question
// @Summary Delete a question
// @Description Removes a question; only the author or an admin may delete
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.questionService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Question deleted"))
}

// Answer posts an answer to a question
// @Summary Answer a question
// @Description Submits an answer; points are awarded once a moderator validates it
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.CreateAnswerRequest true "Answer content"
// @Success 201 {object} dto.APIResponse{data=models.Answer}
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{id}/answers [post]
func (c *QuestionController) Answer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	answer, err := c.questionService.Answer(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(answer, "Answer submitted"))
}

// AcceptAnswer marks an answer as the accepted solution
// @Summary Accept an answer
// @Description Marks a validated answer as the accepted solution, moving the acceptance off any previously accepted answer; only the question author may accept
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=models.Answer}
// @Failure 400 {object} dto.ErrorResponse "Answer not validated yet"
// @Failure 403 {object} dto.ErrorResponse "Not the question author"
// @Failure 409 {object} dto.ErrorResponse "Answer already accepted"
// @Router /answers/{id}/accept [post]
func (c *QuestionController) AcceptAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	answer, err := c.questionService.AcceptAnswer(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answer, "Answer accepted"))
}
