package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/helpers"
)

// ArticleController handles technical article operations
type ArticleController struct {
	articleService *services.ArticleService
	logger         zerolog.Logger
}

// NewArticleController creates a new ArticleController
func NewArticleController(articleService *services.ArticleService, logger zerolog.Logger) *ArticleController {
	return &ArticleController{articleService: articleService, logger: logger}
}

// Create writes a new article
// @Summary Create an article
// @Description Creates an article as a draft, or publishes immediately when publish is true and the author has the required rank
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateArticleRequest true "Article content"
// @Success 201 {object} dto.APIResponse{data=models.Article}
// @Failure 403 {object} dto.ErrorResponse "Rank too low to publish"
// @Router /articles [post]
func (c *ArticleController) Create(ctx *gin.Context) {
	var req dto.CreateArticleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	article, err := c.articleService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(article, "Article created"))
}

// List returns published articles
// @Summary List published articles
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Param authorId query int false "Filter by author"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleListResponse}
// @Router /articles [get]
func (c *ArticleController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.ArticleFilter{
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
	}
	if raw := ctx.Query("authorId"); raw != "" {
		if authorID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.AuthorID = authorID
		}
	}

	articles, total, err := c.articleService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ArticleListResponse{
		Articles:   articles,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// ListOwn returns the authenticated user's articles, drafts included
// @Summary List own articles
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ArticleListResponse}
// @Router /me/articles [get]
func (c *ArticleController) ListOwn(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	actor := middleware.GetActor(ctx)
	articles, total, err := c.articleService.ListOwn(ctx.Request.Context(), actor, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ArticleListResponse{
		Articles:   articles,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// Get returns a single article
// @Summary Get an article
// @Description Returns an article; drafts are visible only to their author or an admin
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=models.Article}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [get]
func (c *ArticleController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	article, err := c.articleService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article, ""))
}

// Update edits an article
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body dto.UpdateArticleRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Article}
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /articles/{id} [put]
func (c *ArticleController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	article, err := c.articleService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article, "Article updated"))
}

// Publish makes a draft article public
// @Summary Publish an article
// @Description Publishes a draft; the publish award is paid only on the first publication
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=models.Article}
// @Failure 403 {object} dto.ErrorResponse "Rank too low to publish"
// @Router /articles/{id}/publish [post]
func (c *ArticleController) Publish(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	article, err := c.articleService.Publish(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article, "Article published"))
}

// Unpublish reverts an article to draft state
// @Summary Unpublish an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /articles/{id}/publish [delete]
func (c *ArticleController) Unpublish(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.articleService.Unpublish(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Article unpublished"))
}

// Delete removes an article
// @Summary Delete an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /articles/{id} [delete]
func (c *ArticleController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.articleService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Article deleted"))
}
