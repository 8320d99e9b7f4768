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

// JobController handles job posting and application operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{jobService: jobService, logger: logger}
}

// Create publishes a job posting
// @Summary Post a job
// @Description Creates a job posting; only company accounts may post
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Only companies can post jobs"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	job, err := c.jobService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("companyID", actor.ID).Int64("jobID", job.ID).Msg("Job posted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(job, "Job posted"))
}

// List returns active job postings
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param type query string false "Filter by job type" Enums(full_time, part_time, contract, internship, freelance)
// @Param experience query string false "Filter by experience level" Enums(junior, mid, senior, lead)
// @Param remote query bool false "Filter by remote positions"
// @Param search query string false "Search in title and description"
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.JobFilter{
		JobType:    ctx.Query("type"),
		Experience: ctx.Query("experience"),
		Search:     ctx.Query("search"),
	}
	if raw := ctx.Query("remote"); raw != "" {
		if remote, err := strconv.ParseBool(raw); err == nil {
			filter.Remote = &remote
		}
	}

	jobs, total, err := c.jobService.List(ctx.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.JobListResponse{
		Jobs:       jobs,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// ListOwn returns the authenticated company's postings, inactive included
// @Summary List own job postings
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Failure 403 {object} dto.ErrorResponse "Only companies have postings"
// @Router /me/jobs [get]
func (c *JobController) ListOwn(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	actor := middleware.GetActor(ctx)
	jobs, total, err := c.jobService.ListOwn(ctx.Request.Context(), actor, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.JobListResponse{
		Jobs:       jobs,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// Get returns a single job posting
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job, ""))
}

// Update edits a job posting
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 403 {object} dto.ErrorResponse "Not the posting company"
// @Router /jobs/{id} [put]
func (c *JobController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	job, err := c.jobService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job, "Job updated"))
}

// Delete removes a job posting
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the posting company"
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.jobService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Job deleted"))
}

// Apply submits a job application
// @Summary Apply to a job
// @Description Submits an application; one live application per job per user
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.ApplyJobRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=models.JobApplication}
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Failure 410 {object} dto.ErrorResponse "Application deadline passed"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	application, err := c.jobService.Apply(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(application, "Application submitted"))
}

// Withdraw cancels a job application
// @Summary Withdraw an application
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the applicant"
// @Router /applications/{id} [delete]
func (c *JobController) Withdraw(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.jobService.Withdraw(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application withdrawn"))
}

// ListApplications returns applications to one of the company's jobs
// @Summary List applications for a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]models.JobApplication}
// @Failure 403 {object} dto.ErrorResponse "Not the posting company"
// @Router /jobs/{id}/applications [get]
func (c *JobController) ListApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor := middleware.GetActor(ctx)
	applications, err := c.jobService.ListApplications(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications, ""))
}

// MyApplications returns the authenticated user's applications
// @Summary List own applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.JobApplication}
// @Router /applications [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	applications, err := c.jobService.MyApplications(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applications, ""))
}

// Review updates an application's status
// @Summary Review an application
// @Description Moves an application to reviewing, accepted, or rejected; only the posting company may review
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ReviewApplicationRequest true "New status"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the posting company"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/{id}/review [post]
func (c *JobController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	if err := c.jobService.Review(ctx.Request.Context(), actor, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application reviewed"))
}
