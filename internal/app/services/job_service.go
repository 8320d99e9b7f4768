package services

import (
	"context"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// JobStore is the storage surface for job postings and applications.
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter repositories.JobFilter, offset uint64, limit int) ([]models.Job, int64, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id int64) error
	CreateApplication(ctx context.Context, application *models.JobApplication) error
	GetApplication(ctx context.Context, id int64) (*models.JobApplication, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error)
	ListApplicationsByUser(ctx context.Context, userID int64) ([]models.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, feedback string) error
}

// JobService handles the job board: companies post, users apply
type JobService struct {
	jobs JobStore
}

// NewJobService creates a new JobService
func NewJobService(jobs JobStore) *JobService {
	return &JobService{jobs: jobs}
}

// Create posts a new job; only companies post jobs
func (s *JobService) Create(ctx context.Context, actor *models.Actor, req *dto.CreateJobRequest) (*models.Job, error) {
	if actor.Kind != models.KindCompany || actor.Company == nil {
		return nil, apperrors.ErrPermissionDenied
	}

	job := &models.Job{
		Title:           req.Title,
		Description:     req.Description,
		CompanyID:       actor.ID,
		CompanyName:     actor.Company.Name,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		Remote:          req.Remote,
		Deadline:        req.Deadline,
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.Info().Int64("jobID", job.ID).Int64("companyID", actor.ID).Msg("Job posted")
	return job, nil
}

// Get retrieves a single job posting
func (s *JobService) Get(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// List retrieves a filtered page of active jobs
func (s *JobService) List(ctx context.Context, filter repositories.JobFilter, offset uint64, limit int) ([]models.Job, int64, error) {
	filter.IncludeInactive = false
	return s.jobs.List(ctx, filter, offset, limit)
}

// ListOwn retrieves the company's own postings including inactive ones
func (s *JobService) ListOwn(ctx context.Context, actor *models.Actor, offset uint64, limit int) ([]models.Job, int64, error) {
	if actor.Kind != models.KindCompany {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	filter := repositories.JobFilter{CompanyID: actor.ID, IncludeInactive: true}
	return s.jobs.List(ctx, filter, offset, limit)
}

// Update edits a posting; only the owning company may edit
func (s *JobService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Skills != nil {
		job.Skills = req.Skills
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a posting; the owning company or an admin
func (s *JobService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && (actor.Kind != models.KindCompany || job.CompanyID != actor.ID) {
		return apperrors.ErrPermissionDenied
	}
	return s.jobs.Delete(ctx, id)
}

// Apply files a user's application. Closed and expired postings reject
// applications; the storage layer rejects duplicates.
func (s *JobService) Apply(ctx context.Context, actor *models.Actor, jobID int64, req *dto.ApplyJobRequest) (*models.JobApplication, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, apperrors.ErrJobNotFound
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	application := &models.JobApplication{
		JobID:          jobID,
		UserID:         actor.ID,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,
		ExpectedSalary: req.ExpectedSalary,
		Status:         models.ApplicationPending,
	}
	if err := s.jobs.CreateApplication(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// Withdraw lets an applicant withdraw a pending application
func (s *JobService) Withdraw(ctx context.Context, actor *models.Actor, applicationID int64) error {
	application, err := s.jobs.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.UserID != actor.ID || actor.Kind != models.KindUser {
		return apperrors.ErrPermissionDenied
	}
	return s.jobs.UpdateApplicationStatus(ctx, applicationID, models.ApplicationWithdrawn, "")
}

// ListApplications lists applications for a job; only the owning company
func (s *JobService) ListApplications(ctx context.Context, actor *models.Actor, jobID int64) ([]models.JobApplication, error) {
	if _, err := s.ownJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	return s.jobs.ListApplicationsByJob(ctx, jobID)
}

// MyApplications lists the calling user's applications
func (s *JobService) MyApplications(ctx context.Context, actor *models.Actor) ([]models.JobApplication, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.jobs.ListApplicationsByUser(ctx, actor.ID)
}

// Review moves an application through its lifecycle; only the owning company
func (s *JobService) Review(ctx context.Context, actor *models.Actor, applicationID int64, req *dto.ReviewApplicationRequest) error {
	application, err := s.jobs.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if _, err := s.ownJob(ctx, actor, application.JobID); err != nil {
		return err
	}
	if application.Status == models.ApplicationWithdrawn {
		return apperrors.ErrApplicationNotFound
	}
	return s.jobs.UpdateApplicationStatus(ctx, applicationID, req.Status, req.Feedback)
}

func (s *JobService) ownJob(ctx context.Context, actor *models.Actor, jobID int64) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.Kind != models.KindCompany || job.CompanyID != actor.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return job, nil
}
