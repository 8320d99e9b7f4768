package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/dberrors"
)

const jobColumns = `id, title, description, company_id, company_name, location, job_type,
	experience_level, salary_min, salary_max, requirements, skills, remote, is_active,
	deadline, created_at, updated_at`

const applicationColumns = `id, job_id, user_id, cover_letter, resume_url, expected_salary,
	status, feedback, applied_at, updated_at`

// JobFilter narrows job listings.
type JobFilter struct {
	CompanyID   int64
	JobType     string
	Experience  string
	Remote      *bool
	Search      string
	IncludeInactive bool
}

// JobRepository handles database operations for job postings and applications
type JobRepository struct {
	db *db.PostgresDB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(database *db.PostgresDB) *JobRepository {
	return &JobRepository{db: database}
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.CompanyID, &j.CompanyName, &j.Location,
		&j.JobType, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax,
		&j.Requirements, &j.Skills, &j.Remote, &j.IsActive, &j.Deadline,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error scanning job: %w", err)
	}
	return &j, nil
}

func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	var a models.JobApplication
	err := row.Scan(
		&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.ExpectedSalary,
		&a.Status, &a.Feedback, &a.AppliedAt, &a.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error scanning application: %w", err)
	}
	return &a, nil
}

// Create inserts a new job posting
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (title, description, company_id, company_name, location, job_type,
			experience_level, salary_min, salary_max, requirements, skills, remote, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		job.Title, job.Description, job.CompanyID, job.CompanyName, job.Location,
		job.JobType, job.ExperienceLevel, job.SalaryMin, job.SalaryMax,
		job.Requirements, job.Skills, job.Remote, job.Deadline,
	).Scan(&job.ID, &job.IsActive, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by primary key
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns)
	return scanJob(r.db.Pool.QueryRow(ctx, query, id))
}

// List retrieves a filtered page of jobs with the total count
func (r *JobRepository) List(ctx context.Context, filter JobFilter, offset uint64, limit int) ([]models.Job, int64, error) {
	builder := squirrel.Select(
		"id", "title", "description", "company_id", "company_name", "location", "job_type",
		"experience_level", "salary_min", "salary_max", "requirements", "skills", "remote",
		"is_active", "deadline", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("jobs").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.CompanyID > 0 {
		builder = builder.Where(squirrel.Eq{"company_id": filter.CompanyID})
	}
	if filter.JobType != "" {
		builder = builder.Where(squirrel.Eq{"job_type": filter.JobType})
	}
	if filter.Experience != "" {
		builder = builder.Where(squirrel.Eq{"experience_level": filter.Experience})
	}
	if filter.Remote != nil {
		builder = builder.Where(squirrel.Eq{"remote": *filter.Remote})
	}
	if filter.Search != "" {
		builder = builder.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	var total int64
	for rows.Next() {
		var j models.Job
		err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.CompanyID, &j.CompanyName, &j.Location,
			&j.JobType, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax,
			&j.Requirements, &j.Skills, &j.Remote, &j.IsActive, &j.Deadline,
			&j.CreatedAt, &j.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, total, nil
}

// Update edits a job posting
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $1, description = $2, location = $3, job_type = $4, experience_level = $5,
		    salary_min = $6, salary_max = $7, requirements = $8, skills = $9, remote = $10,
		    is_active = $11, deadline = $12, updated_at = NOW()
		WHERE id = $13`

	tag, err := r.db.Pool.Exec(ctx, query,
		job.Title, job.Description, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Requirements, job.Skills, job.Remote,
		job.IsActive, job.Deadline, job.ID)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a job posting; applications cascade at the schema level
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// CreateApplication files a new application. A partial unique index on
// (job_id, user_id) WHERE status <> 'withdrawn' rejects duplicate live
// applications.
func (r *JobRepository) CreateApplication(ctx context.Context, application *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (job_id, user_id, cover_letter, resume_url, expected_salary, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applied_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		application.JobID, application.UserID, application.CoverLetter,
		application.ResumeURL, application.ExpectedSalary, application.Status,
	).Scan(&application.ID, &application.AppliedAt, &application.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetApplication retrieves a single application
func (r *JobRepository) GetApplication(ctx context.Context, id int64) (*models.JobApplication, error) {
	query := fmt.Sprintf("SELECT %s FROM job_applications WHERE id = $1", applicationColumns)
	return scanApplication(r.db.Pool.QueryRow(ctx, query, id))
}

// ListApplicationsByJob retrieves all applications for one job
func (r *JobRepository) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_applications WHERE job_id = $1 ORDER BY applied_at ASC`,
		applicationColumns)
	return r.queryApplications(ctx, query, jobID)
}

// ListApplicationsByUser retrieves all of a user's applications
func (r *JobRepository) ListApplicationsByUser(ctx context.Context, userID int64) ([]models.JobApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_applications WHERE user_id = $1 ORDER BY applied_at DESC`,
		applicationColumns)
	return r.queryApplications(ctx, query, userID)
}

func (r *JobRepository) queryApplications(ctx context.Context, query string, arg interface{}) ([]models.JobApplication, error) {
	rows, err := r.db.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var applications []models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.ExpectedSalary,
			&a.Status, &a.Feedback, &a.AppliedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, nil
}

// UpdateApplicationStatus moves an application through its lifecycle
func (r *JobRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, feedback string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE job_applications SET status = $1, feedback = $2, updated_at = NOW()
		WHERE id = $3`, status, feedback, id)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
