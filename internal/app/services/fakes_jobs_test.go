package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeJobStore keeps postings and applications in memory, mirroring the
// one-live-application rule the partial unique index enforces.
type fakeJobStore struct {
	jobs         map[int64]*models.Job
	applications map[int64]*models.JobApplication
	nextID       int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		jobs:         make(map[int64]*models.Job),
		applications: make(map[int64]*models.JobApplication),
	}
}

func (f *fakeJobStore) Create(_ context.Context, job *models.Job) error {
	f.nextID++
	job.ID = f.nextID
	job.IsActive = true
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeJobStore) GetByID(_ context.Context, id int64) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobStore) List(_ context.Context, filter repositories.JobFilter, offset uint64, limit int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, job := range f.jobs {
		if !filter.IncludeInactive && !job.IsActive {
			continue
		}
		if filter.CompanyID != 0 && job.CompanyID != filter.CompanyID {
			continue
		}
		if filter.JobType != "" && job.JobType != filter.JobType {
			continue
		}
		if filter.Remote != nil && job.Remote != *filter.Remote {
			continue
		}
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.Job{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeJobStore) Update(_ context.Context, job *models.Job) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return apperrors.ErrJobNotFound
	}
	job.UpdatedAt = time.Now()
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeJobStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return apperrors.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) CreateApplication(_ context.Context, application *models.JobApplication) error {
	if _, ok := f.jobs[application.JobID]; !ok {
		return apperrors.ErrJobNotFound
	}
	for _, existing := range f.applications {
		if existing.JobID == application.JobID && existing.UserID == application.UserID &&
			existing.Status != models.ApplicationWithdrawn {
			return apperrors.ErrAlreadyApplied
		}
	}
	f.nextID++
	application.ID = f.nextID
	application.AppliedAt = time.Now()
	application.UpdatedAt = application.AppliedAt
	stored := *application
	f.applications[application.ID] = &stored
	return nil
}

func (f *fakeJobStore) GetApplication(_ context.Context, id int64) (*models.JobApplication, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (f *fakeJobStore) ListApplicationsByJob(_ context.Context, jobID int64) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, application := range f.applications {
		if application.JobID == jobID {
			out = append(out, *application)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeJobStore) ListApplicationsByUser(_ context.Context, userID int64) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, application := range f.applications {
		if application.UserID == userID {
			out = append(out, *application)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeJobStore) UpdateApplicationStatus(_ context.Context, id int64, status models.ApplicationStatus, feedback string) error {
	application, ok := f.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	application.Status = status
	application.Feedback = feedback
	application.UpdatedAt = time.Now()
	return nil
}
