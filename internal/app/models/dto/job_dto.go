package dto

import (
	"time"

	"github.com/acodelab/backend/internal/app/models"
)

// CreateJobRequest represents a new job posting by a company
type CreateJobRequest struct {
	Title           string     `json:"title" binding:"required,min=5,max=200"`
	Description     string     `json:"description" binding:"required,min=50"`
	Location        string     `json:"location" binding:"required"`
	JobType         string     `json:"jobType" binding:"required,oneof=full_time part_time contract internship freelance"`
	ExperienceLevel string     `json:"experienceLevel" binding:"required,oneof=junior mid senior lead"`
	SalaryMin       *int       `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax       *int       `json:"salaryMax" binding:"omitempty,min=0"`
	Requirements    []string   `json:"requirements"`
	Skills          []string   `json:"skills"`
	Remote          bool       `json:"remote"`
	Deadline        *time.Time `json:"deadline"`
}

// UpdateJobRequest represents an edit to a job posting
type UpdateJobRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=5,max=200"`
	Description     *string    `json:"description" binding:"omitempty,min=50"`
	Location        *string    `json:"location"`
	JobType         *string    `json:"jobType" binding:"omitempty,oneof=full_time part_time contract internship freelance"`
	ExperienceLevel *string    `json:"experienceLevel" binding:"omitempty,oneof=junior mid senior lead"`
	SalaryMin       *int       `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax       *int       `json:"salaryMax" binding:"omitempty,min=0"`
	Requirements    []string   `json:"requirements"`
	Skills          []string   `json:"skills"`
	Remote          *bool      `json:"remote"`
	IsActive        *bool      `json:"isActive"`
	Deadline        *time.Time `json:"deadline"`
}

// ApplyJobRequest represents a user's application to a job
type ApplyJobRequest struct {
	CoverLetter    string `json:"coverLetter" binding:"required,min=50"`
	ResumeURL      string `json:"resumeUrl" binding:"omitempty,url"`
	ExpectedSalary *int   `json:"expectedSalary" binding:"omitempty,min=0"`
}

// ReviewApplicationRequest updates an application's status with feedback
type ReviewApplicationRequest struct {
	Status   models.ApplicationStatus `json:"status" binding:"required,oneof=reviewing accepted rejected"`
	Feedback string                   `json:"feedback"`
}

// JobListResponse represents a page of job postings
type JobListResponse struct {
	Jobs       []models.Job   `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}
