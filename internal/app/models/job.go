package models

import "time"

// Job defines the job posting model based on the 'jobs' table
type Job struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	CompanyID       int64      `json:"companyId" db:"company_id"`
	CompanyName     string     `json:"companyName" db:"company_name"`
	Location        string     `json:"location" db:"location"`
	JobType         string     `json:"jobType" db:"job_type"` // full_time, part_time, contract, internship, freelance
	ExperienceLevel string     `json:"experienceLevel" db:"experience_level"`
	SalaryMin       *int       `json:"salaryMin,omitempty" db:"salary_min"`
	SalaryMax       *int       `json:"salaryMax,omitempty" db:"salary_max"`
	Requirements    []string   `json:"requirements" db:"requirements"`
	Skills          []string   `json:"skills" db:"skills"`
	Remote          bool       `json:"remote" db:"remote"`
	IsActive        bool       `json:"isActive" db:"is_active"`
	Deadline        *time.Time `json:"deadline,omitempty" db:"deadline"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// JobApplication defines a user's application to a job. At most one
// non-withdrawn application may exist per (user, job).
type JobApplication struct {
	ID             int64             `json:"id" db:"id"`
	JobID          int64             `json:"jobId" db:"job_id"`
	UserID         int64             `json:"userId" db:"user_id"`
	CoverLetter    string            `json:"coverLetter" db:"cover_letter"`
	ResumeURL      string            `json:"resumeUrl" db:"resume_url"`
	ExpectedSalary *int              `json:"expectedSalary,omitempty" db:"expected_salary"`
	Status         ApplicationStatus `json:"status" db:"status"`
	Feedback       string            `json:"feedback" db:"feedback"`
	AppliedAt      time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}
