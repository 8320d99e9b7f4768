package models

import "time"

// Question defines the question model based on the 'questions' table
type Question struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content"`
	Code           string    `json:"code,omitempty" db:"code"`
	Tags           []string  `json:"tags" db:"tags"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	AuthorUsername string    `json:"authorUsername" db:"author_username"`
	Upvotes        int       `json:"upvotes" db:"upvotes"`
	Downvotes      int       `json:"downvotes" db:"downvotes"`
	Views          int       `json:"views" db:"views"`
	AnswersCount   int       `json:"answersCount" db:"answers_count"`
	IsFeatured     bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Answer defines the answer model based on the 'answers' table.
// An answer earns its author nothing until an admin validates it, and only a
// validated answer can be accepted by the question's author.
type Answer struct {
	ID             int64      `json:"id" db:"id"`
	QuestionID     int64      `json:"questionId" db:"question_id"`
	Content        string     `json:"content" db:"content"`
	Code           string     `json:"code,omitempty" db:"code"`
	AuthorID       int64      `json:"authorId" db:"author_id"`
	AuthorUsername string     `json:"authorUsername" db:"author_username"`
	Upvotes        int        `json:"upvotes" db:"upvotes"`
	Downvotes      int        `json:"downvotes" db:"downvotes"`
	IsValidated    bool       `json:"isValidated" db:"is_validated"`
	IsAccepted     bool       `json:"isAccepted" db:"is_accepted"`
	ValidatedBy    *int64     `json:"validatedBy,omitempty" db:"validated_by"`
	ValidatedAt    *time.Time `json:"validatedAt,omitempty" db:"validated_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}
