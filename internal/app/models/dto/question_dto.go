package dto

import "github.com/acodelab/backend/internal/app/models"

// CreateQuestionRequest represents a new question submission
type CreateQuestionRequest struct {
	Title   string   `json:"title" binding:"required,min=10,max=200"`
	Content string   `json:"content" binding:"required,min=20"`
	Code    string   `json:"code"`
	Tags    []string `json:"tags" binding:"max=5"`
}

// UpdateQuestionRequest represents an edit to an existing question
type UpdateQuestionRequest struct {
	Title   *string  `json:"title" binding:"omitempty,min=10,max=200"`
	Content *string  `json:"content" binding:"omitempty,min=20"`
	Code    *string  `json:"code"`
	Tags    []string `json:"tags" binding:"omitempty,max=5"`
}

// CreateAnswerRequest represents a new answer submission
type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required,min=20"`
	Code    string `json:"code"`
}

// QuestionListResponse represents a page of questions
type QuestionListResponse struct {
	Questions  []models.Question `json:"questions"`
	Pagination PaginationInfo    `json:"pagination"`
}

// QuestionDetailResponse bundles a question with its answers
type QuestionDetailResponse struct {
	Question models.Question `json:"question"`
	Answers  []models.Answer `json:"answers"`
}
