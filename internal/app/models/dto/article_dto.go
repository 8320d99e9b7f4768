package dto

import "github.com/acodelab/backend/internal/app/models"

// CreateArticleRequest represents a new article draft or publication
type CreateArticleRequest struct {
	Title    string   `json:"title" binding:"required,min=10,max=200"`
	Content  string   `json:"content" binding:"required,min=100"`
	Summary  string   `json:"summary" binding:"max=500"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags" binding:"max=5"`
	Publish  bool     `json:"publish"`
}

// UpdateArticleRequest represents an edit to an existing article
type UpdateArticleRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=10,max=200"`
	Content  *string  `json:"content" binding:"omitempty,min=100"`
	Summary  *string  `json:"summary" binding:"omitempty,max=500"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags" binding:"omitempty,max=5"`
}

// ArticleListResponse represents a page of articles
type ArticleListResponse struct {
	Articles   []models.Article `json:"articles"`
	Pagination PaginationInfo   `json:"pagination"`
}
