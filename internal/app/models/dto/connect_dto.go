package dto

import "github.com/acodelab/backend/internal/app/models"

// CreatePostRequest represents a new Connect feed post
type CreatePostRequest struct {
	Content  string            `json:"content" binding:"required,min=1,max=2000"`
	PostType models.PostType   `json:"postType" binding:"required,oneof=text project achievement"`
	Metadata map[string]string `json:"metadata"`
	Tags     []string          `json:"tags" binding:"max=5"`
}

// CreateCommentRequest represents a reply to a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// PostListResponse represents a page of feed posts
type PostListResponse struct {
	Posts      []models.Post  `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// PostDetailResponse bundles a post with its comments
type PostDetailResponse struct {
	Post     models.Post      `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	PostID int64 `json:"postId"`
	Liked  bool  `json:"liked"`
	Likes  int   `json:"likes"`
}

// SubmitPortfolioRequest enters a project into the current weekly showcase
type SubmitPortfolioRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=100"`
	Description  string   `json:"description" binding:"required,min=20,max=1000"`
	ProjectURL   string   `json:"projectUrl" binding:"required,url"`
	Technologies []string `json:"technologies" binding:"max=10"`
}

// PortfolioListResponse lists submissions for one showcase week
type PortfolioListResponse struct {
	WeekYear    string                       `json:"weekYear"`
	Submissions []models.PortfolioSubmission `json:"submissions"`
}

// FollowResponse reports the follow state after a toggle
type FollowResponse struct {
	FolloweeID int64 `json:"followeeId"`
	Following  bool  `json:"following"`
}
