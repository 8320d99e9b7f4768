package models

import "time"

// Post is a Connect feed entry.
type Post struct {
	ID             int64             `json:"id" db:"id"`
	Content        string            `json:"content" db:"content"`
	PostType       PostType          `json:"postType" db:"post_type"`
	AuthorID       int64             `json:"authorId" db:"author_id"`
	AuthorUsername string            `json:"authorUsername" db:"author_username"`
	Likes          int               `json:"likes" db:"likes"`
	CommentsCount  int               `json:"commentsCount" db:"comments_count"`
	Metadata       map[string]string `json:"metadata" db:"metadata"`
	Tags           []string          `json:"tags" db:"tags"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

// Comment is a reply to a Connect post.
type Comment struct {
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	Content        string    `json:"content" db:"content"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	AuthorUsername string    `json:"authorUsername" db:"author_username"`
	Likes          int       `json:"likes" db:"likes"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Like is one user's like of a post, at most one per (user, post).
type Like struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PortfolioSubmission is a weekly showcase entry, keyed by ISO week.
type PortfolioSubmission struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	AuthorUsername string    `json:"authorUsername" db:"author_username"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	ProjectURL     string    `json:"projectUrl" db:"project_url"`
	Technologies   []string  `json:"technologies" db:"technologies"`
	Upvotes        int       `json:"upvotes" db:"upvotes"`
	Downvotes      int       `json:"downvotes" db:"downvotes"`
	WeekYear       string    `json:"weekYear" db:"week_year"` // e.g. "2025-W35"
	IsFeatured     bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
