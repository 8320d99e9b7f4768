package models

import "time"

// Article defines the article model based on the 'articles' table.
// Publishing (as opposed to drafting) is gated on the author's rank.
type Article struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Content        string     `json:"content" db:"content"`
	Summary        string     `json:"summary" db:"summary"`
	Category       string     `json:"category" db:"category"`
	Tags           []string   `json:"tags" db:"tags"`
	AuthorID       int64      `json:"authorId" db:"author_id"`
	AuthorUsername string     `json:"authorUsername" db:"author_username"`
	IsPublished    bool       `json:"isPublished" db:"is_published"`
	PublishAwarded bool       `json:"-" db:"publish_awarded"`
	Upvotes        int        `json:"upvotes" db:"upvotes"`
	Downvotes      int        `json:"downvotes" db:"downvotes"`
	Views          int        `json:"views" db:"views"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}
