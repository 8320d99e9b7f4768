package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/dberrors"
)

const postColumns = `id, content, post_type, author_id, author_username, likes,
	comments_count, metadata, tags, created_at, updated_at`

// PostRepository handles database operations for the Connect feed
type PostRepository struct {
	db *db.PostgresDB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(database *db.PostgresDB) *PostRepository {
	return &PostRepository{db: database}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Content, &p.PostType, &p.AuthorID, &p.AuthorUsername,
		&p.Likes, &p.CommentsCount, &p.Metadata, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}
	return &p, nil
}

// Create inserts a new feed post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (content, post_type, author_id, author_username, metadata, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		post.Content, post.PostType, post.AuthorID, post.AuthorUsername,
		post.Metadata, post.Tags,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by primary key
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = $1", postColumns)
	return scanPost(r.db.Pool.QueryRow(ctx, query, id))
}

// List retrieves a page of posts, newest first. When authorIDs is non-empty
// the feed is restricted to those authors.
func (r *PostRepository) List(ctx context.Context, authorIDs []int64, offset uint64, limit int) ([]models.Post, int64, error) {
	var rows pgx.Rows
	var err error
	if len(authorIDs) > 0 {
		query := fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count FROM posts
			WHERE author_id = ANY($1)
			ORDER BY created_at DESC
			OFFSET $2 LIMIT $3`, postColumns)
		rows, err = r.db.Pool.Query(ctx, query, authorIDs, offset, limit)
	} else {
		query := fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count FROM posts
			ORDER BY created_at DESC
			OFFSET $1 LIMIT $2`, postColumns)
		rows, err = r.db.Pool.Query(ctx, query, offset, limit)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	var total int64
	for rows.Next() {
		var p models.Post
		err := rows.Scan(
			&p.ID, &p.Content, &p.PostType, &p.AuthorID, &p.AuthorUsername,
			&p.Likes, &p.CommentsCount, &p.Metadata, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, nil
}

// Delete removes a post; comments and likes cascade at the schema level
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// CreateComment inserts a comment and bumps the post's counter in the same
// transaction
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO comments (post_id, content, author_id, author_username)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			comment.PostID, comment.Content, comment.AuthorID, comment.AuthorUsername,
		).Scan(&comment.ID, &comment.CreatedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("error creating comment: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`,
			comment.PostID)
		if err != nil {
			return fmt.Errorf("error updating comment count: %w", err)
		}
		return nil
	})
}

// ListComments retrieves a post's comments, oldest first
func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, post_id, content, author_id, author_username, likes, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.AuthorID, &c.AuthorUsername,
			&c.Likes, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// ToggleLike likes an unliked post or removes an existing like. Returns the
// new liked state, the resulting like count, and the post author for the
// point award.
func (r *PostRepository) ToggleLike(ctx context.Context, userID, postID int64) (liked bool, likes int, authorID int64, err error) {
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT author_id FROM posts WHERE id = $1 FOR UPDATE`, postID,
		).Scan(&authorID); err != nil {
			if dberrors.IsNotFoundError(err) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("error locking post: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
		if err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}

		if tag.RowsAffected() > 0 {
			liked = false
			err = tx.QueryRow(ctx, `
				UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE id = $1
				RETURNING likes`, postID).Scan(&likes)
		} else {
			liked = true
			if _, err = tx.Exec(ctx,
				`INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`, userID, postID); err != nil {
				return fmt.Errorf("error inserting like: %w", err)
			}
			err = tx.QueryRow(ctx, `
				UPDATE posts SET likes = likes + 1 WHERE id = $1
				RETURNING likes`, postID).Scan(&likes)
		}
		if err != nil {
			return fmt.Errorf("error updating like count: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, 0, err
	}
	return liked, likes, authorID, nil
}
