package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/db"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/dberrors"
)

const articleColumns = `id, title, content, summary, category, tags, author_id, author_username,
	is_published, publish_awarded, upvotes, downvotes, views, published_at, created_at, updated_at`

// ArticleFilter narrows article listings.
type ArticleFilter struct {
	Category string
	Tag      string
	AuthorID int64
	// IncludeDrafts includes unpublished articles; only ever set for the
	// author's own listing or an admin view.
	IncludeDrafts bool
}

// ArticleRepository handles database operations for articles
type ArticleRepository struct {
	db *db.PostgresDB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(database *db.PostgresDB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Summary, &a.Category, &a.Tags,
		&a.AuthorID, &a.AuthorUsername, &a.IsPublished, &a.PublishAwarded,
		&a.Upvotes, &a.Downvotes, &a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error scanning article: %w", err)
	}
	return &a, nil
}

// Create inserts a new article, published or draft
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, content, summary, category, tags, author_id, author_username,
			is_published, publish_awarded, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			CASE WHEN $8 THEN NOW() ELSE NULL END)
		RETURNING id, published_at, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		article.Title, article.Content, article.Summary, article.Category, article.Tags,
		article.AuthorID, article.AuthorUsername, article.IsPublished, article.PublishAwarded,
	).Scan(&article.ID, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating article: %w", err)
	}
	return nil
}

// GetByID retrieves an article by primary key
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = $1", articleColumns)
	return scanArticle(r.db.Pool.QueryRow(ctx, query, id))
}

// List retrieves a filtered page of articles with the total count
func (r *ArticleRepository) List(ctx context.Context, filter ArticleFilter, offset uint64, limit int) ([]models.Article, int64, error) {
	builder := squirrel.Select(
		"id", "title", "content", "summary", "category", "tags", "author_id", "author_username",
		"is_published", "publish_awarded", "upvotes", "downvotes", "views",
		"published_at", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("articles").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if !filter.IncludeDrafts {
		builder = builder.Where(squirrel.Eq{"is_published": true})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Tag != "" {
		builder = builder.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.AuthorID > 0 {
		builder = builder.Where(squirrel.Eq{"author_id": filter.AuthorID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	var total int64
	for rows.Next() {
		var a models.Article
		err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.Summary, &a.Category, &a.Tags,
			&a.AuthorID, &a.AuthorUsername, &a.IsPublished, &a.PublishAwarded,
			&a.Upvotes, &a.Downvotes, &a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, total, nil
}

// Update edits the mutable fields of an article
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $1, content = $2, summary = $3, category = $4, tags = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := r.db.Pool.Exec(ctx, query,
		article.Title, article.Content, article.Summary, article.Category, article.Tags,
		article.ID)
	if err != nil {
		return fmt.Errorf("error updating article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

// MarkPublished flips a draft to published. Returns whether this is the
// first publication, which decides the one-time point award.
func (r *ArticleRepository) MarkPublished(ctx context.Context, id int64) (*models.Article, bool, error) {
	query := fmt.Sprintf(`
		WITH before AS (
			SELECT publish_awarded FROM articles WHERE id = $1
		)
		UPDATE articles
		SET is_published = TRUE,
		    published_at = COALESCE(published_at, NOW()),
		    publish_awarded = TRUE,
		    updated_at = NOW()
		WHERE id = $1 AND NOT is_published
		RETURNING %s, (SELECT NOT publish_awarded FROM before) AS first_publish`,
		articleColumns)

	var a models.Article
	var firstPublish bool
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.Summary, &a.Category, &a.Tags,
		&a.AuthorID, &a.AuthorUsername, &a.IsPublished, &a.PublishAwarded,
		&a.Upvotes, &a.Downvotes, &a.Views, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		&firstPublish,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, false, apperrors.ErrArticleNotFound
		}
		return nil, false, fmt.Errorf("error publishing article: %w", err)
	}
	return &a, firstPublish, nil
}

// Unpublish returns a published article to draft state without touching the
// award flag, so republishing never pays twice
func (r *ArticleRepository) Unpublish(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE articles SET is_published = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error unpublishing article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

// Delete removes an article
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

// IncrementViews bumps the view counter
func (r *ArticleRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}
