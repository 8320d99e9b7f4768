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

const questionColumns = `id, title, content, code, tags, author_id, author_username,
	upvotes, downvotes, views, answers_count, is_featured, created_at, updated_at`

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	Tag      string
	AuthorID int64
	Search   string
	// Sort is one of "newest", "votes", "views", "unanswered".
	Sort string
}

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *db.PostgresDB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(database *db.PostgresDB) *QuestionRepository {
	return &QuestionRepository{db: database}
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.Title, &q.Content, &q.Code, &q.Tags, &q.AuthorID, &q.AuthorUsername,
		&q.Upvotes, &q.Downvotes, &q.Views, &q.AnswersCount, &q.IsFeatured,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error scanning question: %w", err)
	}
	return &q, nil
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (title, content, code, tags, author_id, author_username)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query,
		question.Title, question.Content, question.Code, question.Tags,
		question.AuthorID, question.AuthorUsername,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}
	return nil
}

// GetByID retrieves a question by primary key
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := fmt.Sprintf("SELECT %s FROM questions WHERE id = $1", questionColumns)
	return scanQuestion(r.db.Pool.QueryRow(ctx, query, id))
}

// List retrieves a filtered page of questions with the total count
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter, offset uint64, limit int) ([]models.Question, int64, error) {
	builder := squirrel.Select(
		"id", "title", "content", "code", "tags", "author_id", "author_username",
		"upvotes", "downvotes", "views", "answers_count", "is_featured",
		"created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("questions").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Tag != "" {
		builder = builder.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.AuthorID > 0 {
		builder = builder.Where(squirrel.Eq{"author_id": filter.AuthorID})
	}
	if filter.Search != "" {
		builder = builder.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	switch filter.Sort {
	case "votes":
		builder = builder.OrderBy("upvotes - downvotes DESC", "created_at DESC")
	case "views":
		builder = builder.OrderBy("views DESC", "created_at DESC")
	case "unanswered":
		builder = builder.Where(squirrel.Eq{"answers_count": 0}).OrderBy("created_at DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
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

	var questions []models.Question
	var total int64
	for rows.Next() {
		var q models.Question
		err := rows.Scan(
			&q.ID, &q.Title, &q.Content, &q.Code, &q.Tags, &q.AuthorID, &q.AuthorUsername,
			&q.Upvotes, &q.Downvotes, &q.Views, &q.AnswersCount, &q.IsFeatured,
			&q.CreatedAt, &q.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, total, nil
}

// Update edits the mutable fields of a question
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := `
		UPDATE questions
		SET title = $1, content = $2, code = $3, tags = $4, updated_at = NOW()
		WHERE id = $5`

	tag, err := r.db.Pool.Exec(ctx, query,
		question.Title, question.Content, question.Code, question.Tags, question.ID)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// Delete removes a question; answers and votes cascade at the schema level
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// IncrementViews bumps the view counter
func (r *QuestionRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE questions SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}

// SetFeatured toggles the featured flag
func (r *QuestionRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE questions SET is_featured = $1 WHERE id = $2`, featured, id)
	if err != nil {
		return fmt.Errorf("error setting featured: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}
