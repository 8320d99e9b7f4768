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

const portfolioColumns = `id, user_id, author_username, title, description, project_url,
	technologies, upvotes, downvotes, week_year, is_featured, created_at`

// PortfolioRepository handles database operations for weekly showcase
// submissions
type PortfolioRepository struct {
	db *db.PostgresDB
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(database *db.PostgresDB) *PortfolioRepository {
	return &PortfolioRepository{db: database}
}

func scanPortfolio(row pgx.Row) (*models.PortfolioSubmission, error) {
	var s models.PortfolioSubmission
	err := row.Scan(
		&s.ID, &s.UserID, &s.AuthorUsername, &s.Title, &s.Description, &s.ProjectURL,
		&s.Technologies, &s.Upvotes, &s.Downvotes, &s.WeekYear, &s.IsFeatured, &s.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("error scanning portfolio submission: %w", err)
	}
	return &s, nil
}

// Create inserts a submission for the given week. A unique constraint on
// (user_id, week_year) limits each user to one entry per week.
func (r *PortfolioRepository) Create(ctx context.Context, submission *models.PortfolioSubmission) error {
	query := `
		INSERT INTO portfolio_submissions (user_id, author_username, title, description,
			project_url, technologies, week_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.Pool.QueryRow(ctx, query,
		submission.UserID, submission.AuthorUsername, submission.Title,
		submission.Description, submission.ProjectURL, submission.Technologies,
		submission.WeekYear,
	).Scan(&submission.ID, &submission.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err) {
			return apperrors.NewConflictError("already submitted a project this week")
		}
		return fmt.Errorf("error creating portfolio submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission by primary key
func (r *PortfolioRepository) GetByID(ctx context.Context, id int64) (*models.PortfolioSubmission, error) {
	query := fmt.Sprintf("SELECT %s FROM portfolio_submissions WHERE id = $1", portfolioColumns)
	return scanPortfolio(r.db.Pool.QueryRow(ctx, query, id))
}

// ListByWeek retrieves all submissions for a showcase week ordered by score
func (r *PortfolioRepository) ListByWeek(ctx context.Context, weekYear string) ([]models.PortfolioSubmission, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM portfolio_submissions
		WHERE week_year = $1
		ORDER BY upvotes - downvotes DESC, created_at ASC`, portfolioColumns)

	rows, err := r.db.Pool.Query(ctx, query, weekYear)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var submissions []models.PortfolioSubmission
	for rows.Next() {
		var s models.PortfolioSubmission
		err := rows.Scan(
			&s.ID, &s.UserID, &s.AuthorUsername, &s.Title, &s.Description, &s.ProjectURL,
			&s.Technologies, &s.Upvotes, &s.Downvotes, &s.WeekYear, &s.IsFeatured, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, nil
}

// SetFeatured marks the week's winning submission
func (r *PortfolioRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE portfolio_submissions SET is_featured = $1 WHERE id = $2`, featured, id)
	if err != nil {
		return fmt.Errorf("error setting featured: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

// Delete removes a submission
func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM portfolio_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting portfolio submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}
