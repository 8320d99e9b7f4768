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

const answerColumns = `id, question_id, content, code, author_id, author_username,
	upvotes, downvotes, is_validated, is_accepted, validated_by, validated_at, created_at`

// AnswerRepository handles database operations for answers. Validation and
// acceptance are conditional transactional updates so double moderation and
// concurrent accepts cannot slip through.
type AnswerRepository struct {
	db *db.PostgresDB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(database *db.PostgresDB) *AnswerRepository {
	return &AnswerRepository{db: database}
}

func scanAnswer(row pgx.Row) (*models.Answer, error) {
	var a models.Answer
	err := row.Scan(
		&a.ID, &a.QuestionID, &a.Content, &a.Code, &a.AuthorID, &a.AuthorUsername,
		&a.Upvotes, &a.Downvotes, &a.IsValidated, &a.IsAccepted,
		&a.ValidatedBy, &a.ValidatedAt, &a.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error scanning answer: %w", err)
	}
	return &a, nil
}

// Create inserts a new answer and bumps the question's answer counter in the
// same transaction
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO answers (question_id, content, code, author_id, author_username)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`

		err := tx.QueryRow(ctx, query,
			answer.QuestionID, answer.Content, answer.Code,
			answer.AuthorID, answer.AuthorUsername,
		).Scan(&answer.ID, &answer.CreatedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrQuestionNotFound
			}
			return fmt.Errorf("error creating answer: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE questions SET answers_count = answers_count + 1 WHERE id = $1`,
			answer.QuestionID)
		if err != nil {
			return fmt.Errorf("error updating answer count: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrQuestionNotFound
		}
		return nil
	})
}

// GetByID retrieves an answer by primary key
func (r *AnswerRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	query := fmt.Sprintf("SELECT %s FROM answers WHERE id = $1", answerColumns)
	return scanAnswer(r.db.Pool.QueryRow(ctx, query, id))
}

// ListByQuestion retrieves all answers for a question, validated and accepted
// answers first
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM answers
		WHERE question_id = $1
		ORDER BY is_accepted DESC, is_validated DESC, upvotes - downvotes DESC, created_at ASC`,
		answerColumns)

	rows, err := r.db.Pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		err := rows.Scan(
			&a.ID, &a.QuestionID, &a.Content, &a.Code, &a.AuthorID, &a.AuthorUsername,
			&a.Upvotes, &a.Downvotes, &a.IsValidated, &a.IsAccepted,
			&a.ValidatedBy, &a.ValidatedAt, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// ListPending retrieves answers awaiting moderation, oldest first
func (r *AnswerRepository) ListPending(ctx context.Context, offset uint64, limit int) ([]models.Answer, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count FROM answers
		WHERE NOT is_validated
		ORDER BY created_at ASC
		OFFSET $1 LIMIT $2`, answerColumns)

	rows, err := r.db.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	var total int64
	for rows.Next() {
		var a models.Answer
		err := rows.Scan(
			&a.ID, &a.QuestionID, &a.Content, &a.Code, &a.AuthorID, &a.AuthorUsername,
			&a.Upvotes, &a.Downvotes, &a.IsValidated, &a.IsAccepted,
			&a.ValidatedBy, &a.ValidatedAt, &a.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, total, nil
}

// MarkValidated stamps an answer validated by a moderator and pays the
// author's award in the same transaction. Validating an already validated
// answer fails rather than double awarding.
func (r *AnswerRepository) MarkValidated(ctx context.Context, answerID, moderatorID int64, pcAward, pconAward int) (*models.Answer, error) {
	var validated *models.Answer
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE answers
			SET is_validated = TRUE, validated_by = $1, validated_at = NOW()
			WHERE id = $2 AND NOT is_validated
			RETURNING %s`, answerColumns)

		answer, err := scanAnswer(tx.QueryRow(ctx, query, moderatorID, answerID))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrAnswerNotFound) {
				// Row exists but is already validated, or does not exist at all.
				var exists bool
				if scanErr := tx.QueryRow(ctx,
					`SELECT TRUE FROM answers WHERE id = $1`, answerID,
				).Scan(&exists); scanErr == nil {
					return apperrors.ErrAlreadyValidated
				}
				return apperrors.ErrAnswerNotFound
			}
			return err
		}

		if pcAward != 0 || pconAward != 0 {
			if _, err := adjustPointsTx(ctx, tx, answer.AuthorID, pcAward, pconAward); err != nil {
				return err
			}
		}
		validated = answer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// MarkAccepted flags a validated answer as the question's accepted answer,
// clearing any previously accepted answer of the same question and paying the
// author's award, all in one transaction. The partial unique index on
// (question_id) WHERE is_accepted guards the concurrent race.
func (r *AnswerRepository) MarkAccepted(ctx context.Context, answerID int64, pcAward, pconAward int) (*models.Answer, error) {
	var accepted *models.Answer
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var questionID, authorID int64
		var isValidated, isAccepted bool
		err := tx.QueryRow(ctx, `
			SELECT question_id, author_id, is_validated, is_accepted
			FROM answers WHERE id = $1 FOR UPDATE`,
			answerID,
		).Scan(&questionID, &authorID, &isValidated, &isAccepted)
		if err != nil {
			if dberrors.IsNotFoundError(err) {
				return apperrors.ErrAnswerNotFound
			}
			return fmt.Errorf("error locking answer: %w", err)
		}
		if !isValidated {
			return apperrors.ErrNotValidated
		}
		if isAccepted {
			return apperrors.NewConflictError("answer already accepted")
		}

		_, err = tx.Exec(ctx, `
			UPDATE answers SET is_accepted = FALSE
			WHERE question_id = $1 AND is_accepted`,
			questionID)
		if err != nil {
			return fmt.Errorf("error clearing previous acceptance: %w", err)
		}

		query := fmt.Sprintf(`
			UPDATE answers SET is_accepted = TRUE WHERE id = $1
			RETURNING %s`, answerColumns)
		answer, err := scanAnswer(tx.QueryRow(ctx, query, answerID))
		if err != nil {
			return err
		}

		if pcAward != 0 || pconAward != 0 {
			if _, err := adjustPointsTx(ctx, tx, authorID, pcAward, pconAward); err != nil {
				return err
			}
		}
		accepted = answer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// Delete removes an answer and decrements the question's counter
func (r *AnswerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var questionID int64
		err := tx.QueryRow(ctx,
			`DELETE FROM answers WHERE id = $1 RETURNING question_id`, id,
		).Scan(&questionID)
		if err != nil {
			if dberrors.IsNotFoundError(err) {
				return apperrors.ErrAnswerNotFound
			}
			return fmt.Errorf("error deleting answer: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE questions SET answers_count = GREATEST(answers_count - 1, 0)
			WHERE id = $1`, questionID)
		if err != nil {
			return fmt.Errorf("error updating answer count: %w", err)
		}
		return nil
	})
}
