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

// voteTargetTables maps a target type to the table holding its counters.
var voteTargetTables = map[models.TargetType]string{
	models.TargetQuestion:  "questions",
	models.TargetAnswer:    "answers",
	models.TargetArticle:   "articles",
	models.TargetPortfolio: "portfolio_submissions",
}

// TargetState is the counter state of a votable row after an operation.
type TargetState struct {
	AuthorID  int64
	Upvotes   int
	Downvotes int
}

// VoteRepository handles database operations for votes. Each operation moves
// the vote row, the target's counters, and the target author's points in one
// transaction.
type VoteRepository struct {
	db *db.PostgresDB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(database *db.PostgresDB) *VoteRepository {
	return &VoteRepository{db: database}
}

// Get retrieves the caller's live vote on a target, or nil when none exists
func (r *VoteRepository) Get(ctx context.Context, userID, targetID int64, targetType models.TargetType) (*models.Vote, error) {
	var v models.Vote
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, target_id, target_type, direction, created_at
		FROM votes
		WHERE user_id = $1 AND target_id = $2 AND target_type = $3`,
		userID, targetID, targetType,
	).Scan(&v.ID, &v.UserID, &v.TargetID, &v.TargetType, &v.Direction, &v.CreatedAt)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving vote: %w", err)
	}
	return &v, nil
}

// TargetAuthor resolves the author and counters of a votable target
func (r *VoteRepository) TargetAuthor(ctx context.Context, targetID int64, targetType models.TargetType) (*TargetState, error) {
	table, ok := voteTargetTables[targetType]
	if !ok {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	authorColumn := "author_id"
	if targetType == models.TargetPortfolio {
		authorColumn = "user_id"
	}

	var state TargetState
	query := fmt.Sprintf(
		`SELECT %s, upvotes, downvotes FROM %s WHERE id = $1`, authorColumn, table)
	err := r.db.Pool.QueryRow(ctx, query, targetID).
		Scan(&state.AuthorID, &state.Upvotes, &state.Downvotes)
	if err != nil {
		if dberrors.IsNotFoundError(err) {
			return nil, targetNotFoundError(targetType)
		}
		return nil, fmt.Errorf("error resolving vote target: %w", err)
	}
	return &state, nil
}

func targetNotFoundError(targetType models.TargetType) error {
	switch targetType {
	case models.TargetQuestion:
		return apperrors.ErrQuestionNotFound
	case models.TargetAnswer:
		return apperrors.ErrAnswerNotFound
	case models.TargetArticle:
		return apperrors.ErrArticleNotFound
	case models.TargetPortfolio:
		return apperrors.ErrPortfolioNotFound
	}
	return apperrors.ErrInvalidVoteTarget
}

func counterColumn(direction models.VoteDirection) string {
	if direction == models.VoteUp {
		return "upvotes"
	}
	return "downvotes"
}

// Cast inserts a new vote, bumps the target counter, and applies the author
// point delta, all in one transaction
func (r *VoteRepository) Cast(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*TargetState, error) {
	table, ok := voteTargetTables[vote.TargetType]
	if !ok {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	var state TargetState
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO votes (user_id, target_id, target_type, direction)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			vote.UserID, vote.TargetID, vote.TargetType, vote.Direction,
		).Scan(&vote.ID, &vote.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err) {
				return apperrors.NewConflictError("vote already exists for this target")
			}
			return fmt.Errorf("error inserting vote: %w", err)
		}

		query := fmt.Sprintf(`
			UPDATE %s SET %s = %s + 1 WHERE id = $1
			RETURNING upvotes, downvotes`,
			table, counterColumn(vote.Direction), counterColumn(vote.Direction))
		if err := tx.QueryRow(ctx, query, vote.TargetID).Scan(&state.Upvotes, &state.Downvotes); err != nil {
			if dberrors.IsNotFoundError(err) {
				return targetNotFoundError(vote.TargetType)
			}
			return fmt.Errorf("error updating vote counters: %w", err)
		}

		state.AuthorID = authorID
		if authorPCDelta != 0 {
			if _, err := adjustPointsTx(ctx, tx, authorID, authorPCDelta, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Retract removes an existing vote, reverses the counter, and reverses the
// author point delta
func (r *VoteRepository) Retract(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*TargetState, error) {
	table, ok := voteTargetTables[vote.TargetType]
	if !ok {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	var state TargetState
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, vote.ID)
		if err != nil {
			return fmt.Errorf("error deleting vote: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrResourceNotFound
		}

		query := fmt.Sprintf(`
			UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE id = $1
			RETURNING upvotes, downvotes`,
			table, counterColumn(vote.Direction), counterColumn(vote.Direction))
		if err := tx.QueryRow(ctx, query, vote.TargetID).Scan(&state.Upvotes, &state.Downvotes); err != nil {
			if dberrors.IsNotFoundError(err) {
				return targetNotFoundError(vote.TargetType)
			}
			return fmt.Errorf("error updating vote counters: %w", err)
		}

		state.AuthorID = authorID
		if authorPCDelta != 0 {
			if _, err := adjustPointsTx(ctx, tx, authorID, authorPCDelta, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Switch flips an existing vote to the opposite direction, moving one count
// from the old column to the new one and applying the combined author delta
func (r *VoteRepository) Switch(ctx context.Context, vote *models.Vote, newDirection models.VoteDirection, authorID int64, authorPCDelta int) (*TargetState, error) {
	table, ok := voteTargetTables[vote.TargetType]
	if !ok {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	var state TargetState
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE votes SET direction = $1 WHERE id = $2`, newDirection, vote.ID)
		if err != nil {
			return fmt.Errorf("error switching vote: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrResourceNotFound
		}

		oldCol := counterColumn(vote.Direction)
		newCol := counterColumn(newDirection)
		query := fmt.Sprintf(`
			UPDATE %s SET %s = GREATEST(%s - 1, 0), %s = %s + 1 WHERE id = $1
			RETURNING upvotes, downvotes`,
			table, oldCol, oldCol, newCol, newCol)
		if err := tx.QueryRow(ctx, query, vote.TargetID).Scan(&state.Upvotes, &state.Downvotes); err != nil {
			if dberrors.IsNotFoundError(err) {
				return targetNotFoundError(vote.TargetType)
			}
			return fmt.Errorf("error updating vote counters: %w", err)
		}

		state.AuthorID = authorID
		if authorPCDelta != 0 {
			if _, err := adjustPointsTx(ctx, tx, authorID, authorPCDelta, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}
