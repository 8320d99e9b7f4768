package services

import (
	"context"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// ModerationAccounts is the slice of the account repository moderation needs.
type ModerationAccounts interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	BanUser(ctx context.Context, userID int64, reason string, expires *time.Time) error
	UnbanUser(ctx context.Context, userID int64) error
}

// StatsStore aggregates platform counters.
type StatsStore interface {
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
}

// ModerationService handles the admin workflow: answer validation, bans,
// featuring, and the dashboard
type ModerationService struct {
	answers    AnswerStore
	questions  QuestionStore
	accounts   ModerationAccounts
	stats      StatsStore
	reputation *ReputationService
}

// NewModerationService creates a new ModerationService
func NewModerationService(answers AnswerStore, questions QuestionStore, accounts ModerationAccounts, stats StatsStore, reputation *ReputationService) *ModerationService {
	return &ModerationService{
		answers:    answers,
		questions:  questions,
		accounts:   accounts,
		stats:      stats,
		reputation: reputation,
	}
}

func requireAdmin(actor *models.Actor) error {
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// PendingAnswers lists answers waiting for moderation
func (s *ModerationService) PendingAnswers(ctx context.Context, actor *models.Actor, offset uint64, limit int) ([]models.Answer, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.answers.ListPending(ctx, offset, limit)
}

// ValidateAnswer approves an answer. The store sets the validation flags and
// pays the author in one transaction; the conditional update makes a second
// validation fail instead of paying twice.
func (s *ModerationService) ValidateAnswer(ctx context.Context, actor *models.Actor, answerID int64) (*models.Answer, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	points := s.reputation.Points()
	answer, err := s.answers.MarkValidated(ctx, answerID, actor.ID, points.AnswerValidatedPC, points.AnswerValidatedPCon)
	if err != nil {
		return nil, err
	}

	s.reputation.GrantAchievement(ctx, answer.AuthorID, AchievementFirstValidated)

	logger.Info().
		Int64("answerID", answerID).
		Int64("moderatorID", actor.ID).
		Msg("Answer validated")
	return answer, nil
}

// RejectAnswer removes a pending answer without any award
func (s *ModerationService) RejectAnswer(ctx context.Context, actor *models.Actor, answerID int64, reason string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	answer, err := s.answers.GetByID(ctx, answerID)
	if err != nil {
		return err
	}
	if answer.IsValidated {
		return apperrors.ErrAlreadyValidated
	}

	if err := s.answers.Delete(ctx, answerID); err != nil {
		return err
	}

	logger.Info().
		Int64("answerID", answerID).
		Int64("moderatorID", actor.ID).
		Str("reason", reason).
		Msg("Answer rejected")
	return nil
}

// FeatureQuestion toggles a question's featured flag
func (s *ModerationService) FeatureQuestion(ctx context.Context, actor *models.Actor, questionID int64, featured bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.questions.SetFeatured(ctx, questionID, featured)
}

// BanUser bans a user and logs the action. Admin accounts cannot be banned.
func (s *ModerationService) BanUser(ctx context.Context, actor *models.Actor, userID int64, reason string, expires *time.Time) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	target, err := s.accounts.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.accounts.BanUser(ctx, userID, reason, expires); err != nil {
		return err
	}

	logger.Warn().
		Int64("userID", userID).
		Int64("adminID", actor.ID).
		Str("reason", reason).
		Msg("User banned")
	return nil
}

// UnbanUser lifts a ban
func (s *ModerationService) UnbanUser(ctx context.Context, actor *models.Actor, userID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.accounts.UnbanUser(ctx, userID)
}

// AdjustPoints applies a manual correction to a user's balances
func (s *ModerationService) AdjustPoints(ctx context.Context, actor *models.Actor, userID int64, req *dto.AdjustPointsRequest) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.reputation.AdjustManually(ctx, userID, req.PCDelta, req.PConDelta, req.Reason)
}

// PlatformStats returns the admin dashboard aggregates
func (s *ModerationService) PlatformStats(ctx context.Context, actor *models.Actor) (*dto.PlatformStatsResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.stats.PlatformStats(ctx)
}
