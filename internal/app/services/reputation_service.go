package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/config"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// Achievement keys granted automatically by reputation events.
const (
	AchievementFirstJoin      = "first_join"
	AchievementFirstQuestion  = "first_question"
	AchievementFirstValidated = "first_validated"
	AchievementFirstArticle   = "first_article"
)

// PointsAccount is the slice of the account repository the reputation engine
// needs.
type PointsAccount interface {
	AdjustPoints(ctx context.Context, userID int64, pcDelta, pconDelta int) (*models.User, error)
	AddAchievement(ctx context.Context, userID int64, achievement string) error
}

// ReputationService applies the configured point awards for content events.
// All balance movement goes through the repository's transactional adjust, so
// the service only decides how much and for what.
type ReputationService struct {
	accounts PointsAccount
	points   config.Points
}

// NewReputationService creates a new ReputationService
func NewReputationService(accounts PointsAccount, points config.Points) *ReputationService {
	return &ReputationService{accounts: accounts, points: points}
}

// Points exposes the active award table
func (s *ReputationService) Points() config.Points {
	return s.points
}

func (s *ReputationService) award(ctx context.Context, userID int64, pcDelta, pconDelta int, event string) (*models.User, error) {
	user, err := s.accounts.AdjustPoints(ctx, userID, pcDelta, pconDelta)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int64("userID", userID).
		Int("pcDelta", pcDelta).
		Int("pconDelta", pconDelta).
		Str("event", event).
		Str("rank", string(user.Rank)).
		Msg("Points awarded")
	return user, nil
}

// AwardQuestionCreated pays the asker
func (s *ReputationService) AwardQuestionCreated(ctx context.Context, userID int64) (*models.User, error) {
	return s.award(ctx, userID, s.points.QuestionPC, s.points.QuestionPCon, "question_created")
}

// GrantAchievement records an achievement for a user. The store ignores
// duplicates; failures are logged, never surfaced, because the triggering
// event has already committed.
func (s *ReputationService) GrantAchievement(ctx context.Context, userID int64, achievement string) {
	if err := s.accounts.AddAchievement(ctx, userID, achievement); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Str("achievement", achievement).Msg("Failed to grant achievement")
	}
}

// AwardArticlePublished pays the author once per article
func (s *ReputationService) AwardArticlePublished(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.award(ctx, userID, s.points.ArticlePublishPC, 0, "article_published")
	if err != nil {
		return nil, err
	}
	if err := s.accounts.AddAchievement(ctx, userID, AchievementFirstArticle); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to grant achievement")
	}
	return user, nil
}

// AwardPostCreated pays the author of a feed post
func (s *ReputationService) AwardPostCreated(ctx context.Context, userID int64) (*models.User, error) {
	return s.award(ctx, userID, s.points.PostPC, 0, "post_created")
}

// AwardLikeReceived pays or refunds a post author as likes toggle
func (s *ReputationService) AwardLikeReceived(ctx context.Context, authorID int64, liked bool) (*models.User, error) {
	delta := s.points.LikeReceivedPC
	if !liked {
		delta = -delta
	}
	return s.award(ctx, authorID, delta, 0, "like_toggled")
}

// AwardPortfolioSubmitted pays a showcase entrant
func (s *ReputationService) AwardPortfolioSubmitted(ctx context.Context, userID int64) (*models.User, error) {
	return s.award(ctx, userID, s.points.PortfolioSubmitPC, 0, "portfolio_submitted")
}

// VoteDelta returns the PC movement the target author sees when a vote in
// the given direction lands. Portfolio upvotes pay their own smaller award.
// Retractions negate the delta; switches combine both.
func (s *ReputationService) VoteDelta(targetType models.TargetType, direction models.VoteDirection) int {
	if direction == models.VoteUp {
		if targetType == models.TargetPortfolio {
			return s.points.PortfolioVotePC
		}
		return s.points.UpvotePC
	}
	return s.points.DownvotePC
}

// AdjustManually applies an admin-initiated correction
func (s *ReputationService) AdjustManually(ctx context.Context, userID int64, pcDelta, pconDelta int, reason string) (*models.User, error) {
	user, err := s.accounts.AdjustPoints(ctx, userID, pcDelta, pconDelta)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int64("userID", userID).
		Int("pcDelta", pcDelta).
		Int("pconDelta", pconDelta).
		Str("reason", reason).
		Msg("Manual point adjustment")
	return user, nil
}
