package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// VoteStore is the transactional voting surface of the storage layer. Each
// method moves the vote row, the target counters, and the author's points
// atomically; the service decides which to call and with what deltas.
type VoteStore interface {
	Get(ctx context.Context, userID, targetID int64, targetType models.TargetType) (*models.Vote, error)
	TargetAuthor(ctx context.Context, targetID int64, targetType models.TargetType) (*repositories.TargetState, error)
	Cast(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*repositories.TargetState, error)
	Retract(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*repositories.TargetState, error)
	Switch(ctx context.Context, vote *models.Vote, newDirection models.VoteDirection, authorID int64, authorPCDelta int) (*repositories.TargetState, error)
}

// VoteService implements the vote state machine. Per user and target the
// state is NoVote, Upvoted, or Downvoted: a new vote casts, repeating the
// same direction clears, and the opposite direction switches.
type VoteService struct {
	votes      VoteStore
	reputation *ReputationService
}

// NewVoteService creates a new VoteService
func NewVoteService(votes VoteStore, reputation *ReputationService) *VoteService {
	return &VoteService{votes: votes, reputation: reputation}
}

// Vote applies one vote operation for the actor and reports the resulting
// state. Only users vote, never companies, and never on their own content.
func (s *VoteService) Vote(ctx context.Context, actor *models.Actor, req *dto.VoteRequest) (*dto.VoteResponse, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	if !models.ValidVoteTarget(req.TargetType) {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	target, err := s.votes.TargetAuthor(ctx, req.TargetID, req.TargetType)
	if err != nil {
		return nil, err
	}
	if target.AuthorID == actor.ID {
		return nil, apperrors.ErrSelfVoteForbidden
	}

	existing, err := s.votes.Get(ctx, actor.ID, req.TargetID, req.TargetType)
	if err != nil {
		return nil, err
	}

	resp := &dto.VoteResponse{TargetID: req.TargetID, TargetType: req.TargetType}

	switch {
	case existing == nil:
		vote := &models.Vote{
			UserID:     actor.ID,
			TargetID:   req.TargetID,
			TargetType: req.TargetType,
			Direction:  req.Direction,
		}
		state, err := s.votes.Cast(ctx, vote, target.AuthorID, s.reputation.VoteDelta(req.TargetType, req.Direction))
		if err != nil {
			return nil, err
		}
		resp.Direction = req.Direction
		resp.Upvotes, resp.Downvotes = state.Upvotes, state.Downvotes

	case existing.Direction == req.Direction:
		// Same direction again clears the vote and refunds the delta.
		state, err := s.votes.Retract(ctx, existing, target.AuthorID, -s.reputation.VoteDelta(existing.TargetType, existing.Direction))
		if err != nil {
			return nil, err
		}
		resp.Upvotes, resp.Downvotes = state.Upvotes, state.Downvotes

	default:
		delta := s.reputation.VoteDelta(req.TargetType, req.Direction) - s.reputation.VoteDelta(existing.TargetType, existing.Direction)
		state, err := s.votes.Switch(ctx, existing, req.Direction, target.AuthorID, delta)
		if err != nil {
			return nil, err
		}
		resp.Direction = req.Direction
		resp.Upvotes, resp.Downvotes = state.Upvotes, state.Downvotes
	}

	return resp, nil
}

// Current returns the actor's live vote on a target, or nil
func (s *VoteService) Current(ctx context.Context, actor *models.Actor, targetID int64, targetType models.TargetType) (*models.Vote, error) {
	if !models.ValidVoteTarget(targetType) {
		return nil, apperrors.ErrInvalidVoteTarget
	}
	return s.votes.Get(ctx, actor.ID, targetID, targetType)
}
