package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// ProfileStore is the slice of the account repository profiles need.
type ProfileStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error)
	FollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	FolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
}

// UserService handles public profiles and the leaderboard
type UserService struct {
	accounts ProfileStore
}

// NewUserService creates a new UserService
func NewUserService(accounts ProfileStore) *UserService {
	return &UserService{accounts: accounts}
}

// GetProfile retrieves a public profile by username
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.accounts.GetUserByUsername(ctx, username)
}

// UpdateProfile edits the acting user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.Actor, req *dto.UpdateProfileRequest) (*models.User, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	user, err := s.accounts.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Github != nil {
		user.Github = *req.Github
	}
	if req.Linkedin != nil {
		user.Linkedin = *req.Linkedin
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if err := s.accounts.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Leaderboard retrieves a page of users ordered by PC points
func (s *UserService) Leaderboard(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error) {
	return s.accounts.ListUsers(ctx, search, offset, limit)
}

// FollowCounts reports follower and followee counts for a user
func (s *UserService) FollowCounts(ctx context.Context, userID int64) (followers, following int, err error) {
	followerIDs, err := s.accounts.FollowerIDs(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followeeIDs, err := s.accounts.FolloweeIDs(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return len(followerIDs), len(followeeIDs), nil
}
