package services

import (
	"context"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/helpers"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// FeedStore is the storage surface for posts, comments, and likes.
type FeedStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, authorIDs []int64, offset uint64, limit int) ([]models.Post, int64, error)
	Delete(ctx context.Context, id int64) error
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
	ToggleLike(ctx context.Context, userID, postID int64) (liked bool, likes int, authorID int64, err error)
}

// ShowcaseStore is the storage surface for weekly portfolio submissions.
type ShowcaseStore interface {
	Create(ctx context.Context, submission *models.PortfolioSubmission) error
	GetByID(ctx context.Context, id int64) (*models.PortfolioSubmission, error)
	ListByWeek(ctx context.Context, weekYear string) ([]models.PortfolioSubmission, error)
	SetFeatured(ctx context.Context, id int64, featured bool) error
	Delete(ctx context.Context, id int64) error
}

// FollowGraph is the slice of the account repository the feed needs.
type FollowGraph interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	FolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
}

// ConnectService handles the social surface: the feed, likes, the follow
// graph, and the weekly portfolio showcase
type ConnectService struct {
	feed       FeedStore
	showcase   ShowcaseStore
	follows    FollowGraph
	reputation *ReputationService
}

// NewConnectService creates a new ConnectService
func NewConnectService(feed FeedStore, showcase ShowcaseStore, follows FollowGraph, reputation *ReputationService) *ConnectService {
	return &ConnectService{feed: feed, showcase: showcase, follows: follows, reputation: reputation}
}

// CreatePost publishes a feed post and pays the author
func (s *ConnectService) CreatePost(ctx context.Context, actor *models.Actor, req *dto.CreatePostRequest) (*models.Post, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	post := &models.Post{
		Content:        req.Content,
		PostType:       req.PostType,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username(),
		Metadata:       req.Metadata,
		Tags:           req.Tags,
	}
	if post.Metadata == nil {
		post.Metadata = map[string]string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if err := s.feed.Create(ctx, post); err != nil {
		return nil, err
	}

	if _, err := s.reputation.AwardPostCreated(ctx, actor.ID); err != nil {
		logger.Error().Err(err).Int64("postID", post.ID).Msg("Failed to award post points")
	}
	return post, nil
}

// GetPost retrieves a post with its comments
func (s *ConnectService) GetPost(ctx context.Context, id int64) (*dto.PostDetailResponse, error) {
	post, err := s.feed.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.feed.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return &dto.PostDetailResponse{Post: *post, Comments: comments}, nil
}

// Feed retrieves the global feed, or the personalized feed restricted to the
// actor's followees when following is true
func (s *ConnectService) Feed(ctx context.Context, actor *models.Actor, following bool, offset uint64, limit int) ([]models.Post, int64, error) {
	var authorIDs []int64
	if following && actor != nil {
		ids, err := s.follows.FolloweeIDs(ctx, actor.ID)
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return []models.Post{}, 0, nil
		}
		authorIDs = ids
	}
	return s.feed.List(ctx, authorIDs, offset, limit)
}

// DeletePost removes a post; author or admin
func (s *ConnectService) DeletePost(ctx context.Context, actor *models.Actor, id int64) error {
	post, err := s.feed.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return apperrors.ErrNotAuthor
	}
	return s.feed.Delete(ctx, id)
}

// Comment replies to a post
func (s *ConnectService) Comment(ctx context.Context, actor *models.Actor, postID int64, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	comment := &models.Comment{
		PostID:         postID,
		Content:        req.Content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username(),
	}
	if err := s.feed.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleLike likes or unlikes a post. The post author's points move with the
// like unless they liked their own post.
func (s *ConnectService) ToggleLike(ctx context.Context, actor *models.Actor, postID int64) (*dto.LikeResponse, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	liked, likes, authorID, err := s.feed.ToggleLike(ctx, actor.ID, postID)
	if err != nil {
		return nil, err
	}

	if authorID != actor.ID {
		if _, err := s.reputation.AwardLikeReceived(ctx, authorID, liked); err != nil {
			logger.Error().Err(err).Int64("postID", postID).Msg("Failed to adjust like points")
		}
	}
	return &dto.LikeResponse{PostID: postID, Liked: liked, Likes: likes}, nil
}

// Follow adds a follow edge from the actor to another user
func (s *ConnectService) Follow(ctx context.Context, actor *models.Actor, followeeID int64) (*dto.FollowResponse, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	if actor.ID == followeeID {
		return nil, apperrors.NewBadRequestError("cannot follow yourself")
	}
	if err := s.follows.Follow(ctx, actor.ID, followeeID); err != nil {
		return nil, err
	}
	return &dto.FollowResponse{FolloweeID: followeeID, Following: true}, nil
}

// Unfollow removes a follow edge
func (s *ConnectService) Unfollow(ctx context.Context, actor *models.Actor, followeeID int64) (*dto.FollowResponse, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.follows.Unfollow(ctx, actor.ID, followeeID); err != nil {
		return nil, err
	}
	return &dto.FollowResponse{FolloweeID: followeeID, Following: false}, nil
}

// SubmitPortfolio enters a project into the current showcase week and pays
// the entrant. One submission per user per week.
func (s *ConnectService) SubmitPortfolio(ctx context.Context, actor *models.Actor, req *dto.SubmitPortfolioRequest) (*models.PortfolioSubmission, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	submission := &models.PortfolioSubmission{
		UserID:         actor.ID,
		AuthorUsername: actor.Username(),
		Title:          req.Title,
		Description:    req.Description,
		ProjectURL:     req.ProjectURL,
		Technologies:   req.Technologies,
		WeekYear:       helpers.CurrentWeekYear(time.Now()),
	}
	if submission.Technologies == nil {
		submission.Technologies = []string{}
	}
	if err := s.showcase.Create(ctx, submission); err != nil {
		return nil, err
	}

	if _, err := s.reputation.AwardPortfolioSubmitted(ctx, actor.ID); err != nil {
		logger.Error().Err(err).Int64("submissionID", submission.ID).Msg("Failed to award portfolio points")
	}
	return submission, nil
}

// WeeklyShowcase lists submissions for a week, defaulting to the current one
func (s *ConnectService) WeeklyShowcase(ctx context.Context, weekYear string) (*dto.PortfolioListResponse, error) {
	if weekYear == "" {
		weekYear = helpers.CurrentWeekYear(time.Now())
	}
	submissions, err := s.showcase.ListByWeek(ctx, weekYear)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.PortfolioSubmission{}
	}
	return &dto.PortfolioListResponse{WeekYear: weekYear, Submissions: submissions}, nil
}

// FeatureSubmission marks a showcase winner; admin only
func (s *ConnectService) FeatureSubmission(ctx context.Context, actor *models.Actor, id int64, featured bool) error {
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return s.showcase.SetFeatured(ctx, id, featured)
}
