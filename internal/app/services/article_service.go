package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// ArticleStore is the storage surface for articles.
type ArticleStore interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, filter repositories.ArticleFilter, offset uint64, limit int) ([]models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	MarkPublished(ctx context.Context, id int64) (*models.Article, bool, error)
	Unpublish(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}

// ArticleService handles authoring and publishing. Drafting is open to every
// user; publishing requires the configured rank.
type ArticleService struct {
	articles   ArticleStore
	reputation *ReputationService
	publishMin models.Rank
}

// NewArticleService creates a new ArticleService
func NewArticleService(articles ArticleStore, reputation *ReputationService, publishMin models.Rank) *ArticleService {
	return &ArticleService{articles: articles, reputation: reputation, publishMin: publishMin}
}

func (s *ArticleService) checkPublishRank(actor *models.Actor) error {
	if actor.Kind != models.KindUser || actor.User == nil {
		return apperrors.ErrPermissionDenied
	}
	if !models.RankAtLeast(actor.User.Rank, s.publishMin) {
		return apperrors.ErrInsufficientRank
	}
	return nil
}

// Create drafts or publishes a new article
func (s *ArticleService) Create(ctx context.Context, actor *models.Actor, req *dto.CreateArticleRequest) (*models.Article, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}
	if req.Publish {
		if err := s.checkPublishRank(actor); err != nil {
			return nil, err
		}
	}

	article := &models.Article{
		Title:          req.Title,
		Content:        req.Content,
		Summary:        req.Summary,
		Category:       req.Category,
		Tags:           req.Tags,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username(),
		IsPublished:    req.Publish,
		PublishAwarded: req.Publish,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	if req.Publish {
		if _, err := s.reputation.AwardArticlePublished(ctx, actor.ID); err != nil {
			logger.Error().Err(err).Int64("articleID", article.ID).Msg("Failed to award publish points")
		}
	}
	return article, nil
}

// Get retrieves an article and counts the view. Drafts are only visible to
// their author and admins.
func (s *ArticleService) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished {
		if actor == nil || (article.AuthorID != actor.ID && !actor.IsAdmin()) {
			return nil, apperrors.ErrArticleNotFound
		}
		return article, nil
	}

	if err := s.articles.IncrementViews(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("articleID", id).Msg("Failed to count view")
	} else {
		article.Views++
	}
	return article, nil
}

// List retrieves a filtered page of published articles
func (s *ArticleService) List(ctx context.Context, filter repositories.ArticleFilter, offset uint64, limit int) ([]models.Article, int64, error) {
	filter.IncludeDrafts = false
	return s.articles.List(ctx, filter, offset, limit)
}

// ListOwn retrieves the author's articles including drafts
func (s *ArticleService) ListOwn(ctx context.Context, actor *models.Actor, offset uint64, limit int) ([]models.Article, int64, error) {
	filter := repositories.ArticleFilter{AuthorID: actor.ID, IncludeDrafts: true}
	return s.articles.List(ctx, filter, offset, limit)
}

// Update edits an article; only the author may edit
func (s *ArticleService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID || actor.Kind != models.KindUser {
		return nil, apperrors.ErrNotAuthor
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Tags != nil {
		article.Tags = req.Tags
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Publish flips a draft to published, gated on rank. The point award is paid
// only on the first publication of the article.
func (s *ArticleService) Publish(ctx context.Context, actor *models.Actor, id int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID {
		return nil, apperrors.ErrNotAuthor
	}
	if err := s.checkPublishRank(actor); err != nil {
		return nil, err
	}
	if article.IsPublished {
		return article, nil
	}

	published, firstPublish, err := s.articles.MarkPublished(ctx, id)
	if err != nil {
		return nil, err
	}

	if firstPublish {
		if _, err := s.reputation.AwardArticlePublished(ctx, actor.ID); err != nil {
			logger.Error().Err(err).Int64("articleID", id).Msg("Failed to award publish points")
		}
	}
	return published, nil
}

// Unpublish returns an article to draft state; author or admin
func (s *ArticleService) Unpublish(ctx context.Context, actor *models.Actor, id int64) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article.AuthorID != actor.ID && !actor.IsAdmin() {
		return apperrors.ErrNotAuthor
	}
	return s.articles.Unpublish(ctx, id)
}

// Delete removes an article; author or admin
func (s *ArticleService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article.AuthorID != actor.ID && !actor.IsAdmin() {
		return apperrors.ErrNotAuthor
	}
	return s.articles.Delete(ctx, id)
}
