package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeArticleStore keeps articles in memory and mirrors the repository's
// one-time publish award tracking.
type fakeArticleStore struct {
	articles map[int64]*models.Article
	nextID   int64
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: make(map[int64]*models.Article)}
}

func (f *fakeArticleStore) Create(_ context.Context, article *models.Article) error {
	f.nextID++
	article.ID = f.nextID
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	if article.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	}
	stored := *article
	f.articles[article.ID] = &stored
	return nil
}

func (f *fakeArticleStore) GetByID(_ context.Context, id int64) (*models.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, apperrors.ErrArticleNotFound
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticleStore) List(_ context.Context, filter repositories.ArticleFilter, offset uint64, limit int) ([]models.Article, int64, error) {
	var out []models.Article
	for _, article := range f.articles {
		if !filter.IncludeDrafts && !article.IsPublished {
			continue
		}
		if filter.AuthorID != 0 && article.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && article.Category != filter.Category {
			continue
		}
		out = append(out, *article)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.Article{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeArticleStore) Update(_ context.Context, article *models.Article) error {
	if _, ok := f.articles[article.ID]; !ok {
		return apperrors.ErrArticleNotFound
	}
	article.UpdatedAt = time.Now()
	stored := *article
	f.articles[article.ID] = &stored
	return nil
}

func (f *fakeArticleStore) MarkPublished(_ context.Context, id int64) (*models.Article, bool, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, false, apperrors.ErrArticleNotFound
	}
	if article.IsPublished {
		return nil, false, apperrors.ErrArticleNotFound
	}
	firstPublish := !article.PublishAwarded
	article.IsPublished = true
	article.PublishAwarded = true
	if article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
	copied := *article
	return &copied, firstPublish, nil
}

func (f *fakeArticleStore) Unpublish(_ context.Context, id int64) error {
	article, ok := f.articles[id]
	if !ok {
		return apperrors.ErrArticleNotFound
	}
	article.IsPublished = false
	return nil
}

func (f *fakeArticleStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.articles[id]; !ok {
		return apperrors.ErrArticleNotFound
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleStore) IncrementViews(_ context.Context, id int64) error {
	article, ok := f.articles[id]
	if !ok {
		return apperrors.ErrArticleNotFound
	}
	article.Views++
	return nil
}
