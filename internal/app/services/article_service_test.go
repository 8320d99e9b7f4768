package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/config"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

func newArticleFixture() (*services.ArticleService, *fakeAccounts, *fakeArticleStore) {
	accounts := newFakeAccounts()
	articles := newFakeArticleStore()
	reputation := services.NewReputationService(accounts, config.DefaultPoints())
	svc := services.NewArticleService(articles, reputation, models.RankAprendiz)
	return svc, accounts, articles
}

func draftRequest() *dto.CreateArticleRequest {
	return &dto.CreateArticleRequest{
		Title:    "Profiling allocations with pprof",
		Content:  "Walkthrough of alloc_space versus alloc_objects and what each view tells you.",
		Summary:  "A pprof allocations primer",
		Category: "performance",
	}
}

func TestArticleCreateDraft(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	author := accounts.addUser(&models.User{Username: "writer"})

	article, err := svc.Create(ctx, userActor(author), draftRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if article.IsPublished {
		t.Error("draft should not be published")
	}

	// Drafting pays nothing.
	got, _ := accounts.GetUserByID(ctx, author.ID)
	if got.PCPoints != 0 {
		t.Errorf("author PC = %d, want 0 for a draft", got.PCPoints)
	}
}

func TestArticlePublishRankGate(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	novice := accounts.addUser(&models.User{Username: "novice"})

	req := draftRequest()
	req.Publish = true
	if _, err := svc.Create(ctx, userActor(novice), req); !errors.Is(err, apperrors.ErrInsufficientRank) {
		t.Errorf("Create(publish) below rank error = %v, want %v", err, apperrors.ErrInsufficientRank)
	}

	article, err := svc.Create(ctx, userActor(novice), draftRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Publish(ctx, userActor(novice), article.ID); !errors.Is(err, apperrors.ErrInsufficientRank) {
		t.Errorf("Publish() below rank error = %v, want %v", err, apperrors.ErrInsufficientRank)
	}
}

func TestArticlePublishPaysOnce(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	author := accounts.addUser(&models.User{Username: "writer", PCPoints: 200})

	article, err := svc.Create(ctx, userActor(author), draftRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	actor := userActor(author)
	published, err := svc.Publish(ctx, actor, article.ID)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !published.IsPublished || published.PublishedAt == nil {
		t.Error("article not marked published")
	}

	got, _ := accounts.GetUserByID(ctx, author.ID)
	if got.PCPoints != 205 {
		t.Errorf("author PC = %d, want 205 after publish award", got.PCPoints)
	}

	// Unpublish and republish: the award is one-time per article.
	actor.User = got
	if err := svc.Unpublish(ctx, actor, article.ID); err != nil {
		t.Fatalf("Unpublish() error = %v", err)
	}
	if _, err := svc.Publish(ctx, actor, article.ID); err != nil {
		t.Fatalf("republish error = %v", err)
	}
	got, _ = accounts.GetUserByID(ctx, author.ID)
	if got.PCPoints != 205 {
		t.Errorf("author PC = %d after republish, want 205", got.PCPoints)
	}
}

func TestArticleDraftVisibility(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	author := accounts.addUser(&models.User{Username: "writer"})
	stranger := accounts.addUser(&models.User{Username: "stranger"})
	admin := accounts.addUser(&models.User{Username: "admin", IsAdmin: true})

	draft, err := svc.Create(ctx, userActor(author), draftRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name    string
		actor   *models.Actor
		wantErr error
	}{
		{name: "anonymous", actor: nil, wantErr: apperrors.ErrArticleNotFound},
		{name: "stranger", actor: userActor(stranger), wantErr: apperrors.ErrArticleNotFound},
		{name: "author", actor: userActor(author)},
		{name: "admin", actor: userActor(admin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, tt.actor, draft.ID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Get() error = %v", err)
			}
		})
	}
}

func TestArticleGetCountsViewOnPublished(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	author := accounts.addUser(&models.User{Username: "writer", PCPoints: 200})

	req := draftRequest()
	req.Publish = true
	article, err := svc.Create(ctx, userActor(author), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Get(ctx, nil, article.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
}

func TestArticleListExcludesDrafts(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newArticleFixture()
	author := accounts.addUser(&models.User{Username: "writer", PCPoints: 200})
	actor := userActor(author)

	if _, err := svc.Create(ctx, actor, draftRequest()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	published := draftRequest()
	published.Publish = true
	if _, err := svc.Create(ctx, actor, published); err != nil {
		t.Fatalf("Create(publish) error = %v", err)
	}

	listed, total, err := svc.List(ctx, repositories.ArticleFilter{}, 0, 20)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(listed) != 1 {
		t.Errorf("public list = %d (total %d), want 1", len(listed), total)
	}

	own, ownTotal, err := svc.ListOwn(ctx, actor, 0, 20)
	if err != nil {
		t.Fatalf("ListOwn() error = %v", err)
	}
	if ownTotal != 2 || len(own) != 2 {
		t.Errorf("own list = %d (total %d), want 2", len(own), ownTotal)
	}
}
