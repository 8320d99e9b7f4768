package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/config"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

type questionFixture struct {
	svc       *services.QuestionService
	accounts  *fakeAccounts
	questions *fakeQuestionStore
	answers   *fakeAnswerStore
}

func newQuestionFixture() *questionFixture {
	accounts := newFakeAccounts()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(accounts)
	reputation := services.NewReputationService(accounts, config.DefaultPoints())
	return &questionFixture{
		svc:       services.NewQuestionService(questions, answers, reputation),
		accounts:  accounts,
		questions: questions,
		answers:   answers,
	}
}

func TestQuestionCreateAwardsAsker(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "How do I cancel a context after a deadline?",
		Content: "I keep leaking goroutines when the caller goes away and the worker keeps running.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if question.ID == 0 {
		t.Fatal("question was not persisted")
	}
	if question.AuthorUsername != "asker" {
		t.Errorf("author username = %q, want %q", question.AuthorUsername, "asker")
	}
	if question.Tags == nil {
		t.Error("tags should default to an empty slice")
	}

	got, _ := fx.accounts.GetUserByID(ctx, asker.ID)
	if got.PCPoints != 2 || got.PConPoints != 5 {
		t.Errorf("asker balances = %d/%d, want 2/5", got.PCPoints, got.PConPoints)
	}
}

func TestQuestionCreateRejectsCompanies(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()

	actor := companyActor(&models.Company{ID: 1, Name: "Acme"})
	_, err := fx.svc.Create(ctx, actor, &dto.CreateQuestionRequest{
		Title:   "Can companies ask questions on the board?",
		Content: "Trying to post a technical question from a company account.",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Create() error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
}

func TestQuestionGetCountsView(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "Why does my slice append not grow as expected?",
		Content: "Appending inside a function does not change the caller's slice header.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	fx.answers.add(&models.Answer{QuestionID: question.ID, AuthorID: 42, Content: "Pass a pointer"})

	detail, err := fx.svc.Get(ctx, question.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if detail.Question.Views != 1 {
		t.Errorf("views = %d, want 1", detail.Question.Views)
	}
	if len(detail.Answers) != 1 {
		t.Errorf("answers = %d, want 1", len(detail.Answers))
	}
}

func TestQuestionUpdateAuthorOnly(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})
	other := fx.accounts.addUser(&models.User{Username: "other"})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "Is there a way to range over a channel with an index?",
		Content: "Looking for the idiomatic loop shape when consuming from a channel.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "What is the idiomatic way to drain a channel?"
	if _, err := fx.svc.Update(ctx, userActor(other), question.ID, &dto.UpdateQuestionRequest{Title: &newTitle}); !errors.Is(err, apperrors.ErrNotAuthor) {
		t.Errorf("Update() by non-author error = %v, want %v", err, apperrors.ErrNotAuthor)
	}

	updated, err := fx.svc.Update(ctx, userActor(asker), question.ID, &dto.UpdateQuestionRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() by author error = %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("title = %q, want %q", updated.Title, newTitle)
	}
}

func TestQuestionDeleteAdminOverride(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})
	admin := fx.accounts.addUser(&models.User{Username: "admin", IsAdmin: true})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "How do I stub the clock in unit tests cleanly?",
		Content: "Passing time.Now around everywhere feels wrong, what do people do?",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := fx.svc.Delete(ctx, userActor(admin), question.ID); err != nil {
		t.Fatalf("Delete() by admin error = %v", err)
	}
	if _, err := fx.svc.Get(ctx, question.ID); !errors.Is(err, apperrors.ErrQuestionNotFound) {
		t.Errorf("Get() after delete error = %v, want %v", err, apperrors.ErrQuestionNotFound)
	}
}

func TestAcceptAnswer(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})
	answerer := fx.accounts.addUser(&models.User{Username: "answerer"})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "When should errors wrap versus just return as is?",
		Content: "Unsure when fmt.Errorf with %w is the right call at a package boundary.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	answer, err := fx.svc.Answer(ctx, userActor(answerer), question.ID, &dto.CreateAnswerRequest{
		Content: "Wrap when the caller can act on the underlying error, otherwise annotate.",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	// Accepting before moderation validates must fail.
	if _, err := fx.svc.AcceptAnswer(ctx, userActor(asker), answer.ID); !errors.Is(err, apperrors.ErrNotValidated) {
		t.Fatalf("AcceptAnswer() on pending answer error = %v, want %v", err, apperrors.ErrNotValidated)
	}

	if _, err := fx.answers.MarkValidated(ctx, answer.ID, 999, 0, 0); err != nil {
		t.Fatalf("MarkValidated() error = %v", err)
	}

	// Only the question author accepts.
	if _, err := fx.svc.AcceptAnswer(ctx, userActor(answerer), answer.ID); !errors.Is(err, apperrors.ErrNotAuthor) {
		t.Fatalf("AcceptAnswer() by non-author error = %v, want %v", err, apperrors.ErrNotAuthor)
	}

	accepted, err := fx.svc.AcceptAnswer(ctx, userActor(asker), answer.ID)
	if err != nil {
		t.Fatalf("AcceptAnswer() error = %v", err)
	}
	if !accepted.IsAccepted {
		t.Error("answer not flagged accepted")
	}

	got, _ := fx.accounts.GetUserByID(ctx, answerer.ID)
	if got.PCPoints != 15 || got.PConPoints != 10 {
		t.Errorf("answerer balances = %d/%d, want 15/10", got.PCPoints, got.PConPoints)
	}
}

func TestAcceptAnswerMovesAcceptance(t *testing.T) {
	ctx := context.Background()
	fx := newQuestionFixture()
	asker := fx.accounts.addUser(&models.User{Username: "asker"})
	first := fx.accounts.addUser(&models.User{Username: "first"})
	second := fx.accounts.addUser(&models.User{Username: "second"})

	question, err := fx.svc.Create(ctx, userActor(asker), &dto.CreateQuestionRequest{
		Title:   "Should I use sync.Map or a mutex around a plain map?",
		Content: "Read-heavy cache with occasional writes, unsure which primitive fits.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	firstAnswer, err := fx.svc.Answer(ctx, userActor(first), question.ID, &dto.CreateAnswerRequest{
		Content: "sync.Map is built for disjoint key sets, a mutex is simpler here.",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	secondAnswer, err := fx.svc.Answer(ctx, userActor(second), question.ID, &dto.CreateAnswerRequest{
		Content: "Benchmark both, but an RWMutex usually wins for this shape.",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if _, err := fx.answers.MarkValidated(ctx, firstAnswer.ID, 999, 0, 0); err != nil {
		t.Fatalf("MarkValidated() error = %v", err)
	}
	if _, err := fx.answers.MarkValidated(ctx, secondAnswer.ID, 999, 0, 0); err != nil {
		t.Fatalf("MarkValidated() error = %v", err)
	}

	if _, err := fx.svc.AcceptAnswer(ctx, userActor(asker), firstAnswer.ID); err != nil {
		t.Fatalf("AcceptAnswer(first) error = %v", err)
	}

	// Accepting a different answer moves the acceptance instead of failing.
	moved, err := fx.svc.AcceptAnswer(ctx, userActor(asker), secondAnswer.ID)
	if err != nil {
		t.Fatalf("AcceptAnswer(second) error = %v", err)
	}
	if !moved.IsAccepted {
		t.Error("new answer not flagged accepted")
	}
	previous, _ := fx.answers.GetByID(ctx, firstAnswer.ID)
	if previous.IsAccepted {
		t.Error("previous acceptance not cleared")
	}

	gotSecond, _ := fx.accounts.GetUserByID(ctx, second.ID)
	if gotSecond.PCPoints != 15 || gotSecond.PConPoints != 10 {
		t.Errorf("new author balances = %d/%d, want 15/10", gotSecond.PCPoints, gotSecond.PConPoints)
	}

	// Re-accepting the already accepted answer stays a conflict.
	if _, err := fx.svc.AcceptAnswer(ctx, userActor(asker), secondAnswer.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("AcceptAnswer() on accepted answer error = %v, want %v", err, apperrors.ErrConflict)
	}
}
