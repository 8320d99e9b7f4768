package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeQuestionStore keeps questions in memory.
type fakeQuestionStore struct {
	questions map[int64]*models.Question
	nextID    int64
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[int64]*models.Question)}
}

func (f *fakeQuestionStore) Create(_ context.Context, question *models.Question) error {
	f.nextID++
	question.ID = f.nextID
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	stored := *question
	f.questions[question.ID] = &stored
	return nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id int64) (*models.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	copied := *question
	return &copied, nil
}

func (f *fakeQuestionStore) List(_ context.Context, filter repositories.QuestionFilter, offset uint64, limit int) ([]models.Question, int64, error) {
	var out []models.Question
	for _, question := range f.questions {
		out = append(out, *question)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.Question{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeQuestionStore) Update(_ context.Context, question *models.Question) error {
	if _, ok := f.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	question.UpdatedAt = time.Now()
	stored := *question
	f.questions[question.ID] = &stored
	return nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionStore) IncrementViews(_ context.Context, id int64) error {
	question, ok := f.questions[id]
	if !ok {
		return apperrors.ErrQuestionNotFound
	}
	question.Views++
	return nil
}

func (f *fakeQuestionStore) SetFeatured(_ context.Context, id int64, featured bool) error {
	question, ok := f.questions[id]
	if !ok {
		return apperrors.ErrQuestionNotFound
	}
	question.IsFeatured = featured
	return nil
}

// fakeAnswerStore keeps answers in memory and mirrors the repository's
// conditional validate and accept updates, including the author awards those
// updates carry.
type fakeAnswerStore struct {
	accounts *fakeAccounts
	answers  map[int64]*models.Answer
	nextID   int64
}

func newFakeAnswerStore(accounts *fakeAccounts) *fakeAnswerStore {
	return &fakeAnswerStore{accounts: accounts, answers: make(map[int64]*models.Answer)}
}

func (f *fakeAnswerStore) add(answer *models.Answer) *models.Answer {
	f.nextID++
	answer.ID = f.nextID
	f.answers[answer.ID] = answer
	return answer
}

func (f *fakeAnswerStore) Create(_ context.Context, answer *models.Answer) error {
	f.nextID++
	answer.ID = f.nextID
	answer.CreatedAt = time.Now()
	stored := *answer
	f.answers[answer.ID] = &stored
	return nil
}

func (f *fakeAnswerStore) GetByID(_ context.Context, id int64) (*models.Answer, error) {
	answer, ok := f.answers[id]
	if !ok {
		return nil, apperrors.ErrAnswerNotFound
	}
	copied := *answer
	return &copied, nil
}

func (f *fakeAnswerStore) ListByQuestion(_ context.Context, questionID int64) ([]models.Answer, error) {
	var out []models.Answer
	for _, answer := range f.answers {
		if answer.QuestionID == questionID {
			out = append(out, *answer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAnswerStore) ListPending(_ context.Context, offset uint64, limit int) ([]models.Answer, int64, error) {
	var out []models.Answer
	for _, answer := range f.answers {
		if !answer.IsValidated {
			out = append(out, *answer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.Answer{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeAnswerStore) MarkValidated(ctx context.Context, answerID, moderatorID int64, pcAward, pconAward int) (*models.Answer, error) {
	answer, ok := f.answers[answerID]
	if !ok {
		return nil, apperrors.ErrAnswerNotFound
	}
	if answer.IsValidated {
		return nil, apperrors.ErrAlreadyValidated
	}
	now := time.Now()
	answer.IsValidated = true
	answer.ValidatedBy = &moderatorID
	answer.ValidatedAt = &now
	if pcAward != 0 || pconAward != 0 {
		if _, err := f.accounts.AdjustPoints(ctx, answer.AuthorID, pcAward, pconAward); err != nil {
			return nil, err
		}
	}
	copied := *answer
	return &copied, nil
}

func (f *fakeAnswerStore) MarkAccepted(ctx context.Context, answerID int64, pcAward, pconAward int) (*models.Answer, error) {
	answer, ok := f.answers[answerID]
	if !ok {
		return nil, apperrors.ErrAnswerNotFound
	}
	if !answer.IsValidated {
		return nil, apperrors.ErrNotValidated
	}
	if answer.IsAccepted {
		return nil, apperrors.NewConflictError("answer already accepted")
	}
	for _, other := range f.answers {
		if other.QuestionID == answer.QuestionID && other.IsAccepted {
			other.IsAccepted = false
		}
	}
	answer.IsAccepted = true
	if pcAward != 0 || pconAward != 0 {
		if _, err := f.accounts.AdjustPoints(ctx, answer.AuthorID, pcAward, pconAward); err != nil {
			return nil, err
		}
	}
	copied := *answer
	return &copied, nil
}

func (f *fakeAnswerStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.answers[id]; !ok {
		return apperrors.ErrAnswerNotFound
	}
	delete(f.answers, id)
	return nil
}

// fakeStatsStore returns a fixed dashboard snapshot.
type fakeStatsStore struct {
	stats dto.PlatformStatsResponse
}

func (f *fakeStatsStore) PlatformStats(_ context.Context) (*dto.PlatformStatsResponse, error) {
	copied := f.stats
	return &copied, nil
}
