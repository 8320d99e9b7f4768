package services

import (
	"context"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
	"github.com/acodelab/backend/internal/pkg/logger"
)

// QuestionStore is the storage surface for questions.
type QuestionStore interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter repositories.QuestionFilter, offset uint64, limit int) ([]models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
}

// AnswerStore is the storage surface for answers.
type AnswerStore interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id int64) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error)
	ListPending(ctx context.Context, offset uint64, limit int) ([]models.Answer, int64, error)
	MarkValidated(ctx context.Context, answerID, moderatorID int64, pcAward, pconAward int) (*models.Answer, error)
	MarkAccepted(ctx context.Context, answerID int64, pcAward, pconAward int) (*models.Answer, error)
	Delete(ctx context.Context, id int64) error
}

// QuestionService handles the Q&A surface: asking, answering, browsing
type QuestionService struct {
	questions  QuestionStore
	answers    AnswerStore
	reputation *ReputationService
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questions QuestionStore, answers AnswerStore, reputation *ReputationService) *QuestionService {
	return &QuestionService{questions: questions, answers: answers, reputation: reputation}
}

// Create posts a new question and pays the asker
func (s *QuestionService) Create(ctx context.Context, actor *models.Actor, req *dto.CreateQuestionRequest) (*models.Question, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	question := &models.Question{
		Title:          req.Title,
		Content:        req.Content,
		Code:           req.Code,
		Tags:           req.Tags,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username(),
	}
	if question.Tags == nil {
		question.Tags = []string{}
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	if _, err := s.reputation.AwardQuestionCreated(ctx, actor.ID); err != nil {
		logger.Error().Err(err).Int64("questionID", question.ID).Msg("Failed to award question points")
	}
	return question, nil
}

// Get retrieves a question with its answers and counts the view
func (s *QuestionService) Get(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.questions.IncrementViews(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("questionID", id).Msg("Failed to count view")
	} else {
		question.Views++
	}

	answers, err := s.answers.ListByQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []models.Answer{}
	}

	return &dto.QuestionDetailResponse{Question: *question, Answers: answers}, nil
}

// List retrieves a filtered page of questions
func (s *QuestionService) List(ctx context.Context, filter repositories.QuestionFilter, offset uint64, limit int) ([]models.Question, int64, error) {
	return s.questions.List(ctx, filter, offset, limit)
}

// Update edits a question; only the author may edit
func (s *QuestionService) Update(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != actor.ID || actor.Kind != models.KindUser {
		return nil, apperrors.ErrNotAuthor
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Code != nil {
		question.Code = *req.Code
	}
	if req.Tags != nil {
		question.Tags = req.Tags
	}

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes a question; the author or an admin may delete
func (s *QuestionService) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if question.AuthorID != actor.ID && !actor.IsAdmin() {
		return apperrors.ErrNotAuthor
	}
	return s.questions.Delete(ctx, id)
}

// Answer submits an answer to a question. No points move until moderation
// validates it.
func (s *QuestionService) Answer(ctx context.Context, actor *models.Actor, questionID int64, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	if actor.Kind != models.KindUser {
		return nil, apperrors.ErrPermissionDenied
	}

	answer := &models.Answer{
		QuestionID:     questionID,
		Content:        req.Content,
		Code:           req.Code,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username(),
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// AcceptAnswer lets the question author accept a validated answer. Accepting
// a different answer moves the acceptance: the store clears the previous one,
// sets the new one, and pays the new author's award in one transaction.
func (s *QuestionService) AcceptAnswer(ctx context.Context, actor *models.Actor, answerID int64) (*models.Answer, error) {
	answer, err := s.answers.GetByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != actor.ID || actor.Kind != models.KindUser {
		return nil, apperrors.ErrNotAuthor
	}
	if !answer.IsValidated {
		return nil, apperrors.ErrNotValidated
	}

	points := s.reputation.Points()
	return s.answers.MarkAccepted(ctx, answerID, points.AnswerAcceptedPC, points.AnswerAcceptedPCon)
}
