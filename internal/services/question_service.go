package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// QuestionService implements the question entity store.
type QuestionService struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	IDs     IDSource
}

// NewQuestionService wires a QuestionService.
func NewQuestionService(db *gorm.DB, cat *catalog.Catalog, ids IDSource) *QuestionService {
	return &QuestionService{DB: db, Catalog: cat, IDs: ids}
}

// Create validates the text, assigns a fresh id and persists the question.
func (s *QuestionService) Create(ctx context.Context, text string) (out *domain.Question, err error) {
	ctx, span := tracer("QuestionService").Start(ctx, "Create")
	defer func() { track(span, "question", "create", err); span.End() }()

	text, err = requireText("text", text, maxTextRunes)
	if err != nil {
		return nil, err
	}
	q, err := repo.CreateQuestion(ctx, s.DB, s.IDs.Next(), text)
	if err != nil {
		return nil, storageErr(err)
	}
	s.Catalog.AddQuestion(*q)
	span.SetAttributes(attribute.Int64("question.id", q.ID))
	zerolog.Ctx(ctx).Debug().Int64("question_id", q.ID).Msg("question created")
	return q, nil
}

// Update replaces the question text. Unknown ids yield a NotFoundError.
func (s *QuestionService) Update(ctx context.Context, id int64, text string) (out *domain.Question, err error) {
	ctx, span := tracer("QuestionService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("question.id", id)))
	defer func() { track(span, "question", "update", err); span.End() }()

	text, err = requireText("text", text, maxTextRunes)
	if err != nil {
		return nil, err
	}
	q, err := repo.UpdateQuestion(ctx, s.DB, id, text)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound(domain.KindQuestion, id)
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if !s.Catalog.ReplaceQuestion(*q) {
		s.Catalog.AddQuestion(*q)
	}
	return q, nil
}

// Delete removes the question with its survey links and responses.
// Deleting an unknown id is a no-op.
func (s *QuestionService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer("QuestionService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("question.id", id)))
	defer func() { track(span, "question", "delete", err); span.End() }()

	n, err := deleteWithCascade(ctx, s.DB, domain.KindQuestion, id, repo.DeleteQuestion)
	if err != nil {
		return err
	}
	s.Catalog.RemoveQuestion(id)
	zerolog.Ctx(ctx).Debug().
		Int64("question_id", id).
		Int64("deleted", n.Entity).
		Int64("survey_links", n.SurveyQuestions).
		Int64("responses", n.Responses).
		Msg("question deleted")
	return nil
}

// List returns every question in insertion order.
func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	return s.Catalog.Questions(), nil
}

// Get returns one question or a NotFoundError.
func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	q, ok := s.Catalog.Question(id)
	if !ok {
		return nil, notFound(domain.KindQuestion, id)
	}
	return &q, nil
}
