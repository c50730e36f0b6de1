// Package services – SurveyService
//
// SurveyService owns the survey collection: it validates the name, assigns
// time-based ids, persists through the repo layer and keeps the catalog
// mirror in step with every committed write. Deletes cascade into
// links and responses in a single transaction.
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

// SurveyService implements the survey entity store.
type SurveyService struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	IDs     IDSource
}

// NewSurveyService wires a SurveyService.
func NewSurveyService(db *gorm.DB, cat *catalog.Catalog, ids IDSource) *SurveyService {
	return &SurveyService{DB: db, Catalog: cat, IDs: ids}
}

// Create validates name, assigns a fresh id and persists the survey.
// A blank name yields a ValidationError and leaves store and mirror untouched.
func (s *SurveyService) Create(ctx context.Context, name string) (out *domain.Survey, err error) {
	ctx, span := tracer("SurveyService").Start(ctx, "Create")
	defer func() { track(span, "survey", "create", err); span.End() }()

	name, err = requireText("name", name, maxNameRunes)
	if err != nil {
		return nil, err
	}
	sv, err := repo.CreateSurvey(ctx, s.DB, s.IDs.Next(), name)
	if err != nil {
		return nil, storageErr(err)
	}
	s.Catalog.AddSurvey(*sv)
	span.SetAttributes(attribute.Int64("survey.id", sv.ID))
	zerolog.Ctx(ctx).Debug().Int64("survey_id", sv.ID).Msg("survey created")
	return sv, nil
}

// Update replaces the survey name. Unknown ids yield a NotFoundError.
func (s *SurveyService) Update(ctx context.Context, id int64, name string) (out *domain.Survey, err error) {
	ctx, span := tracer("SurveyService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("survey.id", id)))
	defer func() { track(span, "survey", "update", err); span.End() }()

	name, err = requireText("name", name, maxNameRunes)
	if err != nil {
		return nil, err
	}
	sv, err := repo.UpdateSurvey(ctx, s.DB, id, name)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound(domain.KindSurvey, id)
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if !s.Catalog.ReplaceSurvey(*sv) {
		s.Catalog.AddSurvey(*sv)
	}
	return sv, nil
}

// Delete removes the survey with its links and responses. Deleting an
// unknown id is a no-op.
func (s *SurveyService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer("SurveyService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("survey.id", id)))
	defer func() { track(span, "survey", "delete", err); span.End() }()

	n, err := deleteWithCascade(ctx, s.DB, domain.KindSurvey, id, repo.DeleteSurvey)
	if err != nil {
		return err
	}
	s.Catalog.RemoveSurvey(id)
	zerolog.Ctx(ctx).Debug().
		Int64("survey_id", id).
		Int64("deleted", n.Entity).
		Int64("respondent_links", n.SurveyRespondents).
		Int64("question_links", n.SurveyQuestions).
		Int64("responses", n.Responses).
		Msg("survey deleted")
	return nil
}

// List returns every survey in insertion order.
func (s *SurveyService) List(ctx context.Context) ([]domain.Survey, error) {
	return s.Catalog.Surveys(), nil
}

// Get returns one survey or a NotFoundError.
func (s *SurveyService) Get(ctx context.Context, id int64) (*domain.Survey, error) {
	sv, ok := s.Catalog.Survey(id)
	if !ok {
		return nil, notFound(domain.KindSurvey, id)
	}
	return &sv, nil
}

// Detail returns the survey with its assigned respondents and questions.
func (s *SurveyService) Detail(ctx context.Context, id int64) (*catalog.SurveyDetail, error) {
	d, ok := s.Catalog.SurveyDetail(id)
	if !ok {
		return nil, notFound(domain.KindSurvey, id)
	}
	return &d, nil
}
