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

// RespondentService implements the respondent entity store. Both the full
// name and the email are required; the email is case-folded.
type RespondentService struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	IDs     IDSource
}

// NewRespondentService wires a RespondentService.
func NewRespondentService(db *gorm.DB, cat *catalog.Catalog, ids IDSource) *RespondentService {
	return &RespondentService{DB: db, Catalog: cat, IDs: ids}
}

func respondentFields(fullName, email string) (string, string, error) {
	fullName, err := requireText("full_name", fullName, maxNameRunes)
	if err != nil {
		return "", "", err
	}
	email, err = requireText("email", email, maxEmailRunes)
	if err != nil {
		return "", "", err
	}
	return fullName, email, nil
}

// Create validates the fields, assigns a fresh id and persists the respondent.
func (s *RespondentService) Create(ctx context.Context, fullName, email string) (out *domain.Respondent, err error) {
	ctx, span := tracer("RespondentService").Start(ctx, "Create")
	defer func() { track(span, "respondent", "create", err); span.End() }()

	fullName, email, err = respondentFields(fullName, email)
	if err != nil {
		return nil, err
	}
	r, err := repo.CreateRespondent(ctx, s.DB, s.IDs.Next(), fullName, email)
	if err != nil {
		return nil, storageErr(err)
	}
	s.Catalog.AddRespondent(*r)
	span.SetAttributes(attribute.Int64("respondent.id", r.ID))
	zerolog.Ctx(ctx).Debug().Int64("respondent_id", r.ID).Msg("respondent created")
	return r, nil
}

// Update replaces name and email. Unknown ids yield a NotFoundError.
func (s *RespondentService) Update(ctx context.Context, id int64, fullName, email string) (out *domain.Respondent, err error) {
	ctx, span := tracer("RespondentService").Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("respondent.id", id)))
	defer func() { track(span, "respondent", "update", err); span.End() }()

	fullName, email, err = respondentFields(fullName, email)
	if err != nil {
		return nil, err
	}
	r, err := repo.UpdateRespondent(ctx, s.DB, id, fullName, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound(domain.KindRespondent, id)
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if !s.Catalog.ReplaceRespondent(*r) {
		s.Catalog.AddRespondent(*r)
	}
	return r, nil
}

// Delete removes the respondent with its survey links and responses.
// Deleting an unknown id is a no-op.
func (s *RespondentService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := tracer("RespondentService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("respondent.id", id)))
	defer func() { track(span, "respondent", "delete", err); span.End() }()

	n, err := deleteWithCascade(ctx, s.DB, domain.KindRespondent, id, repo.DeleteRespondent)
	if err != nil {
		return err
	}
	s.Catalog.RemoveRespondent(id)
	zerolog.Ctx(ctx).Debug().
		Int64("respondent_id", id).
		Int64("deleted", n.Entity).
		Int64("survey_links", n.SurveyRespondents).
		Int64("responses", n.Responses).
		Msg("respondent deleted")
	return nil
}

// List returns every respondent in insertion order.
func (s *RespondentService) List(ctx context.Context) ([]domain.Respondent, error) {
	return s.Catalog.Respondents(), nil
}

// Get returns one respondent or a NotFoundError.
func (s *RespondentService) Get(ctx context.Context, id int64) (*domain.Respondent, error) {
	r, ok := s.Catalog.Respondent(id)
	if !ok {
		return nil, notFound(domain.KindRespondent, id)
	}
	return &r, nil
}
