// Package services – AssociationService
//
// AssociationService links respondents and questions to surveys. Linking is
// idempotent: an existing pair is returned unchanged. Existence of both ends
// and of the pair is checked against the database inside the inserting
// transaction; the unique indexes on the link tables turn a racing duplicate
// insert into the same idempotent result.
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
	"github.com/tbourn/go-survey-backend/internal/observability"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// AssociationService implements both association stores.
type AssociationService struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

// NewAssociationService wires an AssociationService.
func NewAssociationService(db *gorm.DB, cat *catalog.Catalog) *AssociationService {
	return &AssociationService{DB: db, Catalog: cat}
}

// AssignRespondent links respondentID to surveyID. It reports created=false
// when the pair already existed. Either id missing yields a NotFoundError.
func (s *AssociationService) AssignRespondent(ctx context.Context, surveyID, respondentID int64) (out *domain.SurveyRespondent, created bool, err error) {
	ctx, span := tracer("AssociationService").Start(ctx, "AssignRespondent",
		trace.WithAttributes(
			attribute.Int64("survey.id", surveyID),
			attribute.Int64("respondent.id", respondentID),
		))
	defer func() { span.End() }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEntity(ctx, tx, domain.KindSurvey, surveyID); err != nil {
			return err
		}
		if err := requireEntity(ctx, tx, domain.KindRespondent, respondentID); err != nil {
			return err
		}
		existing, err := repo.FindSurveyRespondent(ctx, tx, surveyID, respondentID)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		// Savepoint so a unique-index collision does not poison the outer tx.
		err = tx.Transaction(func(sp *gorm.DB) error {
			l, err := repo.CreateSurveyRespondent(ctx, sp, surveyID, respondentID)
			if err != nil {
				return err
			}
			out, created = l, true
			return nil
		})
		if errors.Is(err, repo.ErrDuplicate) {
			out, err = repo.FindSurveyRespondent(ctx, tx, surveyID, respondentID)
		}
		return err
	})
	if err != nil {
		err = storageErr(err)
		track(span, "survey_respondent", "assign", err)
		return nil, false, err
	}

	s.Catalog.AddSurveyRespondent(*out)
	if created {
		trackOutcome("survey_respondent", "assign", observability.OutcomeCreated)
		zerolog.Ctx(ctx).Debug().Int64("survey_id", surveyID).Int64("respondent_id", respondentID).Msg("respondent assigned")
	} else {
		trackOutcome("survey_respondent", "assign", observability.OutcomeNoop)
	}
	return out, created, nil
}

// AssignQuestion links questionID to surveyID with the same idempotent
// semantics as AssignRespondent.
func (s *AssociationService) AssignQuestion(ctx context.Context, surveyID, questionID int64) (out *domain.SurveyQuestion, created bool, err error) {
	ctx, span := tracer("AssociationService").Start(ctx, "AssignQuestion",
		trace.WithAttributes(
			attribute.Int64("survey.id", surveyID),
			attribute.Int64("question.id", questionID),
		))
	defer func() { span.End() }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEntity(ctx, tx, domain.KindSurvey, surveyID); err != nil {
			return err
		}
		if err := requireEntity(ctx, tx, domain.KindQuestion, questionID); err != nil {
			return err
		}
		existing, err := repo.FindSurveyQuestion(ctx, tx, surveyID, questionID)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		err = tx.Transaction(func(sp *gorm.DB) error {
			l, err := repo.CreateSurveyQuestion(ctx, sp, surveyID, questionID)
			if err != nil {
				return err
			}
			out, created = l, true
			return nil
		})
		if errors.Is(err, repo.ErrDuplicate) {
			out, err = repo.FindSurveyQuestion(ctx, tx, surveyID, questionID)
		}
		return err
	})
	if err != nil {
		err = storageErr(err)
		track(span, "survey_question", "assign", err)
		return nil, false, err
	}

	s.Catalog.AddSurveyQuestion(*out)
	if created {
		trackOutcome("survey_question", "assign", observability.OutcomeCreated)
		zerolog.Ctx(ctx).Debug().Int64("survey_id", surveyID).Int64("question_id", questionID).Msg("question assigned")
	} else {
		trackOutcome("survey_question", "assign", observability.OutcomeNoop)
	}
	return out, created, nil
}

// SurveyLinks are the raw association rows of one survey.
type SurveyLinks struct {
	SurveyID    int64                     `json:"survey_id"`
	Respondents []domain.SurveyRespondent `json:"respondents"`
	Questions   []domain.SurveyQuestion   `json:"questions"`
}

// Links returns both link collections of an existing survey in insertion
// order.
func (s *AssociationService) Links(ctx context.Context, surveyID int64) (*SurveyLinks, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	return &SurveyLinks{
		SurveyID:    surveyID,
		Respondents: s.Catalog.SurveyRespondentLinks(surveyID),
		Questions:   s.Catalog.SurveyQuestionLinks(surveyID),
	}, nil
}

// RespondentsOf returns the respondents assigned to an existing survey.
func (s *AssociationService) RespondentsOf(ctx context.Context, surveyID int64) ([]domain.Respondent, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	return s.Catalog.RespondentsOf(surveyID), nil
}

// QuestionsOf returns the questions assigned to an existing survey.
func (s *AssociationService) QuestionsOf(ctx context.Context, surveyID int64) ([]domain.Question, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	return s.Catalog.QuestionsOf(surveyID), nil
}
