package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/observability"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// SubmitOutcome says what a submission did to the store.
type SubmitOutcome string

const (
	// Skipped: the answer was blank and nothing was written.
	Skipped SubmitOutcome = "skipped"
	// Created: a new response row was inserted.
	Created SubmitOutcome = "created"
	// Updated: the existing response for the triple was overwritten.
	Updated SubmitOutcome = "updated"
)

// SubmitResult is one entry of a SubmitAll batch.
type SubmitResult struct {
	QuestionID int64            `json:"question_id"`
	Outcome    SubmitOutcome    `json:"outcome"`
	Response   *domain.Response `json:"response,omitempty"`
}

// ResponseService implements the response store: one answer per
// (survey, question, respondent) triple with upsert semantics.
type ResponseService struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

// NewResponseService wires a ResponseService.
func NewResponseService(db *gorm.DB, cat *catalog.Catalog) *ResponseService {
	return &ResponseService{DB: db, Catalog: cat}
}

// Submit records text as the answer of respondentID to questionID within
// surveyID. Blank text is skipped without error. All three ids must exist.
func (s *ResponseService) Submit(ctx context.Context, surveyID, questionID, respondentID int64, text string) (out *domain.Response, outcome SubmitOutcome, err error) {
	ctx, span := tracer("ResponseService").Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.Int64("survey.id", surveyID),
			attribute.Int64("question.id", questionID),
			attribute.Int64("respondent.id", respondentID),
		))
	defer func() { span.End() }()

	if isBlank(text) {
		trackOutcome("response", "submit", observability.OutcomeSkipped)
		return nil, Skipped, nil
	}
	if textLen(text) > maxTextRunes {
		err = invalid("response", "too long")
		track(span, "response", "submit", err)
		return nil, "", err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range []struct {
			kind domain.EntityKind
			id   int64
		}{
			{domain.KindSurvey, surveyID},
			{domain.KindQuestion, questionID},
			{domain.KindRespondent, respondentID},
		} {
			if err := requireEntity(ctx, tx, ref.kind, ref.id); err != nil {
				return err
			}
		}
		var err error
		out, outcome, err = upsertResponse(ctx, tx, surveyID, questionID, respondentID, text)
		return err
	})
	if err != nil {
		err = storageErr(err)
		track(span, "response", "submit", err)
		return nil, "", err
	}

	s.Catalog.PutResponse(*out)
	trackOutcome("response", "submit", string(outcome))
	span.SetAttributes(attribute.String("response.outcome", string(outcome)))
	zerolog.Ctx(ctx).Debug().
		Uint("response_id", out.ID).
		Str("outcome", string(outcome)).
		Msg("response submitted")
	return out, outcome, nil
}

// SubmitAll records a respondent's answers to every question assigned to
// the survey in one transaction. Answers keyed by unassigned questions are
// ignored; blank answers are skipped. Results follow question order.
func (s *ResponseService) SubmitAll(ctx context.Context, surveyID, respondentID int64, answers map[int64]string) (results []SubmitResult, err error) {
	ctx, span := tracer("ResponseService").Start(ctx, "SubmitAll",
		trace.WithAttributes(
			attribute.Int64("survey.id", surveyID),
			attribute.Int64("respondent.id", respondentID),
			attribute.Int("answers", len(answers)),
		))
	defer func() { track(span, "response", "submit_all", err); span.End() }()

	type pending struct {
		questionID int64
		text       string
	}
	var todo []pending
	results = []SubmitResult{}
	for _, q := range s.Catalog.QuestionsOf(surveyID) {
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		if isBlank(raw) {
			results = append(results, SubmitResult{QuestionID: q.ID, Outcome: Skipped})
			continue
		}
		if textLen(raw) > maxTextRunes {
			return nil, invalid("response", "too long")
		}
		todo = append(todo, pending{questionID: q.ID, text: raw})
	}

	written := make([]SubmitResult, 0, len(todo))
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireEntity(ctx, tx, domain.KindSurvey, surveyID); err != nil {
			return err
		}
		if err := requireEntity(ctx, tx, domain.KindRespondent, respondentID); err != nil {
			return err
		}
		for _, p := range todo {
			if err := requireEntity(ctx, tx, domain.KindQuestion, p.questionID); err != nil {
				return err
			}
			r, outcome, err := upsertResponse(ctx, tx, surveyID, p.questionID, respondentID, p.text)
			if err != nil {
				return err
			}
			written = append(written, SubmitResult{QuestionID: p.questionID, Outcome: outcome, Response: r})
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}

	for _, w := range written {
		s.Catalog.PutResponse(*w.Response)
		trackOutcome("response", "submit", string(w.Outcome))
	}
	results = append(results, written...)
	zerolog.Ctx(ctx).Debug().
		Int64("survey_id", surveyID).
		Int64("respondent_id", respondentID).
		Int("written", len(written)).
		Msg("responses submitted")
	return results, nil
}

// ResponsesForQuestion lists the answers to one question of an existing
// survey.
func (s *ResponseService) ResponsesForQuestion(ctx context.Context, surveyID, questionID int64) ([]catalog.ResponseView, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	return s.Catalog.ResponsesForQuestion(surveyID, questionID), nil
}

// Response returns the stored answer for the triple. A missing survey or a
// triple without an answer yields a NotFoundError.
func (s *ResponseService) Response(ctx context.Context, surveyID, questionID, respondentID int64) (*domain.Response, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	r, ok := s.Catalog.FindResponse(surveyID, questionID, respondentID)
	if !ok {
		return nil, &NotFoundError{Kind: "response", ID: fmt.Sprintf("%d/%d/%d", surveyID, questionID, respondentID)}
	}
	return &r, nil
}

// RespondentsEligibleForResponse lists who may answer an existing survey.
func (s *ResponseService) RespondentsEligibleForResponse(ctx context.Context, surveyID int64) ([]domain.Respondent, error) {
	if _, ok := s.Catalog.Survey(surveyID); !ok {
		return nil, notFound(domain.KindSurvey, surveyID)
	}
	return s.Catalog.RespondentsEligibleForResponse(surveyID), nil
}

// upsertResponse overwrites the stored response for the triple or inserts a
// new one. The insert runs under a savepoint; losing a race on the unique
// index falls back to updating the winner's row.
func upsertResponse(ctx context.Context, tx *gorm.DB, surveyID, questionID, respondentID int64, text string) (*domain.Response, SubmitOutcome, error) {
	existing, err := repo.FindResponse(ctx, tx, surveyID, questionID, respondentID)
	switch {
	case err == nil:
		r, err := repo.UpdateResponseText(ctx, tx, existing.ID, text)
		return r, Updated, err
	case !errors.Is(err, repo.ErrNotFound):
		return nil, "", err
	}

	var created *domain.Response
	err = tx.Transaction(func(sp *gorm.DB) error {
		r, err := repo.CreateResponse(ctx, sp, surveyID, questionID, respondentID, text)
		created = r
		return err
	})
	if err == nil {
		return created, Created, nil
	}
	if !errors.Is(err, repo.ErrDuplicate) {
		return nil, "", err
	}
	existing, err = repo.FindResponse(ctx, tx, surveyID, questionID, respondentID)
	if err != nil {
		return nil, "", err
	}
	r, err := repo.UpdateResponseText(ctx, tx, existing.ID, text)
	return r, Updated, err
}
