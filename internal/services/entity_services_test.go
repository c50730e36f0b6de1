package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/domain"
)

func TestSurveyService_CreateListRoundTrip(t *testing.T) {
	s := newStack(t)

	const name = "  Q1   Feedback "
	sv, err := s.surveys.Create(bg, name)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sv.ID)
	assert.Equal(t, name, sv.Name)

	list, err := s.surveys.List(bg)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sv.ID, list[0].ID)
	assert.Equal(t, name, list[0].Name)

	got, err := s.surveys.Get(bg, 1000)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	var stored domain.Survey
	require.NoError(t, s.db.First(&stored, sv.ID).Error)
	assert.Equal(t, name, stored.Name)
	assert.Equal(t, int64(1), count(t, s.db, &domain.Survey{}))
}

func TestEntityServices_BlankFieldsNeverPersist(t *testing.T) {
	s := newStack(t)
	v0 := s.cat.Version()

	_, err := s.surveys.Create(bg, " \t\n")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = s.questions.Create(bg, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.respondents.Create(bg, "Alice", "   ")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)

	_, err = s.respondents.Create(bg, "", "a@x.com")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name", ve.Field)

	assert.Equal(t, v0, s.cat.Version())
	assert.Empty(t, s.cat.Surveys())
	assert.Empty(t, s.cat.Questions())
	assert.Empty(t, s.cat.Respondents())
	assert.Zero(t, count(t, s.db, &domain.Survey{}))
	assert.Zero(t, count(t, s.db, &domain.Question{}))
	assert.Zero(t, count(t, s.db, &domain.Respondent{}))
}

func TestEntityServices_TooLong(t *testing.T) {
	s := newStack(t)
	_, err := s.surveys.Create(bg, strings.Repeat("x", maxNameRunes+1))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.questions.Create(bg, strings.Repeat("é", maxTextRunes+1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEntityServices_StoreInputVerbatim(t *testing.T) {
	s := newStack(t)
	r, err := s.respondents.Create(bg, "Alice  Smith", "Alice@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "Alice  Smith", r.FullName)
	assert.Equal(t, "Alice@Example.COM", r.Email)

	mirrored, ok := s.cat.Respondent(r.ID)
	require.True(t, ok)
	assert.Equal(t, *r, mirrored)

	var stored domain.Respondent
	require.NoError(t, s.db.First(&stored, r.ID).Error)
	assert.Equal(t, "Alice@Example.COM", stored.Email)

	// Multi-line text and decomposed accents survive untouched.
	text := "Rate the caf" + "e\u0301:\n  1 = poor\n  5 = great"
	q, err := s.questions.Create(bg, text)
	require.NoError(t, err)
	qs, err := s.questions.List(bg)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, text, qs[0].Text)

	q, err = s.questions.Update(bg, q.ID, " edited\n")
	require.NoError(t, err)
	got, err := s.questions.Get(bg, q.ID)
	require.NoError(t, err)
	assert.Equal(t, " edited\n", got.Text)
}

func TestEntityServices_Update(t *testing.T) {
	s := newStack(t)
	sv, err := s.surveys.Create(bg, "Old")
	require.NoError(t, err)
	q, err := s.questions.Create(bg, "How?")
	require.NoError(t, err)
	r, err := s.respondents.Create(bg, "Al", "al@x.com")
	require.NoError(t, err)

	sv2, err := s.surveys.Update(bg, sv.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, sv.ID, sv2.ID)
	assert.Equal(t, "New", sv2.Name)

	_, err = s.questions.Update(bg, q.ID, "Why?")
	require.NoError(t, err)
	_, err = s.respondents.Update(bg, r.ID, "Alice", "ALICE@x.com")
	require.NoError(t, err)

	got, _ := s.cat.Survey(sv.ID)
	assert.Equal(t, "New", got.Name)
	gq, _ := s.cat.Question(q.ID)
	assert.Equal(t, "Why?", gq.Text)
	gr, _ := s.cat.Respondent(r.ID)
	assert.Equal(t, "Alice", gr.FullName)
	assert.Equal(t, "alice@x.com", gr.Email)
	assert.Len(t, s.cat.Surveys(), 1)
}

func TestEntityServices_UpdateMissing(t *testing.T) {
	s := newStack(t)

	_, err := s.surveys.Update(bg, 42, "x")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "survey", nf.Kind)
	assert.Equal(t, "42", nf.ID)

	_, err = s.questions.Update(bg, 42, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.respondents.Update(bg, 42, "x", "y@z")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, s.cat.Surveys())
	assert.Zero(t, count(t, s.db, &domain.Survey{}))
}

func TestEntityServices_UpdateBlankRejectedBeforeLookup(t *testing.T) {
	s := newStack(t)
	sv, err := s.surveys.Create(bg, "Keep")
	require.NoError(t, err)

	_, err = s.surveys.Update(bg, sv.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	got, _ := s.cat.Survey(sv.ID)
	assert.Equal(t, "Keep", got.Name)
}

func TestEntityServices_GetMissing(t *testing.T) {
	s := newStack(t)
	_, err := s.surveys.Get(bg, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.respondents.Get(bg, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.questions.Get(bg, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.surveys.Detail(bg, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntityServices_DeleteUnknownIsNoop(t *testing.T) {
	s := newStack(t)
	require.NoError(t, s.surveys.Delete(bg, 7))
	require.NoError(t, s.respondents.Delete(bg, 7))
	require.NoError(t, s.questions.Delete(bg, 7))
}

func TestEntityServices_ListPreservesInsertionOrder(t *testing.T) {
	s := newStack(t)
	for _, n := range []string{"c", "a", "b"} {
		_, err := s.surveys.Create(bg, n)
		require.NoError(t, err)
	}
	list, err := s.surveys.List(bg)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

// populate builds one survey with one question, one respondent, both links
// and one response.
func populate(t *testing.T, s *stack) (sv *domain.Survey, q *domain.Question, r *domain.Respondent) {
	t.Helper()
	var err error
	sv, err = s.surveys.Create(bg, "Q1 Feedback")
	require.NoError(t, err)
	q, err = s.questions.Create(bg, "How satisfied?")
	require.NoError(t, err)
	r, err = s.respondents.Create(bg, "Alice", "alice@x.com")
	require.NoError(t, err)
	_, _, err = s.links.AssignQuestion(bg, sv.ID, q.ID)
	require.NoError(t, err)
	_, _, err = s.links.AssignRespondent(bg, sv.ID, r.ID)
	require.NoError(t, err)
	_, _, err = s.responses.Submit(bg, sv.ID, q.ID, r.ID, "Very satisfied")
	require.NoError(t, err)
	return sv, q, r
}

func assertNoDangling(t *testing.T, s *stack) {
	t.Helper()
	snap := s.cat.Snapshot()
	has := func(kind domain.EntityKind, id int64) bool {
		switch kind {
		case domain.KindSurvey:
			_, ok := s.cat.Survey(id)
			return ok
		case domain.KindQuestion:
			_, ok := s.cat.Question(id)
			return ok
		default:
			_, ok := s.cat.Respondent(id)
			return ok
		}
	}
	for _, l := range snap.SurveyRespondents {
		assert.True(t, has(domain.KindSurvey, l.SurveyID) && has(domain.KindRespondent, l.RespondentID), "dangling link %+v", l)
	}
	for _, l := range snap.SurveyQuestions {
		assert.True(t, has(domain.KindSurvey, l.SurveyID) && has(domain.KindQuestion, l.QuestionID), "dangling link %+v", l)
	}
	for _, r := range snap.Responses {
		assert.True(t, has(domain.KindSurvey, r.SurveyID) && has(domain.KindQuestion, r.QuestionID) && has(domain.KindRespondent, r.RespondentID), "dangling response %+v", r)
	}
	assert.Equal(t, count(t, s.db, &domain.SurveyRespondent{}), int64(len(snap.SurveyRespondents)))
	assert.Equal(t, count(t, s.db, &domain.SurveyQuestion{}), int64(len(snap.SurveyQuestions)))
	assert.Equal(t, count(t, s.db, &domain.Response{}), int64(len(snap.Responses)))
}

func TestEntityServices_DeleteCascades(t *testing.T) {
	cases := []struct {
		name string
		del  func(s *stack, sv *domain.Survey, q *domain.Question, r *domain.Respondent) error
	}{
		{"survey", func(s *stack, sv *domain.Survey, _ *domain.Question, _ *domain.Respondent) error {
			return s.surveys.Delete(bg, sv.ID)
		}},
		{"question", func(s *stack, _ *domain.Survey, q *domain.Question, _ *domain.Respondent) error {
			return s.questions.Delete(bg, q.ID)
		}},
		{"respondent", func(s *stack, _ *domain.Survey, _ *domain.Question, r *domain.Respondent) error {
			return s.respondents.Delete(bg, r.ID)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStack(t)
			sv, q, r := populate(t, s)
			require.NoError(t, tc.del(s, sv, q, r))
			assertNoDangling(t, s)
			assert.Zero(t, count(t, s.db, &domain.Response{}))
			assert.Empty(t, s.cat.Responses())
		})
	}
}

func TestSurveyService_Detail(t *testing.T) {
	s := newStack(t)
	sv, q, r := populate(t, s)

	d, err := s.surveys.Detail(bg, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, sv.ID, d.Survey.ID)
	require.Len(t, d.Respondents, 1)
	assert.Equal(t, r.ID, d.Respondents[0].ID)
	require.Len(t, d.Questions, 1)
	assert.Equal(t, q.ID, d.Questions[0].ID)
}

func TestEntityServices_StorageFailureWrapped(t *testing.T) {
	s := newStack(t)
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = s.surveys.Create(bg, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)
	assert.Empty(t, s.cat.Surveys())

	err = s.questions.Delete(bg, 1)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestLoadCatalogAndSeedClock(t *testing.T) {
	s := newStack(t)
	sv, q, r := populate(t, s)

	fresh := catalog.New()
	require.NoError(t, LoadCatalog(bg, s.db, fresh))
	assert.Equal(t, len(s.cat.Surveys()), len(fresh.Surveys()))
	assert.Len(t, fresh.QuestionsOf(sv.ID), 1)
	assert.Len(t, fresh.RespondentsOf(sv.ID), 1)
	views := fresh.ResponsesForQuestion(sv.ID, q.ID)
	require.Len(t, views, 1)
	assert.Equal(t, r.FullName, views[0].RespondentName)

	clock := NewClock(0)
	clock.now = func() time.Time { return time.Unix(0, 0) }
	require.NoError(t, SeedClock(bg, s.db, clock))
	assert.Equal(t, r.ID+1, clock.Next())
}
