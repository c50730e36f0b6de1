package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

func seeded() *Catalog {
	c := New()
	c.Load(Snapshot{
		Surveys:     []domain.Survey{{ID: 1000, Name: "Q1 Feedback"}, {ID: 1001, Name: "Onboarding"}},
		Questions:   []domain.Question{{ID: 2000, Text: "How satisfied?"}, {ID: 2001, Text: "Anything else?"}},
		Respondents: []domain.Respondent{{ID: 3000, FullName: "Alice", Email: "alice@example.com"}, {ID: 3001, FullName: "Bob", Email: "bob@example.com"}},
		SurveyQuestions: []domain.SurveyQuestion{
			{ID: 1, SurveyID: 1000, QuestionID: 2001},
			{ID: 2, SurveyID: 1000, QuestionID: 2000},
			{ID: 3, SurveyID: 1001, QuestionID: 2000},
		},
		SurveyRespondents: []domain.SurveyRespondent{
			{ID: 1, SurveyID: 1000, RespondentID: 3000},
			{ID: 2, SurveyID: 1001, RespondentID: 3001},
		},
		Responses: []domain.Response{
			{ID: 1, SurveyID: 1000, QuestionID: 2000, RespondentID: 3000, Text: "Very satisfied"},
			{ID: 2, SurveyID: 1001, QuestionID: 2000, RespondentID: 3001, Text: "Meh"},
		},
	})
	return c
}

func TestCatalog_AddReplaceRemoveSurvey(t *testing.T) {
	c := New()
	v0 := c.Version()

	c.AddSurvey(domain.Survey{ID: 1, Name: "a"})
	c.AddSurvey(domain.Survey{ID: 2, Name: "b"})
	assert.Greater(t, c.Version(), v0)

	require.True(t, c.ReplaceSurvey(domain.Survey{ID: 1, Name: "a2"}))
	assert.False(t, c.ReplaceSurvey(domain.Survey{ID: 99, Name: "ghost"}))

	got := c.Surveys()
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].Name)
	assert.Equal(t, int64(2), got[1].ID)

	c.RemoveSurvey(1)
	c.RemoveSurvey(1) // idempotent
	_, ok := c.Survey(1)
	assert.False(t, ok)
	assert.Len(t, c.Surveys(), 1)
}

func TestCatalog_ReadersReturnCopies(t *testing.T) {
	c := seeded()
	list := c.Surveys()
	list[0].Name = "mutated"
	s, ok := c.Survey(1000)
	require.True(t, ok)
	assert.Equal(t, "Q1 Feedback", s.Name)
}

func TestCatalog_RemoveQuestion_Cascades(t *testing.T) {
	c := seeded()
	c.RemoveQuestion(2000)

	assert.Equal(t, []domain.Question{{ID: 2001, Text: "Anything else?"}}, c.QuestionsOf(1000))
	assert.Empty(t, c.QuestionsOf(1001))
	assert.Empty(t, c.ResponsesForQuestion(1000, 2000))
	assert.Empty(t, c.Responses())
	// Respondent links are untouched.
	assert.Len(t, c.SurveyRespondentLinks(1000), 1)
}

func TestCatalog_RemoveSurvey_Cascades(t *testing.T) {
	c := seeded()
	c.RemoveSurvey(1000)

	assert.Empty(t, c.SurveyQuestionLinks(1000))
	assert.Empty(t, c.SurveyRespondentLinks(1000))
	assert.Len(t, c.Responses(), 1)
	// Entities themselves survive.
	assert.Len(t, c.Questions(), 2)
	assert.Len(t, c.Respondents(), 2)
	assert.Len(t, c.QuestionsOf(1001), 1)
}

func TestCatalog_RemoveRespondent_Cascades(t *testing.T) {
	c := seeded()
	c.RemoveRespondent(3000)

	assert.Empty(t, c.RespondentsOf(1000))
	assert.Empty(t, c.ResponsesForQuestion(1000, 2000))
	assert.Len(t, c.ResponsesForQuestion(1001, 2000), 1)
}

func TestCatalog_AddLinks_IgnoresDuplicatePairs(t *testing.T) {
	c := seeded()
	v := c.Version()
	c.AddSurveyQuestion(domain.SurveyQuestion{ID: 99, SurveyID: 1000, QuestionID: 2000})
	c.AddSurveyRespondent(domain.SurveyRespondent{ID: 99, SurveyID: 1000, RespondentID: 3000})
	assert.Equal(t, v, c.Version())
	assert.Len(t, c.SurveyQuestionLinks(1000), 2)
	assert.Len(t, c.SurveyRespondentLinks(1000), 1)

	c.AddSurveyRespondent(domain.SurveyRespondent{ID: 3, SurveyID: 1000, RespondentID: 3001})
	assert.Len(t, c.RespondentsOf(1000), 2)
}

func TestCatalog_PutResponse_ReplacesByID(t *testing.T) {
	c := seeded()
	c.PutResponse(domain.Response{ID: 1, SurveyID: 1000, QuestionID: 2000, RespondentID: 3000, Text: "Neutral"})
	views := c.ResponsesForQuestion(1000, 2000)
	require.Len(t, views, 1)
	assert.Equal(t, uint(1), views[0].ID)
	assert.Equal(t, "Neutral", views[0].Text)

	c.PutResponse(domain.Response{ID: 7, SurveyID: 1000, QuestionID: 2000, RespondentID: 3001, Text: "Fine"})
	assert.Len(t, c.ResponsesForQuestion(1000, 2000), 2)

	r, ok := c.FindResponse(1000, 2000, 3001)
	require.True(t, ok)
	assert.Equal(t, uint(7), r.ID)
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			c.AddSurvey(domain.Survey{ID: id, Name: "s"})
		}(int64(i + 1))
		go func() {
			defer wg.Done()
			_ = c.Surveys()
			_ = c.QuestionsOf(1)
		}()
	}
	wg.Wait()
	assert.Len(t, c.Surveys(), 16)
}
