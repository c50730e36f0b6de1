// Package catalog holds the in-memory mirror of every persisted collection
// and the read-only projections computed from it.
//
// The mirror is updated only by the service layer, and only after the
// corresponding database transaction has committed. Readers always receive
// copies, so a caller can never mutate mirrored state by accident.
package catalog

import (
	"sync"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// Snapshot is a full copy of every mirrored collection, each in insertion
// order.
type Snapshot struct {
	Surveys           []domain.Survey
	Respondents       []domain.Respondent
	Questions         []domain.Question
	SurveyRespondents []domain.SurveyRespondent
	SurveyQuestions   []domain.SurveyQuestion
	Responses         []domain.Response
}

// Catalog is the mirror. The zero value is ready to use and safe for
// concurrent use.
type Catalog struct {
	mu sync.RWMutex

	surveys           []domain.Survey
	respondents       []domain.Respondent
	questions         []domain.Question
	surveyRespondents []domain.SurveyRespondent
	surveyQuestions   []domain.SurveyQuestion
	responses         []domain.Response

	// version increases on every mutation; used for weak ETags.
	version uint64
}

// New returns an empty catalog.
func New() *Catalog { return &Catalog{} }

// Load replaces the whole mirror with s.
func (c *Catalog) Load(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surveys = clone(s.Surveys)
	c.respondents = clone(s.Respondents)
	c.questions = clone(s.Questions)
	c.surveyRespondents = clone(s.SurveyRespondents)
	c.surveyQuestions = clone(s.SurveyQuestions)
	c.responses = clone(s.Responses)
	c.version++
}

// Snapshot returns a copy of every collection.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Surveys:           clone(c.surveys),
		Respondents:       clone(c.respondents),
		Questions:         clone(c.questions),
		SurveyRespondents: clone(c.surveyRespondents),
		SurveyQuestions:   clone(c.surveyQuestions),
		Responses:         clone(c.responses),
	}
}

// Version reports the mutation counter.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// --- surveys ---

// AddSurvey appends s.
func (c *Catalog) AddSurvey(s domain.Survey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surveys = append(c.surveys, s)
	c.version++
}

// ReplaceSurvey swaps the survey with the same id in place. It reports
// false when no such survey is mirrored.
func (c *Catalog) ReplaceSurvey(s domain.Survey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.surveys {
		if c.surveys[i].ID == s.ID {
			c.surveys[i] = s
			c.version++
			return true
		}
	}
	return false
}

// RemoveSurvey drops the survey plus every link and response that
// references it.
func (c *Catalog) RemoveSurvey(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surveys = without(c.surveys, func(s domain.Survey) bool { return s.ID == id })
	c.surveyRespondents = without(c.surveyRespondents, func(l domain.SurveyRespondent) bool { return l.SurveyID == id })
	c.surveyQuestions = without(c.surveyQuestions, func(l domain.SurveyQuestion) bool { return l.SurveyID == id })
	c.responses = without(c.responses, func(r domain.Response) bool { return r.SurveyID == id })
	c.version++
}

// Surveys returns every survey in insertion order.
func (c *Catalog) Surveys() []domain.Survey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.surveys)
}

// Survey looks a survey up by id.
func (c *Catalog) Survey(id int64) (domain.Survey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.surveys, func(s domain.Survey) bool { return s.ID == id })
}

// --- respondents ---

// AddRespondent appends r.
func (c *Catalog) AddRespondent(r domain.Respondent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.respondents = append(c.respondents, r)
	c.version++
}

// ReplaceRespondent swaps the respondent with the same id in place.
func (c *Catalog) ReplaceRespondent(r domain.Respondent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.respondents {
		if c.respondents[i].ID == r.ID {
			c.respondents[i] = r
			c.version++
			return true
		}
	}
	return false
}

// RemoveRespondent drops the respondent plus its survey links and responses.
func (c *Catalog) RemoveRespondent(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.respondents = without(c.respondents, func(r domain.Respondent) bool { return r.ID == id })
	c.surveyRespondents = without(c.surveyRespondents, func(l domain.SurveyRespondent) bool { return l.RespondentID == id })
	c.responses = without(c.responses, func(r domain.Response) bool { return r.RespondentID == id })
	c.version++
}

// Respondents returns every respondent in insertion order.
func (c *Catalog) Respondents() []domain.Respondent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.respondents)
}

// Respondent looks a respondent up by id.
func (c *Catalog) Respondent(id int64) (domain.Respondent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.respondents, func(r domain.Respondent) bool { return r.ID == id })
}

// --- questions ---

// AddQuestion appends q.
func (c *Catalog) AddQuestion(q domain.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, q)
	c.version++
}

// ReplaceQuestion swaps the question with the same id in place.
func (c *Catalog) ReplaceQuestion(q domain.Question) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.questions {
		if c.questions[i].ID == q.ID {
			c.questions[i] = q
			c.version++
			return true
		}
	}
	return false
}

// RemoveQuestion drops the question plus its survey links and responses.
func (c *Catalog) RemoveQuestion(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = without(c.questions, func(q domain.Question) bool { return q.ID == id })
	c.surveyQuestions = without(c.surveyQuestions, func(l domain.SurveyQuestion) bool { return l.QuestionID == id })
	c.responses = without(c.responses, func(r domain.Response) bool { return r.QuestionID == id })
	c.version++
}

// Questions returns every question in insertion order.
func (c *Catalog) Questions() []domain.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.questions)
}

// Question looks a question up by id.
func (c *Catalog) Question(id int64) (domain.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.questions, func(q domain.Question) bool { return q.ID == id })
}

// --- links and responses ---

// AddSurveyRespondent appends l unless a link for the same pair is already
// mirrored.
func (c *Catalog) AddSurveyRespondent(l domain.SurveyRespondent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := find(c.surveyRespondents, func(x domain.SurveyRespondent) bool {
		return x.SurveyID == l.SurveyID && x.RespondentID == l.RespondentID
	}); ok {
		return
	}
	c.surveyRespondents = append(c.surveyRespondents, l)
	c.version++
}

// AddSurveyQuestion appends l unless a link for the same pair is already
// mirrored.
func (c *Catalog) AddSurveyQuestion(l domain.SurveyQuestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := find(c.surveyQuestions, func(x domain.SurveyQuestion) bool {
		return x.SurveyID == l.SurveyID && x.QuestionID == l.QuestionID
	}); ok {
		return
	}
	c.surveyQuestions = append(c.surveyQuestions, l)
	c.version++
}

// PutResponse replaces the mirrored response with the same id, or appends r
// when it is new.
func (c *Catalog) PutResponse(r domain.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	for i := range c.responses {
		if c.responses[i].ID == r.ID {
			c.responses[i] = r
			return
		}
	}
	c.responses = append(c.responses, r)
}

// Responses returns every response in insertion order.
func (c *Catalog) Responses() []domain.Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.responses)
}

// --- helpers ---

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func find[T any](in []T, match func(T) bool) (T, bool) {
	for _, v := range in {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// without filters in place, preserving order.
func without[T any](in []T, drop func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	var zero T
	for i := len(out); i < len(in); i++ {
		in[i] = zero
	}
	return out
}
