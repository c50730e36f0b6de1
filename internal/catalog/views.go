package catalog

import "github.com/tbourn/go-survey-backend/internal/domain"

// UnknownRespondent is the display name used when a response outlives the
// respondent it was attributed to.
const UnknownRespondent = "Unknown respondent"

// ResponseView is a response joined with its respondent's display info.
type ResponseView struct {
	ID              uint   `json:"id"`
	SurveyID        int64  `json:"survey_id"`
	QuestionID      int64  `json:"question_id"`
	RespondentID    int64  `json:"respondent_id"`
	RespondentName  string `json:"respondent_name"`
	RespondentEmail string `json:"respondent_email,omitempty"`
	Text            string `json:"response"`
}

// SurveyDetail is a survey together with everything assigned to it.
type SurveyDetail struct {
	Survey      domain.Survey       `json:"survey"`
	Respondents []domain.Respondent `json:"respondents"`
	Questions   []domain.Question   `json:"questions"`
}

// SurveyRespondentLinks returns the respondent links of one survey in
// insertion order.
func (c *Catalog) SurveyRespondentLinks(surveyID int64) []domain.SurveyRespondent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []domain.SurveyRespondent{}
	for _, l := range c.surveyRespondents {
		if l.SurveyID == surveyID {
			out = append(out, l)
		}
	}
	return out
}

// SurveyQuestionLinks returns the question links of one survey in insertion
// order.
func (c *Catalog) SurveyQuestionLinks(surveyID int64) []domain.SurveyQuestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []domain.SurveyQuestion{}
	for _, l := range c.surveyQuestions {
		if l.SurveyID == surveyID {
			out = append(out, l)
		}
	}
	return out
}

// RespondentsOf returns the respondents linked to the survey, in respondent
// insertion order.
func (c *Catalog) RespondentsOf(surveyID int64) []domain.Respondent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.respondentsOfLocked(surveyID)
}

// RespondentsEligibleForResponse lists who may answer the survey: exactly
// the assigned respondents.
func (c *Catalog) RespondentsEligibleForResponse(surveyID int64) []domain.Respondent {
	return c.RespondentsOf(surveyID)
}

// QuestionsOf returns the questions linked to the survey, in question
// insertion order.
func (c *Catalog) QuestionsOf(surveyID int64) []domain.Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.questionsOfLocked(surveyID)
}

// ResponsesForQuestion returns every response recorded for the
// (survey, question) pair in insertion order. Respondent display info comes
// from the respondent mirror and falls back to UnknownRespondent.
func (c *Catalog) ResponsesForQuestion(surveyID, questionID int64) []ResponseView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []ResponseView{}
	for _, r := range c.responses {
		if r.SurveyID != surveyID || r.QuestionID != questionID {
			continue
		}
		v := ResponseView{
			ID:             r.ID,
			SurveyID:       r.SurveyID,
			QuestionID:     r.QuestionID,
			RespondentID:   r.RespondentID,
			RespondentName: UnknownRespondent,
			Text:           r.Text,
		}
		if p, ok := find(c.respondents, func(x domain.Respondent) bool { return x.ID == r.RespondentID }); ok {
			v.RespondentName = p.FullName
			v.RespondentEmail = p.Email
		}
		out = append(out, v)
	}
	return out
}

// FindResponse returns the mirrored response for the triple, if any.
func (c *Catalog) FindResponse(surveyID, questionID, respondentID int64) (domain.Response, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(c.responses, func(r domain.Response) bool {
		return r.SurveyID == surveyID && r.QuestionID == questionID && r.RespondentID == respondentID
	})
}

// SurveyDetail projects one survey with its respondents and questions.
func (c *Catalog) SurveyDetail(surveyID int64) (SurveyDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := find(c.surveys, func(s domain.Survey) bool { return s.ID == surveyID })
	if !ok {
		return SurveyDetail{}, false
	}
	return SurveyDetail{
		Survey:      s,
		Respondents: c.respondentsOfLocked(surveyID),
		Questions:   c.questionsOfLocked(surveyID),
	}, true
}

func (c *Catalog) respondentsOfLocked(surveyID int64) []domain.Respondent {
	out := []domain.Respondent{}
	for _, r := range c.respondents {
		for _, l := range c.surveyRespondents {
			if l.SurveyID == surveyID && l.RespondentID == r.ID {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func (c *Catalog) questionsOfLocked(surveyID int64) []domain.Question {
	out := []domain.Question{}
	for _, q := range c.questions {
		for _, l := range c.surveyQuestions {
			if l.SurveyID == surveyID && l.QuestionID == q.ID {
				out = append(out, q)
				break
			}
		}
	}
	return out
}
