// Response HTTP handlers.
//
//   - PUT  /surveys/{id}/questions/{questionId}/responses/{respondentId}
//     (record one answer; overwrites the previous one)
//   - POST /surveys/{id}/responses
//     (record a batch of answers for one respondent, all or nothing)
//   - GET  /surveys/{id}/questions/{questionId}/responses
//     (every answer to one question, with respondent display info)
//   - GET  /surveys/{id}/questions/{questionId}/responses/{respondentId}
//     (one stored answer)
//
// A blank answer is skipped: nothing is written and an existing answer is
// left as it was.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// SubmitResponseRequest carries one free-text answer. An empty string is
// accepted and skipped.
type SubmitResponseRequest struct {
	Response *string `json:"response" binding:"required" example:"Very likely"`
}

// SubmitResponsesRequest carries a respondent's answers keyed by question id.
type SubmitResponsesRequest struct {
	RespondentID int64            `json:"respondent_id" binding:"required,gt=0" example:"1700000000000"`
	Answers      map[int64]string `json:"answers"       binding:"required"`
}

// SubmitResponsesResponse reports what happened to each assigned question.
type SubmitResponsesResponse struct {
	SurveyID     int64                   `json:"survey_id"`
	RespondentID int64                   `json:"respondent_id"`
	Results      []services.SubmitResult `json:"results"`
}

// QuestionResponsesResponse lists the answers to one question.
type QuestionResponsesResponse struct {
	SurveyID   int64                  `json:"survey_id"`
	QuestionID int64                  `json:"question_id"`
	Responses  []catalog.ResponseView `json:"responses"`
}

// SubmitResponse godoc
// @ID          submitResponse
// @Summary     Record an answer
// @Description Creates or overwrites the answer of a respondent to a survey question. Blank answers are skipped.
// @Tags        Responses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id            path  int  true  "Survey ID"
// @Param       questionId    path  int  true  "Question ID"
// @Param       respondentId  path  int  true  "Respondent ID"
// @Param       body  body  handlers.SubmitResponseRequest  true  "Answer"
// @Success     201  {object}  services.SubmitResult  "Created"
// @Success     200  {object}  services.SubmitResult  "Updated or skipped"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Survey, question or respondent not found"
// @Router      /surveys/{id}/questions/{questionId}/responses/{respondentId} [put]
func (h *Handlers) SubmitResponse(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	qid, good := pathID(c, "questionId")
	if !good {
		return
	}
	rid, good := pathID(c, "respondentId")
	if !good {
		return
	}
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Response == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "response required")
		return
	}
	resp, outcome, err := h.responses.Submit(c.Request.Context(), sid, qid, rid, *req.Response)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, createdStatus(outcome == services.Created), services.SubmitResult{
		QuestionID: qid,
		Outcome:    outcome,
		Response:   resp,
	})
}

// SubmitResponses godoc
// @ID          submitResponses
// @Summary     Record a batch of answers
// @Description Records answers for every question assigned to the survey. Blank answers are skipped and unassigned question ids ignored. Either every answer is stored or none.
// @Tags        Responses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                              true  "Survey ID"
// @Param       body  body  handlers.SubmitResponsesRequest  true  "Answers"
// @Success     200  {object}  handlers.SubmitResponsesResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Survey or respondent not found"
// @Router      /surveys/{id}/responses [post]
func (h *Handlers) SubmitResponses(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	var req SubmitResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "respondent_id and answers required")
		return
	}
	results, err := h.responses.SubmitAll(c.Request.Context(), sid, req.RespondentID, req.Answers)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, SubmitResponsesResponse{SurveyID: sid, RespondentID: req.RespondentID, Results: results})
}

// ListQuestionResponses godoc
// @ID          listQuestionResponses
// @Summary     Answers to a question
// @Description Lists every answer recorded for the question within the survey. Answers from deleted respondents show "Unknown respondent".
// @Tags        Responses
// @Produce     json
// @Security    BearerAuth
// @Param       id          path  int  true  "Survey ID"
// @Param       questionId  path  int  true  "Question ID"
// @Success     200  {object}  handlers.QuestionResponsesResponse
// @Failure     404  {object}  handlers.ErrorResponse "Survey not found"
// @Router      /surveys/{id}/questions/{questionId}/responses [get]
func (h *Handlers) ListQuestionResponses(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	qid, good := pathID(c, "questionId")
	if !good {
		return
	}
	items, err := h.responses.ResponsesForQuestion(c.Request.Context(), sid, qid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, QuestionResponsesResponse{SurveyID: sid, QuestionID: qid, Responses: items})
}

// GetResponse godoc
// @ID          getResponse
// @Summary     One answer
// @Tags        Responses
// @Produce     json
// @Security    BearerAuth
// @Param       id            path  int  true  "Survey ID"
// @Param       questionId    path  int  true  "Question ID"
// @Param       respondentId  path  int  true  "Respondent ID"
// @Success     200  {object}  domain.Response
// @Failure     404  {object}  handlers.ErrorResponse "Survey or answer not found"
// @Router      /surveys/{id}/questions/{questionId}/responses/{respondentId} [get]
func (h *Handlers) GetResponse(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	qid, good := pathID(c, "questionId")
	if !good {
		return
	}
	rid, good := pathID(c, "respondentId")
	if !good {
		return
	}
	r, err := h.responses.Response(c.Request.Context(), sid, qid, rid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}
