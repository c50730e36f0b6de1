// Survey association HTTP handlers.
//
//   - GET  /surveys/{id}/respondents   (respondents assigned to the survey)
//   - POST /surveys/{id}/respondents   (assign, idempotent)
//   - GET  /surveys/{id}/questions     (questions attached to the survey)
//   - POST /surveys/{id}/questions     (attach, idempotent)
//   - GET  /surveys/{id}/links         (raw link rows of both kinds)
//
// Assigning an existing pair answers 200 with the stored link; a new link
// answers 201.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// AssignRespondentRequest names the respondent to assign.
type AssignRespondentRequest struct {
	RespondentID int64 `json:"respondent_id" binding:"required,gt=0" example:"1700000000000"`
}

// AssignQuestionRequest names the question to attach.
type AssignQuestionRequest struct {
	QuestionID int64 `json:"question_id" binding:"required,gt=0" example:"1700000000000"`
}

// SurveyRespondentsResponse lists the respondents of one survey.
type SurveyRespondentsResponse struct {
	SurveyID    int64               `json:"survey_id"`
	Respondents []domain.Respondent `json:"respondents"`
}

// SurveyQuestionsResponse lists the questions of one survey.
type SurveyQuestionsResponse struct {
	SurveyID  int64             `json:"survey_id"`
	Questions []domain.Question `json:"questions"`
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// ListSurveyRespondents godoc
// @ID          listSurveyRespondents
// @Summary     Respondents of a survey
// @Tags        Surveys
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Survey ID"
// @Success     200  {object}  handlers.SurveyRespondentsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Survey not found"
// @Router      /surveys/{id}/respondents [get]
func (h *Handlers) ListSurveyRespondents(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	items, err := h.links.RespondentsOf(c.Request.Context(), sid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, SurveyRespondentsResponse{SurveyID: sid, Respondents: items})
}

// AssignRespondent godoc
// @ID          assignRespondent
// @Summary     Assign a respondent to a survey
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                               true  "Survey ID"
// @Param       body  body  handlers.AssignRespondentRequest  true  "Respondent"
// @Success     201  {object}  domain.SurveyRespondent  "Assigned"
// @Success     200  {object}  domain.SurveyRespondent  "Already assigned"
// @Failure     400  {object}  handlers.ErrorResponse   "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse   "Survey or respondent not found"
// @Router      /surveys/{id}/respondents [post]
func (h *Handlers) AssignRespondent(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	var req AssignRespondentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "respondent_id required")
		return
	}
	link, created, err := h.links.AssignRespondent(c.Request.Context(), sid, req.RespondentID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, createdStatus(created), link)
}

// ListSurveyQuestions godoc
// @ID          listSurveyQuestions
// @Summary     Questions of a survey
// @Tags        Surveys
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Survey ID"
// @Success     200  {object}  handlers.SurveyQuestionsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Survey not found"
// @Router      /surveys/{id}/questions [get]
func (h *Handlers) ListSurveyQuestions(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	items, err := h.links.QuestionsOf(c.Request.Context(), sid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, SurveyQuestionsResponse{SurveyID: sid, Questions: items})
}

// AssignQuestion godoc
// @ID          assignQuestion
// @Summary     Attach a question to a survey
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                             true  "Survey ID"
// @Param       body  body  handlers.AssignQuestionRequest  true  "Question"
// @Success     201  {object}  domain.SurveyQuestion  "Attached"
// @Success     200  {object}  domain.SurveyQuestion  "Already attached"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Survey or question not found"
// @Router      /surveys/{id}/questions [post]
func (h *Handlers) AssignQuestion(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	var req AssignQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question_id required")
		return
	}
	link, created, err := h.links.AssignQuestion(c.Request.Context(), sid, req.QuestionID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, createdStatus(created), link)
}

// ListSurveyLinks godoc
// @ID          listSurveyLinks
// @Summary     Link rows of a survey
// @Description Returns the survey's respondent and question links in the order they were made.
// @Tags        Surveys
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Survey ID"
// @Success     200  {object}  services.SurveyLinks
// @Failure     404  {object}  handlers.ErrorResponse  "Survey not found"
// @Router      /surveys/{id}/links [get]
func (h *Handlers) ListSurveyLinks(c *gin.Context) {
	sid, good := pathID(c, "id")
	if !good {
		return
	}
	links, err := h.links.Links(c.Request.Context(), sid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, links)
}
