// Survey HTTP handlers.
//
//   - GET    /surveys        (list, paginated, ETag support)
//   - POST   /surveys        (create, Idempotency-Key support)
//   - GET    /surveys/{id}   (detail with assigned respondents and questions)
//   - PUT    /surveys/{id}   (rename)
//   - DELETE /surveys/{id}   (delete, cascades into links and responses)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// SurveyRequest is the JSON payload for creating or renaming a survey.
type SurveyRequest struct {
	Name string `json:"name" binding:"required,notblank" example:"Customer satisfaction 2026"`
}

// ListSurveysResponse wraps a page of surveys and pagination information.
type ListSurveysResponse struct {
	Surveys    []domain.Survey `json:"surveys"`
	Pagination Pagination      `json:"pagination"`
}

// ListSurveys godoc
// @ID          listSurveys
// @Summary     List surveys (paginated)
// @Description Returns surveys in creation order. Supports weak ETag via If-None-Match.
// @Tags        Surveys
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListSurveysResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /surveys [get]
func (h *Handlers) ListSurveys(c *gin.Context) {
	if h.notModified(c, "surveys") {
		return
	}
	items, err := h.surveys.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	items, p := paginate(c, items)
	ok(c, http.StatusOK, ListSurveysResponse{Surveys: items, Pagination: p})
}

// CreateSurvey godoc
// @ID          createSurvey
// @Summary     Create a survey
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body  body  handlers.SurveyRequest  true  "Survey"
// @Success     201  {object}  domain.Survey
// @Success     200  {object}  domain.Survey  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /surveys [post]
func (h *Handlers) CreateSurvey(c *gin.Context) {
	if h.replayCreate(c, func(ctx context.Context, id int64) (any, error) { return h.surveys.Get(ctx, id) }) {
		return
	}
	var req SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	sv, err := h.surveys.Create(c.Request.Context(), req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	h.rememberCreate(c, sv.ID)
	ok(c, http.StatusCreated, sv)
}

// GetSurvey godoc
// @ID          getSurvey
// @Summary     Survey detail
// @Description Returns the survey with its assigned respondents and questions.
// @Tags        Surveys
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Survey ID"
// @Success     200  {object}  catalog.SurveyDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Survey not found"
// @Router      /surveys/{id} [get]
func (h *Handlers) GetSurvey(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	d, err := h.surveys.Detail(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// UpdateSurvey godoc
// @ID          updateSurvey
// @Summary     Rename a survey
// @Tags        Surveys
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                     true  "Survey ID"
// @Param       body  body  handlers.SurveyRequest  true  "New name"
// @Success     200  {object}  domain.Survey
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Survey not found"
// @Router      /surveys/{id} [put]
func (h *Handlers) UpdateSurvey(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	var req SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	sv, err := h.surveys.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sv)
}

// DeleteSurvey godoc
// @ID          deleteSurvey
// @Summary     Delete a survey
// @Description Removes the survey with its links and responses. Unknown ids are a no-op.
// @Tags        Surveys
// @Security    BearerAuth
// @Param       id  path  int  true  "Survey ID"
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /surveys/{id} [delete]
func (h *Handlers) DeleteSurvey(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	if err := h.surveys.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
