// Respondent HTTP handlers.
//
//   - GET    /respondents        (list, paginated, ETag support)
//   - POST   /respondents        (create, Idempotency-Key support)
//   - GET    /respondents/{id}
//   - PUT    /respondents/{id}
//   - DELETE /respondents/{id}   (cascades into links and responses)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// RespondentRequest is the JSON payload for creating or updating a respondent.
type RespondentRequest struct {
	FullName string `json:"full_name" binding:"required,notblank" example:"Ada Lovelace"`
	Email    string `json:"email"     binding:"required,notblank" example:"ada@example.com"`
}

// ListRespondentsResponse wraps a page of respondents.
type ListRespondentsResponse struct {
	Respondents []domain.Respondent `json:"respondents"`
	Pagination  Pagination          `json:"pagination"`
}

// ListRespondents godoc
// @ID          listRespondents
// @Summary     List respondents (paginated)
// @Tags        Respondents
// @Produce     json
// @Security    BearerAuth
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListRespondentsResponse
// @Success     304  {string}  string "Not Modified"
// @Router      /respondents [get]
func (h *Handlers) ListRespondents(c *gin.Context) {
	if h.notModified(c, "respondents") {
		return
	}
	items, err := h.respondents.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	items, p := paginate(c, items)
	ok(c, http.StatusOK, ListRespondentsResponse{Respondents: items, Pagination: p})
}

// CreateRespondent godoc
// @ID          createRespondent
// @Summary     Create a respondent
// @Tags        Respondents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body  body  handlers.RespondentRequest  true  "Respondent"
// @Success     201  {object}  domain.Respondent
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /respondents [post]
func (h *Handlers) CreateRespondent(c *gin.Context) {
	if h.replayCreate(c, func(ctx context.Context, id int64) (any, error) { return h.respondents.Get(ctx, id) }) {
		return
	}
	var req RespondentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "full_name and email required")
		return
	}
	r, err := h.respondents.Create(c.Request.Context(), req.FullName, req.Email)
	if err != nil {
		failErr(c, err)
		return
	}
	h.rememberCreate(c, r.ID)
	ok(c, http.StatusCreated, r)
}

// GetRespondent godoc
// @ID          getRespondent
// @Summary     Get a respondent
// @Tags        Respondents
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Respondent ID"
// @Success     200  {object}  domain.Respondent
// @Failure     404  {object}  handlers.ErrorResponse  "Respondent not found"
// @Router      /respondents/{id} [get]
func (h *Handlers) GetRespondent(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	r, err := h.respondents.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// UpdateRespondent godoc
// @ID          updateRespondent
// @Summary     Update a respondent
// @Tags        Respondents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                         true  "Respondent ID"
// @Param       body  body  handlers.RespondentRequest  true  "Respondent"
// @Success     200  {object}  domain.Respondent
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Respondent not found"
// @Router      /respondents/{id} [put]
func (h *Handlers) UpdateRespondent(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	var req RespondentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "full_name and email required")
		return
	}
	r, err := h.respondents.Update(c.Request.Context(), id, req.FullName, req.Email)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteRespondent godoc
// @ID          deleteRespondent
// @Summary     Delete a respondent
// @Tags        Respondents
// @Security    BearerAuth
// @Param       id  path  int  true  "Respondent ID"
// @Success     204  {string}  string "No Content"
// @Router      /respondents/{id} [delete]
func (h *Handlers) DeleteRespondent(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	if err := h.respondents.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
