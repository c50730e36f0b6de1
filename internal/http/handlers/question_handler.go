// Question HTTP handlers.
//
//   - GET    /questions        (list, paginated, ETag support)
//   - POST   /questions        (create, Idempotency-Key support)
//   - GET    /questions/{id}
//   - PUT    /questions/{id}
//   - DELETE /questions/{id}   (cascades into links and responses)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// QuestionRequest is the JSON payload for creating or updating a question.
type QuestionRequest struct {
	Text string `json:"text" binding:"required,notblank" example:"How likely are you to recommend us?"`
}

// ListQuestionsResponse wraps a page of questions.
type ListQuestionsResponse struct {
	Questions  []domain.Question `json:"questions"`
	Pagination Pagination        `json:"pagination"`
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions (paginated)
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListQuestionsResponse
// @Success     304  {string}  string "Not Modified"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	if h.notModified(c, "questions") {
		return
	}
	items, err := h.questions.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	items, p := paginate(c, items)
	ok(c, http.StatusOK, ListQuestionsResponse{Questions: items, Pagination: p})
}

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Create a question
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body  body  handlers.QuestionRequest  true  "Question"
// @Success     201  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	if h.replayCreate(c, func(ctx context.Context, id int64) (any, error) { return h.questions.Get(ctx, id) }) {
		return
	}
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		return
	}
	q, err := h.questions.Create(c.Request.Context(), req.Text)
	if err != nil {
		failErr(c, err)
		return
	}
	h.rememberCreate(c, q.ID)
	ok(c, http.StatusCreated, q)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get a question
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  int  true  "Question ID"
// @Success     200  {object}  domain.Question
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	q, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Update a question
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                       true  "Question ID"
// @Param       body  body  handlers.QuestionRequest  true  "Question"
// @Success     200  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Question not found"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		return
	}
	q, err := h.questions.Update(c.Request.Context(), id, req.Text)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Tags        Questions
// @Security    BearerAuth
// @Param       id  path  int  true  "Question ID"
// @Success     204  {string}  string "No Content"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
