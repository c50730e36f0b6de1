// Package handlers wires HTTP endpoints to the application services.
//
// Handlers are transport-thin: they bind and validate input, call a service
// and translate the result into a response. Service contracts are declared
// here as interfaces so tests can substitute stubs.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
	"github.com/tbourn/go-survey-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// AuthService registers credentials and signs users in.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
}

// SurveyService manages the survey collection.
type SurveyService interface {
	Create(ctx context.Context, name string) (*domain.Survey, error)
	Update(ctx context.Context, id int64, name string) (*domain.Survey, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Survey, error)
	Get(ctx context.Context, id int64) (*domain.Survey, error)
	Detail(ctx context.Context, id int64) (*catalog.SurveyDetail, error)
}

// RespondentService manages the respondent collection.
type RespondentService interface {
	Create(ctx context.Context, fullName, email string) (*domain.Respondent, error)
	Update(ctx context.Context, id int64, fullName, email string) (*domain.Respondent, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Respondent, error)
	Get(ctx context.Context, id int64) (*domain.Respondent, error)
}

// QuestionService manages the question collection.
type QuestionService interface {
	Create(ctx context.Context, text string) (*domain.Question, error)
	Update(ctx context.Context, id int64, text string) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Question, error)
	Get(ctx context.Context, id int64) (*domain.Question, error)
}

// AssociationService links respondents and questions to surveys.
type AssociationService interface {
	AssignRespondent(ctx context.Context, surveyID, respondentID int64) (*domain.SurveyRespondent, bool, error)
	AssignQuestion(ctx context.Context, surveyID, questionID int64) (*domain.SurveyQuestion, bool, error)
	RespondentsOf(ctx context.Context, surveyID int64) ([]domain.Respondent, error)
	QuestionsOf(ctx context.Context, surveyID int64) ([]domain.Question, error)
	Links(ctx context.Context, surveyID int64) (*services.SurveyLinks, error)
}

// ResponseService records and reads answers.
type ResponseService interface {
	Submit(ctx context.Context, surveyID, questionID, respondentID int64, text string) (*domain.Response, services.SubmitOutcome, error)
	SubmitAll(ctx context.Context, surveyID, respondentID int64, answers map[int64]string) ([]services.SubmitResult, error)
	ResponsesForQuestion(ctx context.Context, surveyID, questionID int64) ([]catalog.ResponseView, error)
	Response(ctx context.Context, surveyID, questionID, respondentID int64) (*domain.Response, error)
}

// IdempotencyStore remembers which resource a keyed create produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, scope, key string) (int64, bool, error)
	Remember(ctx context.Context, userID, scope, key string, resourceID int64, status int) error
}

// Versioner exposes a counter that changes on every committed mutation.
type Versioner interface {
	Version() uint64
}

//
// Handler wiring
//

// Deps lists the services the handlers depend on. Idempotency and Version
// are optional.
type Deps struct {
	Auth        AuthService
	Surveys     SurveyService
	Respondents RespondentService
	Questions   QuestionService
	Links       AssociationService
	Responses   ResponseService
	Idempotency IdempotencyStore
	Version     Versioner
}

// Handlers groups every HTTP endpoint of the API.
type Handlers struct {
	auth        AuthService
	surveys     SurveyService
	respondents RespondentService
	questions   QuestionService
	links       AssociationService
	responses   ResponseService
	idem        IdempotencyStore
	version     Versioner
}

// New constructs a Handlers instance bound to the given services.
func New(d Deps) *Handlers {
	return &Handlers{
		auth:        d.Auth,
		surveys:     d.Surveys,
		respondents: d.Respondents,
		questions:   d.Questions,
		links:       d.Links,
		responses:   d.Responses,
		idem:        d.Idempotency,
		version:     d.Version,
	}
}

// RegisterValidators installs the custom binding tags used by request DTOs.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

//
// Helpers
//

// pathID parses a positive integer path parameter. On failure it writes a
// 400 and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// paginate slices items according to the page and page_size query params.
func paginate[T any](c *gin.Context, items []T) ([]T, Pagination) {
	p, size := utils.ClampPage(c.Query("page"), c.Query("page_size"))
	out, pages := utils.Paginate(items, p, size)
	return out, Pagination{
		Page:       p,
		PageSize:   size,
		Total:      len(items),
		TotalPages: pages,
		HasNext:    p < pages,
	}
}

// notModified sets a weak ETag derived from the mirror version and the
// request's query, and answers 304 when the client already has it.
func (h *Handlers) notModified(c *gin.Context, resource string) bool {
	if h.version == nil {
		return false
	}
	etag := fmt.Sprintf(`W/"%s:%d:%s"`, resource, h.version.Version(), c.Request.URL.RawQuery)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// replayCreate answers a retried create with the resource recorded for its
// Idempotency-Key. It returns false when there is nothing to replay.
func (h *Handlers) replayCreate(c *gin.Context, get func(context.Context, int64) (any, error)) bool {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return false
	}
	ctx := c.Request.Context()
	uid, _ := middleware.CurrentUser(c)
	id, found, err := h.idem.Lookup(ctx, uid, middleware.IdempotencyScope(c), key)
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		return false
	}
	if !found {
		return false
	}
	res, err := get(ctx, id)
	if err != nil {
		// The original resource is gone; treat the request as new.
		return false
	}
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	ok(c, http.StatusOK, res)
	return true
}

// rememberCreate records the created resource under the request's
// Idempotency-Key. Failures are logged and do not affect the response.
func (h *Handlers) rememberCreate(c *gin.Context, resourceID int64) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return
	}
	uid, _ := middleware.CurrentUser(c)
	if err := h.idem.Remember(c.Request.Context(), uid, middleware.IdempotencyScope(c), key, resourceID, http.StatusCreated); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency store failed")
	}
}
