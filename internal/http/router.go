// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, sessions, idempotency, and rate limiting.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/docs"
	"github.com/tbourn/go-survey-backend/internal/auth"
	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/http/handlers"
	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Deps are the long-lived components the routes are built from.
type Deps struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	IDs     services.IDSource
	Signer  *auth.Signer
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the versioned API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: request-scoped logger, one structured line per request
//  4. Recovery: capture panics after logger
//  5. Body size limiter, gzip
//  6. Metrics
//  7. CORS and security headers
//
// Per API group: session → idempotency validator → rate limiter, so that
// the limiter can key by user and let replays through.
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) {
	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics("/metrics", "/health"))
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/catalog/ids/signer
	idem := services.NewIdempotencyService(d.DB, cfg.IdempotencyTTL)
	h := handlers.New(handlers.Deps{
		Auth:        services.NewAuthService(d.DB, d.Signer, cfg.Auth.BcryptCost),
		Surveys:     services.NewSurveyService(d.DB, d.Catalog, d.IDs),
		Respondents: services.NewRespondentService(d.DB, d.Catalog, d.IDs),
		Questions:   services.NewQuestionService(d.DB, d.Catalog, d.IDs),
		Links:       services.NewAssociationService(d.DB, d.Catalog),
		Responses:   services.NewResponseService(d.DB, d.Catalog),
		Idempotency: idem,
		Version:     d.Catalog,
	})

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	base := groupWithPrefix(r, cfg.APIBasePath)

	// Public
	pub := base.Group("/auth", rl.Handler())
	{
		pub.POST("/register", h.Register)
		pub.POST("/login", h.Login)
	}

	// Session-protected
	api := base.Group("",
		middleware.RequireSession(d.Signer),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Exists),
		rl.Handler(),
	)
	{
		api.GET("/surveys", h.ListSurveys)
		api.POST("/surveys", h.CreateSurvey)
		api.GET("/surveys/:id", h.GetSurvey)
		api.PUT("/surveys/:id", h.UpdateSurvey)
		api.DELETE("/surveys/:id", h.DeleteSurvey)

		api.GET("/surveys/:id/respondents", h.ListSurveyRespondents)
		api.POST("/surveys/:id/respondents", h.AssignRespondent)
		api.GET("/surveys/:id/questions", h.ListSurveyQuestions)
		api.POST("/surveys/:id/questions", h.AssignQuestion)
		api.GET("/surveys/:id/links", h.ListSurveyLinks)

		api.POST("/surveys/:id/responses", h.SubmitResponses)
		api.GET("/surveys/:id/questions/:questionId/responses", h.ListQuestionResponses)
		api.GET("/surveys/:id/questions/:questionId/responses/:respondentId", h.GetResponse)
		api.PUT("/surveys/:id/questions/:questionId/responses/:respondentId", h.SubmitResponse)

		api.GET("/respondents", h.ListRespondents)
		api.POST("/respondents", h.CreateRespondent)
		api.GET("/respondents/:id", h.GetRespondent)
		api.PUT("/respondents/:id", h.UpdateRespondent)
		api.DELETE("/respondents/:id", h.DeleteRespondent)

		api.GET("/questions", h.ListQuestions)
		api.POST("/questions", h.CreateQuestion)
		api.GET("/questions/:id", h.GetQuestion)
		api.PUT("/questions/:id", h.UpdateQuestion)
		api.DELETE("/questions/:id", h.DeleteQuestion)
	}
}

// corsMiddleware allows every origin when none are configured; otherwise
// only the allowlist, echoed back with Vary: Origin.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Retry-After", middleware.HeaderIdempotencyReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// limitBody caps the request body size using http.MaxBytesReader.
// Requests exceeding the cap cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
