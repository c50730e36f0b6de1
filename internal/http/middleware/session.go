package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the Gin context key holding the signed-in user's email.
const UserIDKey = "userID"

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// CurrentUser returns the identity stored by RequireSession.
func CurrentUser(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// RequireSession rejects requests without a valid "Authorization: Bearer"
// token with 401. On success the token subject is stored under UserIDKey
// and added to the request-scoped logger in redacted form.
func RequireSession(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, raw, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			abort(c, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		sub, err := v.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
			abort(c, http.StatusUnauthorized, codeUnauthorized, "invalid or expired session")
			return
		}
		c.Set(UserIDKey, sub)

		lg := LoggerFrom(c).With().Str("user", Redact(sub)).Logger()
		c.Set(loggerKey, &lg)
		c.Request = c.Request.WithContext(lg.WithContext(c.Request.Context()))
		c.Next()
	}
}

// abort writes the API error envelope and stops the chain.
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}

// Error codes emitted directly by middleware. They match the codes used by
// the handlers package.
const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeRateLimited  = "too_many_requests"
	codeInternal     = "internal_error"
)
