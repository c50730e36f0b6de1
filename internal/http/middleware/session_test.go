package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(raw string) (string, error) {
	if sub, ok := s[raw]; ok {
		return sub, nil
	}
	return "", errors.New("bad token")
}

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/me", RequireSession(stubVerifier{"good": "a@x.com"}), func(c *gin.Context) {
		uid, _ := CurrentUser(c)
		c.String(http.StatusOK, uid)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	captureLogger(t)
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "a@x.com"},
		{"lowercase scheme", "bearer good", http.StatusOK, "a@x.com"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer   ", http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
	}
	r := sessionRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status=%d want %d", w.Code, tc.status)
			}
			if tc.status == http.StatusOK {
				if w.Body.String() != tc.body {
					t.Fatalf("body=%q", w.Body.String())
				}
				return
			}
			var env map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("json: %v", err)
			}
			if env["code"] != codeUnauthorized || env["request_id"] == "" {
				t.Fatalf("envelope=%v", env)
			}
			if w.Header().Get("WWW-Authenticate") == "" {
				t.Fatal("missing WWW-Authenticate")
			}
		})
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatal("expected no user")
	}
	c.Set(UserIDKey, 42)
	if _, ok := CurrentUser(c); ok {
		t.Fatal("non-string identity must be ignored")
	}
}
