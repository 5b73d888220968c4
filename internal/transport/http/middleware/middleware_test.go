package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"studycompanion/internal/pkg/jwtutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthJWT(t *testing.T) {
	const secret = "s3cret"
	router := gin.New()
	router.Use(AuthJWT(secret))
	router.GET("/whoami", func(c *gin.Context) {
		userID, _ := AuthenticatedUser(c)
		c.String(http.StatusOK, userID)
	})

	token, err := jwtutil.GenerateToken(secret, time.Minute, "student-7")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.status)
		}
		if tc.status == http.StatusOK && rec.Body.String() != "student-7" {
			t.Errorf("%s: body %q", tc.name, rec.Body.String())
		}
	}
}

func TestRecoveryAndRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(), Recovery())
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) != "req-1" {
		t.Errorf("request id not echoed")
	}
	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Code != 50000 {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestRequireReady(t *testing.T) {
	calls := 0
	readyErr := errors.New("database unavailable")
	router := gin.New()
	router.Use(RequireReady(func(context.Context) error {
		calls++
		return readyErr
	}))
	router.GET("/data", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while not ready, got %d", rec.Code)
	}
	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Code != 50300 {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	readyErr = nil
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("expected request through once ready, got %d %s", rec.Code, rec.Body.String())
	}
	if calls != 2 {
		t.Errorf("expected readiness checked per request, got %d calls", calls)
	}
}

func TestAdminKey(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		header string
		status int
	}{
		{"missing header", "k1", "", http.StatusUnauthorized},
		{"wrong key", "k1", "k2", http.StatusUnauthorized},
		{"empty configured key", "", "", http.StatusUnauthorized},
		{"valid", "k1", "k1", http.StatusOK},
	}
	for _, tc := range cases {
		router := gin.New()
		router.Use(AdminKey(tc.key))
		router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if tc.header != "" {
			req.Header.Set(AdminKeyHeader, tc.header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.status)
		}
	}
}
