package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexprice/budgetpdf/internal/auth"
	"github.com/flexprice/budgetpdf/internal/config"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	t.Helper()
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	r := newEngine(ErrorHandler(logger.NewNoop()))
	r.GET("/missing", func(c *gin.Context) {
		c.Error(ierr.NewError("budget 9 not found").
			WithHint("Budget not found").
			Mark(ierr.ErrNotFound))
	})
	r.GET("/invalid", func(c *gin.Context) {
		c.Error(ierr.NewError("bad").
			WithHint("Invalid budget").
			WithReportableDetails(map[string]any{"budget_number": 7}).
			Mark(ierr.ErrValidation))
	})
	r.GET("/render", func(c *gin.Context) {
		c.Error(ierr.NewError("fpdf exploded").Mark(ierr.ErrRenderFailed))
	})

	tests := []struct {
		path    string
		status  int
		message string
		details map[string]any
	}{
		{path: "/missing", status: http.StatusNotFound, message: "Budget not found"},
		{path: "/invalid", status: http.StatusBadRequest, message: "Invalid budget", details: map[string]any{"budget_number": float64(7)}},
		{path: "/render", status: http.StatusInternalServerError, message: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error.Display)
			assert.Equal(t, tt.details, resp.Error.Details)
			// internal messages never leak
			assert.NotContains(t, w.Body.String(), "fpdf exploded")
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(RequestIDMiddleware)
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = types.GetRequestID(c.Request.Context())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(types.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(types.HeaderRequestID))
}

func TestAuthenticateMiddleware(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = testSecret

	r := newEngine(AuthenticateMiddleware(auth.NewVerifier(cfg), logger.NewNoop()))
	var userID int64
	r.GET("/", func(c *gin.Context) {
		userID = types.GetUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	valid, err := auth.GenerateToken(testSecret, 42, time.Hour)
	require.NoError(t, err)
	wrongKey, err := auth.GenerateToken("other-secret", 42, time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken(testSecret, 42, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not_bearer", header: "Token " + valid, status: http.StatusUnauthorized},
		{name: "empty_bearer", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "wrong_key", header: "Bearer " + wrongKey, status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(types.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, int64(42), userID)
			} else {
				assert.Zero(t, userID)
				assert.False(t, decodeError(t, w).Success)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), types.HeaderPDFURL)
}
