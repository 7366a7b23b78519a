package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(err)
	})
	return r
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_Dispatch(t *testing.T) {
	details := &apperror.Details{}
	details.AddField("title", "Required")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails bool
	}{
		{"validation", apperror.Validation(details), http.StatusBadRequest, apperror.MsgValidationFailed, true},
		{"bad request", apperror.New(apperror.ErrCodeBadRequest, "userId is required"), http.StatusBadRequest, "userId is required", false},
		{"conflict", apperror.ErrAlreadyExists, http.StatusConflict, apperror.MsgAlreadyExists, false},
		{"missing reference", apperror.ErrMissingReference, http.StatusBadRequest, apperror.MsgMissingReference, false},
		{"not found", fmt.Errorf("wrapped: %w", apperror.ErrNotFound), http.StatusNotFound, apperror.MsgNotFound, false},
		{"unavailable", apperror.ErrUnavailable, http.StatusServiceUnavailable, apperror.MsgUnavailable, false},
		{"unclassified", errors.New("pq: relation secret_table password=hunter2"), http.StatusInternalServerError, apperror.MsgInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(errorRouter(tt.err), http.MethodGet, "/", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
			if tt.wantDetails {
				require.NotNil(t, body.Details)
				assert.Equal(t, []string{"Required"}, body.Details.FieldErrors["title"])
			} else {
				assert.Nil(t, body.Details)
			}
			assert.NotContains(t, w.Body.String(), "hunter2")
		})
	}
}

func TestErrorHandler_ValidationBodyShape(t *testing.T) {
	w := serve(errorRouter(apperror.ValidationForm("At least one field must be provided")), http.MethodGet, "/", nil)

	assert.JSONEq(t, `{"error":"Validation failed","details":{"formErrors":["At least one field must be provided"],"fieldErrors":{}}}`, w.Body.String())
}

func TestErrorHandler_NoErrorsPassThrough(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, dto.DataResponse{Data: "ok"}) })

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":"ok"}`, w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimitMiddleware(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodPost, "/", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, http.MethodPost, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t, `{"error":"`+MsgTooManyRequests+`"}`, w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = serve(r, http.MethodGet, "/", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
