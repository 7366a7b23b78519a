package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/mediadb-backend/internal/http/middleware"
	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/service"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

func setupCategoryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	h := NewCategoryHandler(service.NewCategoryService(&memoryCategoryRepo{}))

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/categories", h.List)
	r.POST("/categories", h.Create)
	return r
}

func postCategory(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCategory(t *testing.T, w *httptest.ResponseRecorder) models.Category {
	t.Helper()
	var resp struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCategoryHandler_CreateTwiceReturnsSameRow(t *testing.T) {
	r := setupCategoryRouter()

	first := postCategory(r, `{"userId":"u1","name":"Travel"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	second := postCategory(r, `{"userId":"u1","name":"Travel"}`)
	require.Equal(t, http.StatusCreated, second.Code)

	a, b := decodeCategory(t, first), decodeCategory(t, second)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, b.ID)

	other := decodeCategory(t, postCategory(r, `{"userId":"u2","name":"Travel"}`))
	assert.NotEqual(t, a.ID, other.ID)
}

func TestCategoryHandler_CreateValidation(t *testing.T) {
	r := setupCategoryRouter()

	w := postCategory(r, `{"userId":"u1","name":"`+strings.Repeat("x", 65)+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"name"`)

	w = postCategory(r, `{"name":"Travel"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"userId"`)
}

func TestCategoryHandler_ListSortedByName(t *testing.T) {
	r := setupCategoryRouter()
	postCategory(r, `{"userId":"u1","name":"Travel"}`)
	postCategory(r, `{"userId":"u1","name":"Animals"}`)

	req := httptest.NewRequest(http.MethodGet, "/categories?userId=u1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Animals", resp.Data[0].Name)
	assert.Equal(t, "Travel", resp.Data[1].Name)
}

func TestCategoryHandler_ListRequiresUserID(t *testing.T) {
	r := setupCategoryRouter()

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, w.Body.String())
}
