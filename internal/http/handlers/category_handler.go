package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/http/handlers/common"
	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

// CategoryService операции над категориями, которые использует хэндлер.
type CategoryService interface {
	List(ctx context.Context, userID string) ([]models.Category, error)
	Ensure(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
}

// CategoryHandler обслуживает /api/categories.
type CategoryHandler struct {
	categories CategoryService
}

// NewCategoryHandler создаёт новый хэндлер.
func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List обрабатывает GET /api/categories?userId=.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, categories)
}

// Create обрабатывает POST /api/categories. Существующая категория с тем же
// именем возвращается как есть, статус всегда 201.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, validation.FromBindError(err))
		return
	}

	category, err := h.categories.Ensure(c.Request.Context(), req)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, category)
}
