package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

// CategoryRepository описывает хранилище категорий.
type CategoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	Upsert(ctx context.Context, category *models.Category) error
}

// CategoryService управляет категориями пользователя.
type CategoryService struct {
	repo  CategoryRepository
	newID func() string
}

// NewCategoryService создаёт сервис.
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, newID: uuid.NewString}
}

// List возвращает категории пользователя по имени.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	if userID == "" {
		return nil, validation.MissingParam("userId")
	}
	return s.repo.ListByUser(ctx, userID)
}

// Ensure возвращает категорию с таким именем, создавая её при отсутствии.
// Повторный вызов с тем же (userId, name) отдаёт ту же строку.
func (s *CategoryService) Ensure(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:     s.newID(),
		UserID: req.UserID,
		Name:   req.Name,
	}
	if err := s.repo.Upsert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
