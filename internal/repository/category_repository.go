package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/repository/common"
)

// CategoryRepository работает с таблицей categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository создаёт экземпляр.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser возвращает категории пользователя по алфавиту.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, user_id, name, created_at
		FROM categories WHERE user_id = $1 ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, common.Classify("category repository: list", err)
	}
	return categories, nil
}

// Upsert создаёт категорию или возвращает существующую с тем же (user_id, name).
// Гонки между параллельными вызовами разрешает уникальный индекс.
func (r *CategoryRepository) Upsert(ctx context.Context, category *models.Category) error {
	err := r.db.GetContext(ctx, category, `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, created_at
	`, category.ID, category.UserID, category.Name)
	return common.Classify("category repository: upsert", err)
}
