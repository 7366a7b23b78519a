package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/repository/common"
)

// AssetRepository работает с таблицей assets.
type AssetRepository struct {
	db *sqlx.DB
}

// NewAssetRepository создаёт экземпляр.
func NewAssetRepository(db *sqlx.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create сохраняет ассет и заполняет сгенерированные базой поля.
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (
			id, user_id, workspace_id, title, user_description, category_id, tags,
			file_path, file_type, file_size, thumbnail_path, analysis_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *
	`

	tags := asset.Tags
	if tags == nil {
		tags = pq.StringArray{}
	}

	err := r.db.GetContext(ctx, asset, query,
		asset.ID,
		asset.UserID,
		asset.WorkspaceID,
		asset.Title,
		asset.UserDescription,
		asset.CategoryID,
		tags,
		asset.FilePath,
		asset.FileType,
		asset.FileSize,
		asset.ThumbnailPath,
		asset.AnalysisStatus,
	)
	return common.Classify("asset repository: create", err)
}

// List возвращает неархивные ассеты пользователя с категорией, новые первыми.
func (r *AssetRepository) List(ctx context.Context, filter models.AssetFilter) ([]models.AssetWithCategory, error) {
	query, args := buildAssetListQuery(filter)

	assets := make([]models.AssetWithCategory, 0)
	if err := r.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, common.Classify("asset repository: list", err)
	}
	return assets, nil
}

// Update применяет патч к ассету. Неизвестный id даёт NOT_FOUND.
func (r *AssetRepository) Update(ctx context.Context, id string, patch models.AssetPatch) (*models.Asset, error) {
	query, args := buildAssetUpdateQuery(id, patch)

	var asset models.Asset
	if err := r.db.GetContext(ctx, &asset, query, args...); err != nil {
		return nil, common.Classify("asset repository: update", err)
	}
	return &asset, nil
}

// Archive помечает ассет архивным. Строка и файл не удаляются, повторный вызов
// сохраняет исходное время deleted_at.
func (r *AssetRepository) Archive(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.GetContext(ctx, &asset, `
		UPDATE assets
		SET is_archived = TRUE, deleted_at = COALESCE(deleted_at, NOW()), updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id)
	if err != nil {
		return nil, common.Classify("asset repository: archive", err)
	}
	return &asset, nil
}

func buildAssetListQuery(filter models.AssetFilter) (string, []interface{}) {
	var b common.QueryBuilder
	b.Where("a.user_id = " + b.Arg(filter.UserID))
	b.Where("a.is_archived = FALSE")

	if filter.CategoryID != "" {
		b.Where("a.category_id = " + b.Arg(filter.CategoryID))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		p := b.Arg("%" + common.EscapeLike(q) + "%")
		b.Where("(a.title ILIKE " + p + " OR a.user_description ILIKE " + p + " OR a.ai_description ILIKE " + p + ")")
	}

	limit := filter.Limit
	if limit <= 0 || limit > models.MaxAssetListSize {
		limit = models.MaxAssetListSize
	}

	query := `SELECT a.*, c.id AS "category.id", c.name AS "category.name"
		FROM assets a
		JOIN categories c ON c.id = a.category_id` +
		b.WhereClause() +
		" ORDER BY a.created_at DESC LIMIT " + b.Arg(limit)

	return query, b.Args()
}

func buildAssetUpdateQuery(id string, patch models.AssetPatch) (string, []interface{}) {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.UserDescription != nil {
		set("user_description", *patch.UserDescription)
	}
	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}
	if patch.Tags != nil {
		tags := pq.StringArray(*patch.Tags)
		if tags == nil {
			tags = pq.StringArray{}
		}
		set("tags", tags)
	}
	if patch.FilePath != nil {
		set("file_path", *patch.FilePath)
	}
	if patch.FileType != nil {
		set("file_type", *patch.FileType)
	}
	if patch.FileSize != nil {
		set("file_size", *patch.FileSize)
	}
	if patch.ThumbnailPath != nil {
		set("thumbnail_path", *patch.ThumbnailPath)
	}
	if patch.IsFavorite != nil {
		set("is_favorite", *patch.IsFavorite)
	}
	if patch.IsArchived != nil {
		set("is_archived", *patch.IsArchived)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := "UPDATE assets SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING *"
	return query, args
}
