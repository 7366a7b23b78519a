package models

import (
	"time"

	"github.com/lib/pq"
)

// Asset описывает медиа-файл пользователя и его метаданные.
type Asset struct {
	ID              string         `db:"id" json:"id"`
	UserID          string         `db:"user_id" json:"userId"`
	WorkspaceID     string         `db:"workspace_id" json:"workspaceId"`
	Title           string         `db:"title" json:"title"`
	UserDescription string         `db:"user_description" json:"userDescription"`
	AIDescription   *string        `db:"ai_description" json:"aiDescription"`
	CategoryID      string         `db:"category_id" json:"categoryId"`
	Tags            pq.StringArray `db:"tags" json:"tags"`
	FilePath        string         `db:"file_path" json:"filePath"`
	FileType        string         `db:"file_type" json:"fileType"`
	FileSize        int64          `db:"file_size" json:"fileSize"`
	ThumbnailPath   *string        `db:"thumbnail_path" json:"thumbnailPath"`
	IsFavorite      bool           `db:"is_favorite" json:"isFavorite"`
	IsArchived      bool           `db:"is_archived" json:"isArchived"`
	AnalysisStatus  string         `db:"analysis_status" json:"analysisStatus"`
	DeletedAt       *time.Time     `db:"deleted_at" json:"deletedAt"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// CategoryRef краткая информация о категории для выдачи списка.
type CategoryRef struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// AssetWithCategory представляет строку списка ассетов вместе с категорией.
type AssetWithCategory struct {
	Asset
	Category CategoryRef `db:"category" json:"category"`
}

// AssetPatch содержит изменяемые поля ассета. nil означает "не менять".
type AssetPatch struct {
	Title           *string
	UserDescription *string
	CategoryID      *string
	Tags            *[]string
	FilePath        *string
	FileType        *string
	FileSize        *int64
	ThumbnailPath   *string
	IsFavorite      *bool
	IsArchived      *bool
}

// Empty сообщает, что патч не меняет ни одного поля.
func (p AssetPatch) Empty() bool {
	return p.Title == nil &&
		p.UserDescription == nil &&
		p.CategoryID == nil &&
		p.Tags == nil &&
		p.FilePath == nil &&
		p.FileType == nil &&
		p.FileSize == nil &&
		p.ThumbnailPath == nil &&
		p.IsFavorite == nil &&
		p.IsArchived == nil
}

// AssetFilter параметры выборки списка ассетов.
type AssetFilter struct {
	UserID     string
	CategoryID string
	Query      string
	Limit      int
}
