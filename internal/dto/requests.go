package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ignatzorin/mediadb-backend/internal/models"
)

// CreateAssetRequest тело POST /assets в формате JSON.
type CreateAssetRequest struct {
	UserID          string   `json:"userId" binding:"required"`
	WorkspaceID     string   `json:"workspaceId" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	UserDescription string   `json:"userDescription"`
	CategoryID      string   `json:"categoryId" binding:"required"`
	Tags            []string `json:"tags"`
	FilePath        string   `json:"filePath" binding:"required"`
	FileType        string   `json:"fileType" binding:"required"`
	FileSize        int64    `json:"fileSize" binding:"required,gt=0"`
	ThumbnailPath   *string  `json:"thumbnailPath" binding:"omitnil,min=1"`
}

// CreateAssetFormRequest поля multipart формы POST /assets. Метаданные файла
// вычисляет сервер по загруженной части file.
type CreateAssetFormRequest struct {
	UserID          string   `json:"userId" form:"userId" binding:"required"`
	WorkspaceID     string   `json:"workspaceId" form:"workspaceId" binding:"required"`
	Title           string   `json:"title" form:"title" binding:"required"`
	UserDescription string   `json:"userDescription" form:"userDescription"`
	CategoryID      string   `json:"categoryId" form:"categoryId" binding:"required"`
	Tags            []string `json:"tags" form:"tags"`
	ThumbnailPath   *string  `json:"thumbnailPath" form:"thumbnailPath" binding:"omitnil,min=1"`
}

// UpdateAssetRequest тело PATCH /assets/:id. Отсутствующее поле не меняется.
type UpdateAssetRequest struct {
	Title           *string   `json:"title" binding:"omitnil,min=1"`
	UserDescription *string   `json:"userDescription"`
	CategoryID      *string   `json:"categoryId" binding:"omitnil,min=1"`
	Tags            *[]string `json:"tags"`
	FilePath        *string   `json:"filePath" binding:"omitnil,min=1"`
	FileType        *string   `json:"fileType" binding:"omitnil,min=1"`
	FileSize        *int64    `json:"fileSize" binding:"omitnil,gt=0"`
	ThumbnailPath   *string   `json:"thumbnailPath" binding:"omitnil,min=1"`
	IsFavorite      *bool     `json:"isFavorite"`
	IsArchived      *bool     `json:"isArchived"`
}

// updateAssetFields поля PATCH, которые нельзя передавать как null.
var updateAssetFields = []string{
	"title", "userDescription", "categoryId", "tags", "filePath",
	"fileType", "fileSize", "thumbnailPath", "isFavorite", "isArchived",
}

// NullFieldError явный null в поле, которое можно только пропустить.
type NullFieldError struct {
	Fields []string
}

func (e *NullFieldError) Error() string {
	return "null is not allowed for: " + strings.Join(e.Fields, ", ")
}

// UnmarshalJSON отличает отсутствующее поле от явного null и отклоняет null.
func (r *UpdateAssetRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var nulls []string
	for _, name := range updateAssetFields {
		if v, ok := raw[name]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			nulls = append(nulls, name)
		}
	}
	if len(nulls) > 0 {
		return &NullFieldError{Fields: nulls}
	}

	type plain UpdateAssetRequest
	return json.Unmarshal(data, (*plain)(r))
}

// ToPatch переносит поля запроса в патч модели.
func (r UpdateAssetRequest) ToPatch() models.AssetPatch {
	return models.AssetPatch{
		Title:           r.Title,
		UserDescription: r.UserDescription,
		CategoryID:      r.CategoryID,
		Tags:            r.Tags,
		FilePath:        r.FilePath,
		FileType:        r.FileType,
		FileSize:        r.FileSize,
		ThumbnailPath:   r.ThumbnailPath,
		IsFavorite:      r.IsFavorite,
		IsArchived:      r.IsArchived,
	}
}

// CreateCategoryRequest тело POST /categories.
type CreateCategoryRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required,min=1,max=64"`
}
