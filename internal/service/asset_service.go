package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/logger"
	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mediadb-backend/internal/storage"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

// События, которые получают открытые вкладки галереи.
const (
	EventAssetCreated  = "asset.created"
	EventAssetUpdated  = "asset.updated"
	EventAssetArchived = "asset.archived"
)

const (
	defaultContentType = "application/octet-stream"
	sniffLen           = 512
)

// Сообщения валидации загружаемого файла.
const (
	MsgFileEmpty    = "File is empty"
	MsgFileTooLarge = "File exceeds the upload limit"
)

// AssetRepository описывает хранилище ассетов.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	List(ctx context.Context, filter models.AssetFilter) ([]models.AssetWithCategory, error)
	Update(ctx context.Context, id string, patch models.AssetPatch) (*models.Asset, error)
	Archive(ctx context.Context, id string) (*models.Asset, error)
}

// AssetPublisher рассылает события об изменении ассетов владельцу.
type AssetPublisher interface {
	PublishAssetEvent(userID, event string, asset *models.Asset)
}

// UploadInput описывает multipart загрузку: поля формы и единственную часть file.
type UploadInput struct {
	Form        dto.CreateAssetFormRequest
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// AssetService реализует жизненный цикл ассета.
type AssetService struct {
	repo   AssetRepository
	files  storage.FileStore
	events AssetPublisher
	newID  func() string
}

// NewAssetService создаёт сервис. events может быть nil.
func NewAssetService(repo AssetRepository, files storage.FileStore, events AssetPublisher) *AssetService {
	return &AssetService{
		repo:   repo,
		files:  files,
		events: events,
		newID:  uuid.NewString,
	}
}

// List возвращает неархивные ассеты пользователя.
func (s *AssetService) List(ctx context.Context, userID, categoryID, query string) ([]models.AssetWithCategory, error) {
	if userID == "" {
		return nil, validation.MissingParam("userId")
	}

	return s.repo.List(ctx, models.AssetFilter{
		UserID:     userID,
		CategoryID: categoryID,
		Query:      query,
		Limit:      models.MaxAssetListSize,
	})
}

// Create сохраняет ассет из JSON запроса. analysisStatus всегда pending.
func (s *AssetService) Create(ctx context.Context, req dto.CreateAssetRequest) (*models.Asset, error) {
	asset := &models.Asset{
		UserID:          req.UserID,
		WorkspaceID:     req.WorkspaceID,
		Title:           req.Title,
		UserDescription: req.UserDescription,
		CategoryID:      req.CategoryID,
		Tags:            pq.StringArray(req.Tags),
		FilePath:        req.FilePath,
		FileType:        req.FileType,
		FileSize:        req.FileSize,
		ThumbnailPath:   req.ThumbnailPath,
	}

	if err := s.insert(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// CreateFromUpload записывает файл в хранилище и создаёт ассет с его метаданными.
// Если вставка не удалась, записанный файл удаляется.
func (s *AssetService) CreateFromUpload(ctx context.Context, in UploadInput) (*models.Asset, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.File, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("asset service: read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, fileError(MsgFileEmpty)
	}

	contentType := detectContentType(in.ContentType, head)
	body := io.MultiReader(bytes.NewReader(head), in.File)

	stored, err := s.files.Save(ctx, in.Form.UserID, in.FileName, contentType, in.Size, body)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return nil, fileError(MsgFileTooLarge)
		}
		return nil, fmt.Errorf("asset service: store upload: %w", err)
	}

	asset := &models.Asset{
		UserID:          in.Form.UserID,
		WorkspaceID:     in.Form.WorkspaceID,
		Title:           in.Form.Title,
		UserDescription: in.Form.UserDescription,
		CategoryID:      in.Form.CategoryID,
		Tags:            pq.StringArray(in.Form.Tags),
		FilePath:        stored.Path,
		FileType:        contentType,
		FileSize:        stored.Size,
		ThumbnailPath:   in.Form.ThumbnailPath,
	}

	if err := s.insert(ctx, asset); err != nil {
		if delErr := s.files.Delete(context.WithoutCancel(ctx), stored.Path); delErr != nil {
			logger.L().WithFields(logrus.Fields{
				"path":  stored.Path,
				"error": delErr.Error(),
			}).Warn("Не удалось удалить файл после неудачной вставки")
		}
		return nil, err
	}
	return asset, nil
}

// Update применяет патч. Пустой патч отклоняется до обращения к базе.
func (s *AssetService) Update(ctx context.Context, id string, patch models.AssetPatch) (*models.Asset, error) {
	if patch.Empty() {
		return nil, apperror.ValidationForm(validation.MsgEmptyUpdate)
	}

	asset, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(EventAssetUpdated, asset)
	return asset, nil
}

// Archive архивирует ассет. Повторный вызов успешен.
func (s *AssetService) Archive(ctx context.Context, id string) (*models.Asset, error) {
	asset, err := s.repo.Archive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(EventAssetArchived, asset)
	return asset, nil
}

func (s *AssetService) insert(ctx context.Context, asset *models.Asset) error {
	asset.ID = s.newID()
	asset.AnalysisStatus = models.AnalysisStatusPending
	if asset.Tags == nil {
		asset.Tags = pq.StringArray{}
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		return err
	}
	s.publish(EventAssetCreated, asset)
	return nil
}

func (s *AssetService) publish(event string, asset *models.Asset) {
	if s.events == nil || asset == nil {
		return
	}
	s.events.PublishAssetEvent(asset.UserID, event, asset)
}

// detectContentType берёт тип из заголовка части, а если он пустой или
// application/octet-stream, определяет тип по первым байтам файла.
func detectContentType(declared string, head []byte) string {
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != defaultContentType {
			return mediaType
		}
	}

	kind, err := filetype.Match(head)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return defaultContentType
}

func fileError(message string) *apperror.AppError {
	details := &apperror.Details{}
	details.AddField("file", message)
	return apperror.Validation(details)
}
