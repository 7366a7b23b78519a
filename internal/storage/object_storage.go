package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorageConfig параметры S3-совместимого хранилища.
type ObjectStorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	MaxUploadMB int64
}

// ObjectStorage хранит файлы в бакете S3-совместимого хранилища (MinIO, R2, S3).
// Ключ объекта совпадает с относительным путём локального хранилища.
type ObjectStorage struct {
	client         *minio.Client
	bucket         string
	maxUploadBytes int64
	now            func() time.Time
}

// NewObjectStorage создаёт клиента и при необходимости создаёт бакет.
func NewObjectStorage(ctx context.Context, cfg ObjectStorageConfig) (*ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось создать клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось проверить бакет %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: не удалось создать бакет %s: %w", cfg.Bucket, err)
		}
	}

	return &ObjectStorage{
		client:         client,
		bucket:         cfg.Bucket,
		maxUploadBytes: cfg.MaxUploadMB * 1024 * 1024,
		now:            time.Now,
	}, nil
}

// Save загружает объект. Если размер неизвестен (size < 0), лимит проверяется по
// фактически прочитанным байтам.
func (s *ObjectStorage) Save(ctx context.Context, userID, originalName, contentType string, size int64, r io.Reader) (*StoredFile, error) {
	if size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	key := ObjectName(userID, originalName, s.now())
	body := io.LimitReader(r, s.maxUploadBytes+1)

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось загрузить объект %s: %w", key, err)
	}

	if info.Size > s.maxUploadBytes {
		_ = s.Delete(ctx, key)
		return nil, ErrFileTooLarge
	}

	return &StoredFile{Path: key, Size: info.Size}, nil
}

// Delete удаляет объект. Отсутствующий объект S3 не считает ошибкой.
func (s *ObjectStorage) Delete(ctx context.Context, relativePath string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, relativePath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: не удалось удалить объект %s: %w", relativePath, err)
	}
	return nil
}
