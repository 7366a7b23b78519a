package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

// ErrFileTooLarge возвращается, когда файл превышает лимит загрузки.
var ErrFileTooLarge = errors.New("storage: file exceeds upload limit")

// FileStore сохраняет бинарные файлы ассетов.
type FileStore interface {
	// Save записывает файл и возвращает путь относительно корня хранилища.
	Save(ctx context.Context, userID, originalName, contentType string, size int64, r io.Reader) (*StoredFile, error)
	// Delete удаляет файл по относительному пути. Отсутствующий файл не считается ошибкой.
	Delete(ctx context.Context, relativePath string) error
}

// StoredFile результат сохранения.
type StoredFile struct {
	// Path относительный путь с разделителем "/".
	Path string
	Size int64
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename оставляет только базовое имя и заменяет всё, кроме латиницы,
// цифр, точки, дефиса и подчёркивания, на "_".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

// ObjectName строит путь вида <userID>/<unix-ms>-<имя>.
func ObjectName(userID, originalName string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", SanitizeFilename(userID), now.UnixMilli(), SanitizeFilename(originalName))
}

// limitedCopy копирует не более max байт и сообщает о превышении лимита.
func limitedCopy(dst io.Writer, src io.Reader, max int64) (int64, error) {
	limited := io.LimitedReader{R: src, N: max + 1}
	written, err := io.Copy(dst, &limited)
	if err != nil {
		return written, err
	}
	if written > max {
		return written, ErrFileTooLarge
	}
	return written, nil
}
