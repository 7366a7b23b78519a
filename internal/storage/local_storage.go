package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage хранит файлы на диске в каталоге пользователя.
type LocalStorage struct {
	rootPath       string
	maxUploadBytes int64
	now            func() time.Time
}

// NewLocalStorage создаёт файловое хранилище.
func NewLocalStorage(rootPath string, maxUploadMB int64) (*LocalStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &LocalStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		now:            time.Now,
	}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *LocalStorage) Root() string {
	return s.rootPath
}

// maxNameAttempts сколько соседних миллисекунд пробует Save, если имя уже занято.
const maxNameAttempts = 100

// Save сохраняет файл через временный файл и возвращает относительный путь.
// Существующий файл никогда не перезаписывается: при совпадении имени берётся
// следующая миллисекунда.
func (s *LocalStorage) Save(ctx context.Context, userID, originalName, _ string, _ int64, r io.Reader) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	relative, targetPath, err := s.reserve(userID, originalName)
	if err != nil {
		return nil, err
	}

	written, err := s.writeTemp(filepath.Dir(targetPath), r)
	if err != nil {
		_ = os.Remove(targetPath)
		return nil, err
	}

	if err := os.Rename(written.path, targetPath); err != nil {
		_ = os.Remove(written.path)
		_ = os.Remove(targetPath)
		return nil, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return &StoredFile{Path: relative, Size: written.size}, nil
}

// reserve создаёт пустой файл-заглушку с уникальным именем через O_EXCL.
func (s *LocalStorage) reserve(userID, originalName string) (string, string, error) {
	now := s.now()
	for i := 0; i < maxNameAttempts; i++ {
		relative := ObjectName(userID, originalName, now.Add(time.Duration(i)*time.Millisecond))
		targetPath := filepath.Join(s.rootPath, filepath.FromSlash(relative))

		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return "", "", fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
		}

		f, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("storage: не удалось создать файл: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(targetPath)
			return "", "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
		}
		return relative, targetPath, nil
	}
	return "", "", fmt.Errorf("storage: не удалось подобрать свободное имя для %q", originalName)
}

type tempFile struct {
	path string
	size int64
}

// writeTemp пишет содержимое во временный скрытый файл в каталоге dir.
func (s *LocalStorage) writeTemp(dir string, r io.Reader) (*tempFile, error) {
	f, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось создать временный файл: %w", err)
	}

	written, copyErr := limitedCopy(f, r, s.maxUploadBytes)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(f.Name())
		if errors.Is(copyErr, ErrFileTooLarge) {
			return nil, copyErr
		}
		return nil, fmt.Errorf("storage: ошибка записи файла: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("storage: ошибка закрытия файла: %w", closeErr)
	}

	return &tempFile{path: f.Name(), size: written}, nil
}

// Delete удаляет файл из хранилища.
func (s *LocalStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
