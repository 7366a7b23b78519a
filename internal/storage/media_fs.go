package storage

import (
	"net/http"
	"os"
	"path"
	"strings"
)

// MediaFS отдаёт по HTTP только файлы из локального хранилища. Каталоги и
// скрытые временные файлы загрузки считаются несуществующими.
type MediaFS struct {
	root http.Dir
}

// NewMediaFS создаёт файловую систему для раздачи /media.
func NewMediaFS(rootPath string) MediaFS {
	return MediaFS{root: http.Dir(rootPath)}
}

// Open реализует http.FileSystem.
func (m MediaFS) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, os.ErrNotExist
	}

	f, err := m.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
