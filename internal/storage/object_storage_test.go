package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectStorage_RejectsDeclaredOversize(t *testing.T) {
	// Клиент не нужен: лимит проверяется до обращения к S3
	s := &ObjectStorage{maxUploadBytes: 4, now: time.Now}

	_, err := s.Save(context.Background(), "u1", "a.bin", "application/octet-stream", 5, strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
