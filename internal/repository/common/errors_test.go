package common

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify("op", nil))
}

func TestClassify_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.ErrorCode
	}{
		{"no rows", sql.ErrNoRows, apperror.ErrCodeNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), apperror.ErrCodeNotFound},
		{"unique", &pq.Error{Code: "23505"}, apperror.ErrCodeConflict},
		{"foreign key", &pq.Error{Code: "23503"}, apperror.ErrCodeMissingReference},
		{"undefined table", &pq.Error{Code: "42P01"}, apperror.ErrCodeUnavailable},
		{"connection failure", &pq.Error{Code: "08006"}, apperror.ErrCodeUnavailable},
		{"admin shutdown", &pq.Error{Code: "57P01"}, apperror.ErrCodeUnavailable},
		{"bad conn", driver.ErrBadConn, apperror.ErrCodeUnavailable},
		{"conn done", sql.ErrConnDone, apperror.ErrCodeUnavailable},
		{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, apperror.ErrCodeUnavailable},
		{"syntax error", &pq.Error{Code: "42601"}, apperror.ErrCodeInternal},
		{"plain", errors.New("boom"), apperror.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("asset repository: create", tt.err)
			assert.Error(t, got)
			assert.Equal(t, tt.want, apperror.CodeOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_KeepsAppError(t *testing.T) {
	original := apperror.ValidationForm("bad")
	assert.Same(t, original, Classify("op", original))
}

func TestClassify_HidesDriverDetailsInMessage(t *testing.T) {
	err := Classify("category repository: upsert", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.MsgAlreadyExists, appErr.Message)
	assert.Contains(t, appErr.Error(), "category repository: upsert")
}
