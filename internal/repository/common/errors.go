package common

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"

	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

// Коды ошибок PostgreSQL, которые различает приложение.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqUndefinedTable      = "42P01"
	pqCannotConnectNow    = "57P03"
)

// Classify переводит ошибку драйвера в один из типизированных вариантов apperror.
// op попадает в Cause и видно только в логах.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	cause := fmt.Errorf("%s: %w", op, err)

	if errors.Is(err, sql.ErrNoRows) {
		return apperror.Wrap(cause, apperror.ErrCodeNotFound, apperror.MsgNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == pqUniqueViolation:
			return apperror.Wrap(cause, apperror.ErrCodeConflict, apperror.MsgAlreadyExists)
		case code == pqForeignKeyViolation:
			return apperror.Wrap(cause, apperror.ErrCodeMissingReference, apperror.MsgMissingReference)
		case code == pqUndefinedTable,
			code == pqCannotConnectNow,
			strings.HasPrefix(code, "08"),
			strings.HasPrefix(code, "57P"):
			return apperror.Wrap(cause, apperror.ErrCodeUnavailable, apperror.MsgUnavailable)
		}
		return cause
	}

	if isConnectionError(err) {
		return apperror.Wrap(cause, apperror.ErrCodeUnavailable, apperror.MsgUnavailable)
	}

	return cause
}

// isConnectionError распознаёт обрывы соединения, не дошедшие до сервера.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
