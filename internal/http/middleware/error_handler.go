package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/logger"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно: хэндлеры только вызывают c.Error,
// а статус и тело ответа определяются здесь по коду apperror.
// Неклассифицированные ошибки логируются полностью, клиенту уходит общее сообщение.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := ErrorResponse(err)

		entry := logger.L().WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		})
		switch {
		case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
			entry.Error("Request error")
		case status == http.StatusServiceUnavailable:
			entry.Warn("Storage unavailable")
		default:
			entry.Debug("Request rejected")
		}

		// Ответ уже отправлен, остаётся только лог
		if c.Writer.Written() {
			return
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// ErrorResponse переводит ошибку в HTTP статус и тело ответа.
func ErrorResponse(err error) (int, dto.ErrorResponse) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperror.ErrCodeInternal {
		return http.StatusInternalServerError, dto.ErrorResponse{Error: apperror.MsgInternal}
	}

	resp := dto.ErrorResponse{Error: appErr.Message}
	if appErr.Code == apperror.ErrCodeValidation {
		resp.Details = appErr.Details
	}
	return appErr.HTTPStatus, resp
}
