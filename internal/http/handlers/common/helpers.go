package common

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
)

// RespondData отправляет успешный ответ в обёртке {"data": ...}.
func RespondData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, dto.DataResponse{Data: data})
}

// AbortWithError передаёт ошибку в middleware.ErrorHandler и прерывает цепочку.
// Статус и тело ответа выбирает middleware.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
