package dto

import "github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"

// DataResponse стандартная обёртка успешного ответа.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse стандартный ответ с ошибкой. Details заполняется только для ошибок валидации.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details *apperror.Details `json:"details,omitempty"`
}

// AssetEvent сообщение, которое хаб отправляет в WebSocket.
type AssetEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
