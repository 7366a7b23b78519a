package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// Закрытый набор кодов ошибок приложения. Любая ошибка, дошедшая до HTTP слоя,
// либо несёт один из этих кодов, либо считается внутренней.
const (
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeUnavailable      ErrorCode = "UNAVAILABLE"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeMissingReference ErrorCode = "MISSING_REFERENCE"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// Сообщения, которые уходят клиенту для ошибок хранилища.
const (
	MsgValidationFailed = "Validation failed"
	MsgAlreadyExists    = "Record already exists"
	MsgMissingReference = "Referenced record is missing. Seed demo records first."
	MsgNotFound         = "Record not found"
	MsgUnavailable      = "Database is unavailable. Check DATABASE_URL and run `mediactl migrate`."
	MsgInternal         = "Unexpected server error"
)

// Details описывает ошибки валидации по полям.
type Details struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Empty сообщает, что ни одной ошибки не накоплено.
func (d *Details) Empty() bool {
	return d == nil || (len(d.FormErrors) == 0 && len(d.FieldErrors) == 0)
}

// AddField добавляет сообщение для поля.
func (d *Details) AddField(field, message string) {
	if d.FieldErrors == nil {
		d.FieldErrors = make(map[string][]string)
	}
	d.FieldErrors[field] = append(d.FieldErrors[field], message)
}

// AddForm добавляет сообщение, не привязанное к полю.
func (d *Details) AddForm(message string) {
	d.FormErrors = append(d.FormErrors, message)
}

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    *Details
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации с деталями по полям.
func Validation(details *Details) *AppError {
	if details == nil {
		details = &Details{}
	}
	if details.FormErrors == nil {
		details.FormErrors = []string{}
	}
	if details.FieldErrors == nil {
		details.FieldErrors = map[string][]string{}
	}
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    MsgValidationFailed,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// ValidationForm создаёт ошибку валидации с одним сообщением уровня формы.
func ValidationForm(message string) *AppError {
	d := &Details{}
	d.AddForm(message)
	return Validation(d)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeMissingReference:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или ErrCodeInternal для неклассифицированных ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeUnavailable
}

var (
	ErrNotFound         = New(ErrCodeNotFound, MsgNotFound)
	ErrAlreadyExists    = New(ErrCodeConflict, MsgAlreadyExists)
	ErrMissingReference = New(ErrCodeMissingReference, MsgMissingReference)
	ErrUnavailable      = New(ErrCodeUnavailable, MsgUnavailable)
)
