package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/logger"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
)

// Сообщения уровня формы.
const (
	MsgInvalidJSON     = "Request body must be a valid JSON object"
	MsgInvalidForm     = "Request body must be a valid multipart form"
	MsgFileRequired    = "file is required"
	MsgSingleFile      = "exactly one file must be provided"
	MsgEmptyUpdate     = "At least one field must be provided"
	MsgParamIsRequired = "%s is required"
	MsgNotNull         = "Must not be null"
)

var initOnce sync.Once

// Init настраивает валидатор gin так, чтобы в ошибках фигурировали имена полей из
// json/form тегов, а не имена полей Go структуры.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FromBindError переводит ошибку биндинга JSON тела в ошибку валидации с деталями по всем полям.
func FromBindError(err error) *apperror.AppError {
	return fromBindError(err, MsgInvalidJSON)
}

// FromFormBindError то же для multipart формы.
func FromFormBindError(err error) *apperror.AppError {
	return fromBindError(err, MsgInvalidForm)
}

// fromBindError раскладывает ошибку по полям. Текст нераспознанной ошибки
// клиенту не отдаётся, вместо него используется fallback.
func fromBindError(err error, fallback string) *apperror.AppError {
	details := &apperror.Details{}

	var (
		validationErrs validator.ValidationErrors
		nullErr        *dto.NullFieldError
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
	)

	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			details.AddField(fe.Field(), describe(fe))
		}
	case errors.As(err, &nullErr):
		for _, field := range nullErr.Fields {
			details.AddField(field, MsgNotNull)
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			details.AddForm(MsgInvalidJSON)
			break
		}
		details.AddField(field, fmt.Sprintf("Expected %s, received %s", expectedKind(typeErr.Type), typeErr.Value))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		details.AddForm(MsgInvalidJSON)
	default:
		logger.L().WithError(err).Debug("validation: нераспознанная ошибка биндинга")
		details.AddForm(fallback)
	}

	return apperror.Validation(details)
}

// MissingParam ошибка отсутствующего обязательного query параметра.
func MissingParam(name string) *apperror.AppError {
	return apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf(MsgParamIsRequired, name))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

func expectedKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return t.String()
	}
}
