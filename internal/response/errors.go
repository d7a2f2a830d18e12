package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/auth"
	"taskboard/internal/repository"
)

// Kind classifies a failed request.
type Kind string

const (
	KindMissingField       Kind = "MISSING_REQUIRED_FIELD"
	KindInvalidField       Kind = "INVALID_FIELD"
	KindNotFound           Kind = "RESOURCE_NOT_FOUND"
	KindForbidden          Kind = "FORBIDDEN_OWNER_MISMATCH"
	KindMethodNotAllowed   Kind = "UNSUPPORTED_METHOD"
	KindBackendUnavailable Kind = "BACKEND_UNAVAILABLE"
)

func (k Kind) Status() int {
	switch k {
	case KindMissingField, KindInvalidField:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Details is the operator-facing cause, only filled in for backend failures.
func (e *AppError) Details() string {
	if e.Kind == KindBackendUnavailable && e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func Missing(field string) *AppError {
	return &AppError{Kind: KindMissingField, Message: "missing required field: " + field}
}

func Invalid(field, reason string) *AppError {
	return &AppError{Kind: KindInvalidField, Message: fmt.Sprintf("invalid field %s: %s", field, reason)}
}

func NotFound(what string) *AppError {
	return &AppError{Kind: KindNotFound, Message: what + " not found"}
}

var notFoundErrors = []error{
	repository.ErrTaskNotFound,
	repository.ErrTodoNotFound,
	repository.ErrPostNotFound,
	repository.ErrCommentNotFound,
	repository.ErrUserNotFound,
}

// FromError converts any error raised while serving a request into an AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return &AppError{Kind: KindNotFound, Message: nf.Error(), Err: err}
		}
	}

	if errors.Is(err, auth.ErrNotOwner) {
		return &AppError{Kind: KindForbidden, Message: "only the author can modify this resource", Err: err}
	}

	if bindErr := fromBindingError(err); bindErr != nil {
		return bindErr
	}

	return &AppError{Kind: KindBackendUnavailable, Message: "internal server error", Err: err}
}

func fromBindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return &AppError{Kind: KindMissingField, Message: "missing required field: " + fe.Field(), Err: err}
			}
		}
		fe := verrs[0]
		return &AppError{Kind: KindInvalidField, Message: fmt.Sprintf("invalid field %s: failed %s", fe.Field(), ruleName(fe)), Err: err}
	}

	if errors.Is(err, io.EOF) {
		return &AppError{Kind: KindMissingField, Message: "request body is required", Err: err}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &AppError{Kind: KindInvalidField, Message: fmt.Sprintf("invalid field %s: expected %s", typeErr.Field, typeErr.Type), Err: err}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &AppError{Kind: KindInvalidField, Message: "malformed JSON body", Err: err}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return &AppError{Kind: KindInvalidField, Message: fmt.Sprintf("invalid number %q", numErr.Num), Err: err}
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return &AppError{Kind: KindInvalidField, Message: fmt.Sprintf("invalid date %q", timeErr.Value), Err: err}
	}

	return nil
}

func ruleName(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + strings.ReplaceAll(fe.Param(), " ", "|")
}
