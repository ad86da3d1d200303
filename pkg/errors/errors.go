package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	CodeNetwork      = "NETWORK_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeTimeout      = "TIMEOUT"
)

// Reasons carried by a 401 from the authentication endpoints.
const (
	ReasonBanned         = "BANNED"
	ReasonDeleted        = "DELETED"
	ReasonNonVerified    = "NON_VERIFIED"
	ReasonBadCredentials = "BAD_CREDENTIALS"
)

// StatusNetwork is the pseudo status used when no HTTP response was received.
const StatusNetwork = 0

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Reason     string         `json:"reason,omitempty"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Reason:  e.Reason,
		Details: e.Details,
	})
	return data
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func Network(err error) *AppError {
	return &AppError{
		Code:       CodeNetwork,
		Message:    "Unable to reach the server, check your connection",
		HTTPStatus: StatusNetwork,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(reason, message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		Reason:     reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// backendError is the union of the error bodies the backend is known to send.
type backendError struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Reason  string            `json:"reason"`
	Errors  map[string]string `json:"errors"`
}

// FromResponse translates a non-2xx backend answer into an AppError.
// Field level messages from a 400 are kept verbatim in Details.
func FromResponse(status int, body []byte) *AppError {
	var be backendError
	_ = json.Unmarshal(body, &be)

	msg := strings.TrimSpace(be.Message)
	if msg == "" {
		msg = strings.TrimSpace(be.Error)
	}
	if msg == "" && len(body) > 0 && body[0] != '{' {
		msg = strings.TrimSpace(string(body))
	}

	switch status {
	case StatusNetwork:
		return Network(nil)
	case http.StatusUnauthorized:
		reason := be.Reason
		if reason == "" {
			reason = be.Code
		}
		return Unauthorized(reason, unauthorizedMessage(reason, msg))
	case http.StatusForbidden:
		return Forbidden(orDefault(msg, "You are not allowed to perform this action"))
	case http.StatusBadRequest:
		appErr := Validation(orDefault(msg, "The submitted data is invalid"), nil)
		if len(be.Errors) > 0 {
			details := make(map[string]any, len(be.Errors))
			for field, fieldMsg := range be.Errors {
				details[field] = fieldMsg
			}
			appErr.Details = details
		}
		return appErr
	case http.StatusNotFound:
		return New(CodeNotFound, orDefault(msg, "The requested resource does not exist"), status)
	case http.StatusConflict:
		return Conflict(orDefault(msg, "This operation conflicts with existing data"))
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return Timeout(orDefault(msg, "The server took too long to answer"))
	}
	if status >= 500 {
		return New(CodeInternal, "The server encountered an error, please try again later", status)
	}
	return New(CodeInternal, orDefault(msg, fmt.Sprintf("Unexpected server answer (%d)", status)), status)
}

func unauthorizedMessage(reason, fallback string) string {
	switch reason {
	case ReasonBanned:
		return "Your account has been banned"
	case ReasonDeleted:
		return "Your account has been deleted"
	case ReasonNonVerified:
		return "Your account has not been verified yet, check your emails"
	case ReasonBadCredentials:
		return "Incorrect email or password"
	}
	return orDefault(fallback, "Your session has expired, please log in again")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// UserMessage renders any error as a string fit for display. Field level
// validation messages are appended in a stable order.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	appErr := AsAppError(err)
	if appErr.Code == CodeInternal && appErr.HTTPStatus == http.StatusInternalServerError && appErr.Err != nil {
		return "An unexpected error occurred"
	}
	if appErr.Code != CodeValidation || len(appErr.Details) == 0 {
		return appErr.Message
	}
	fields := make([]string, 0, len(appErr.Details))
	for field := range appErr.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var sb strings.Builder
	sb.WriteString(appErr.Message)
	for _, field := range fields {
		sb.WriteString("\n  - ")
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(fmt.Sprint(appErr.Details[field]))
	}
	return sb.String()
}
