package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrKindNotFound ErrorKind = iota + 1
	ErrKindForbidden
	ErrKindBadRequest
	ErrKindPreconditionFailed
	ErrKindInternal
)

// AppError несёт вид ошибки и машинный код причины для клиента.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(code, message string) *AppError {
	return &AppError{Kind: ErrKindNotFound, Code: code, Message: message}
}

func Forbidden(code, message string) *AppError {
	return &AppError{Kind: ErrKindForbidden, Code: code, Message: message}
}

func BadRequest(code, message string) *AppError {
	return &AppError{Kind: ErrKindBadRequest, Code: code, Message: message}
}

func PreconditionFailed(code, message string) *AppError {
	return &AppError{Kind: ErrKindPreconditionFailed, Code: code, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: ErrKindInternal, Code: "internal_error", Message: message, Err: err}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
