package errors

import (
	"errors"
	"fmt"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeConflict            = "CONFLICT"
	CodeNotFoundOrForbidden = "NOT_FOUND_OR_FORBIDDEN"
	CodeStorage             = "STORAGE_ERROR"
	CodeAsset               = "ASSET_ERROR"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUnauthorized        = "UNAUTHORIZED"
)

const (
	MsgInvalidCredentials = "Invalid username/email and/or password"
	MsgInvalidToken       = "Invalid or expired password reset link. Please request a new one."
	MsgNotFoundOrDenied   = "Recipe not found or you do not have permission to modify it."
	MsgInvalidFileType    = "Invalid file type for image. Allowed: png, jpg, jpeg, gif."
	MsgStorage            = "A database error occurred. Please try again."
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")

	ErrNotFoundOrForbidden = errors.New("record not found or not owned by caller")
	ErrInvalidFileType     = errors.New("file type not allowed")
)

type AppError struct {
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return NewAppError(CodeValidation, message, nil)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(CodeConflict, message, err)
}

func NotFoundOrForbidden() *AppError {
	return NewAppError(CodeNotFoundOrForbidden, MsgNotFoundOrDenied, ErrNotFoundOrForbidden)
}

// Storage hides the driver error behind a generic message; callers log Err.
func Storage(err error) *AppError {
	return NewAppError(CodeStorage, MsgStorage, err)
}

func InvalidToken() *AppError {
	return NewAppError(CodeInvalidToken, MsgInvalidToken, ErrInvalidToken)
}

func InvalidCredentials() *AppError {
	return NewAppError(CodeInvalidCredentials, MsgInvalidCredentials, ErrInvalidCredentials)
}

func Asset(message string, err error) *AppError {
	return NewAppError(CodeAsset, message, err)
}

// CodeOf returns the AppError code carried by err, or "" for plain errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return MsgStorage
}
