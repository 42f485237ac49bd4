package errors

import (
	"errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound       ErrCode = "NOT_FOUND"
	ErrCodeFormat         ErrCode = "FORMAT_ERROR"
	ErrCodeNameMismatch   ErrCode = "NAME_MISMATCH"
	ErrCodeInvalidProject ErrCode = "INVALID_PROJECT"
	ErrCodeRateLimited    ErrCode = "RATE_LIMITED"
	ErrCodeBadRequest     ErrCode = "BAD_REQUEST"
	ErrCodeInternal       ErrCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewFormatError reports an input file that does not follow the data layout.
func NewFormatError(filename, message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFormat,
		Message: fmt.Sprintf("%s: %s", filename, message),
		Err:     err,
	}
}

// NewNameMismatchError reports a record whose github field disagrees with its filename.
func NewNameMismatchError(filename, github string) *AppError {
	return &AppError{
		Code:    ErrCodeNameMismatch,
		Message: fmt.Sprintf("value of github field '%s' is not the same as the filename '%s'", github, filename),
	}
}

// NewInvalidProjectError reports a project URL that matches no known shape.
func NewInvalidProjectError(url, name, github string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidProject,
		Message: fmt.Sprintf("Invalid project '%s' by %s github='%s'", url, name, github),
	}
}

// NewRateLimitedError creates a new rate limited error
func NewRateLimitedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: message,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

func hasCode(err error, code ErrCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsFormat checks if the error came from a malformed input file
func IsFormat(err error) bool {
	return hasCode(err, ErrCodeFormat)
}

// IsNameMismatch checks if the error is a filename/github mismatch
func IsNameMismatch(err error) bool {
	return hasCode(err, ErrCodeNameMismatch)
}

// IsInvalidProject checks if the error is an unrecognized project URL
func IsInvalidProject(err error) bool {
	return hasCode(err, ErrCodeInvalidProject)
}

// IsRateLimited checks if the error is a rate limited error
func IsRateLimited(err error) bool {
	return hasCode(err, ErrCodeRateLimited)
}
