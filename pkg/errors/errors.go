// Package errors defines the error taxonomy shared by the engine boundary and
// the CLI: sentinel values for errors.Is checks plus an AppError that carries a
// human message and the process exit code to use.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDecode       = errors.New("malformed corpus")
	ErrInvalidInput = errors.New("invalid input")
	ErrConfig       = errors.New("invalid configuration")
	ErrInternal     = errors.New("internal error")
)

// Exit codes follow sysexits(3).
const (
	ExitFailure = 1
	ExitUsage   = 64
	ExitData    = 65
	ExitConfig  = 78
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// Decodef builds a data-format error for a corpus that could not be decoded.
func Decodef(format string, args ...any) *AppError {
	return Newf(ErrDecode, ExitData, format, args...)
}

// ExitCode maps err to a process exit code. A nil error maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.ExitCode != 0 {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrDecode):
		return ExitData
	case errors.Is(err, ErrInvalidInput):
		return ExitUsage
	case errors.Is(err, ErrConfig):
		return ExitConfig
	default:
		return ExitFailure
	}
}
