// Package errors defines the structured error type shared by dotflex
// packages. Every error carries a stable code so callers and tests can
// branch on the kind of failure without matching message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a kind of failure
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrNotSupported ErrorCode = "NOT_SUPPORTED"

	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigPaths ErrorCode = "CONFIG_PATHS"

	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"

	ErrFeatureNotFound ErrorCode = "FEATURE_NOT_FOUND"
	ErrFeatureInvalid  ErrorCode = "FEATURE_INVALID"

	ErrNotViable     ErrorCode = "NOT_VIABLE"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"
	ErrInstallFailed ErrorCode = "INSTALL_FAILED"

	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	ErrRepoNotFound ErrorCode = "REPO_NOT_FOUND"
	ErrSyncFailed   ErrorCode = "SYNC_FAILED"
)

// Persistent reports whether the code describes broken configuration or
// persisted state. Such failures end the CLI, while operation failures
// are reported per step.
func (c ErrorCode) Persistent() bool {
	return strings.HasPrefix(string(c), "CONFIG_") || strings.HasPrefix(string(c), "MANIFEST_")
}

// DotflexError is a failure with a code, a message, optional details for
// logging, and the error it wraps, if any.
type DotflexError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DotflexError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DotflexError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *DotflexError with the same code, so errors.Is works
// against a sentinel built with New.
func (e *DotflexError) Is(target error) bool {
	t, ok := target.(*DotflexError)
	return ok && t.Code == e.Code
}

// WithDetail records a key/value pair and returns e for chaining
func (e *DotflexError) WithDetail(key string, value interface{}) *DotflexError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an error with a code and message
func New(code ErrorCode, message string) *DotflexError {
	return &DotflexError{Code: code, Message: message, Details: map[string]interface{}{}}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotflexError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *DotflexError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotflexError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// As returns the outermost *DotflexError in err's chain
func As(err error) (*DotflexError, bool) {
	var de *DotflexError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsErrorCode reports whether any DotflexError in err's chain has code.
// A NOT_VIABLE error wrapped into INSTALL_FAILED matches both.
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		de, ok := As(err)
		if !ok {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost code, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if de, ok := As(err); ok {
		return de.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost error's details, or nil
func GetErrorDetails(err error) map[string]interface{} {
	if de, ok := As(err); ok {
		return de.Details
	}
	return nil
}

// UserMessage renders err for people: codes are dropped, the messages of
// every layer are kept, including context added with fmt.Errorf("...: %w").
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if de, ok := err.(*DotflexError); ok {
		if de.Wrapped != nil {
			return de.Message + ": " + UserMessage(de.Wrapped)
		}
		return de.Message
	}

	inner := errors.Unwrap(err)
	if inner == nil {
		return err.Error()
	}
	prefix, found := strings.CutSuffix(err.Error(), inner.Error())
	if !found {
		return err.Error()
	}
	return prefix + UserMessage(inner)
}
