package errx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

// Kind classifies an AppError so callers can decide how to recover.
type Kind string

const (
	KindConfig   Kind = "config"
	KindInvalid  Kind = "invalid"
	KindQuota    Kind = "quota"
	KindModel    Kind = "model"
	KindUpstream Kind = "upstream"
	KindStorage  Kind = "storage"
	KindNotFound Kind = "not_found"
	KindInternal Kind = "internal"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// ModelErrorMessage describes language model failures.
	ModelErrorMessage = "language model call failed"
	// QuotaErrorMessage describes exhausted model quota after retries.
	QuotaErrorMessage = "language model quota exhausted"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// StorageErrorMessage describes plan store failures.
	StorageErrorMessage = "plan store operation failed"
)

// AppError wraps an underlying error with a kind and safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Config reports a fatal configuration problem. The message is surfaced verbatim.
func Config(format string, args ...any) *AppError {
	return &AppError{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Invalid reports a rejected request.
func Invalid(format string, args ...any) *AppError {
	return &AppError{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record.
func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// WrapModel wraps a non-retryable language model error.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindModel, ModelErrorMessage)
}

// WrapQuota wraps a quota error that survived every retry.
func WrapQuota(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindQuota, QuotaErrorMessage)
}

// WrapStorage wraps a plan store error.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindStorage, StorageErrorMessage)
}

// WrapRedis maps Redis errors to AppError, distinguishing missing keys.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, KindNotFound, RedisNotFoundMessage)
	}
	return New(err, KindStorage, RedisErrorMessage)
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsQuota reports whether err is a rate-limit or quota failure from the model provider.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind == KindQuota {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == 429 || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	// eino-ext providers sometimes flatten the provider error into text.
	msg := err.Error()
	return strings.Contains(msg, "ResourceExhausted") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "Error 429")
}

// UserMessage converts an error into the message shown to a user.
// Config errors are shown verbatim; other AppErrors show their safe message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindConfig || appErr.Kind == KindInvalid || appErr.Kind == KindNotFound {
			return "Error: " + appErr.Message
		}
		return "Error: " + appErr.Error()
	}
	return "Error: " + err.Error()
}
