package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Text-generation model errors
var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrModelFailed      = errors.New("model call failed")
	ErrEmptyCompletion  = errors.New("model returned an empty completion")
)

// Configuration errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewModelUnavailableError is returned when no summarisation model is configured.
func NewModelUnavailableError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrModelUnavailable,
		Details:    "summary generation is not configured",
	}
}

// NewModelError wraps a failed model call as a 502.
func NewModelError(model string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrModelFailed,
		Details:    fmt.Sprintf("%s: %v", model, cause),
		Cause:      cause,
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("%s is required", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key, value string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("unsupported %s %q", key, value),
		Field:      key,
	}
}

func IsModelUnavailable(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}

func IsModelError(err error) bool {
	return errors.Is(err, ErrModelFailed)
}
