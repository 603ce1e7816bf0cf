package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API & LLM Specific Errors
var (
	ErrBillingQuotaExhausted = errors.New("billing quota exhausted")
	ErrInvalidAPIKey         = errors.New("invalid API key")
	ErrEmptyCompletion       = errors.New("empty completion")
	ErrCompletionFailed      = errors.New("completion failed")
	ErrServiceUnavailable    = errors.New("service unavailable")
)

// Object Storage Errors
var (
	ErrUploadFailed = errors.New("upload failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// LLM Service Specific Error Constructors
func NewBillingQuotaError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusPaymentRequired,
		err:        ErrBillingQuotaExhausted,
		Message:    fmt.Sprintf("%s API quota exceeded. Please check your API key and billing.", service),
		Field:      "billing",
	}
}

func NewInvalidAPIKeyError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidAPIKey,
		Message:    fmt.Sprintf("Invalid %s API key. Please check your environment variables.", service),
		Field:      "api_key",
	}
}

func NewEmptyCompletionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEmptyCompletion,
		Message:    "Failed to generate response from AI assistant",
	}
}

func NewCompletionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrCompletionFailed,
		Message:    "An error occurred while processing your request",
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Message:    fmt.Sprintf("%s is not configured", service),
	}
}

// Object Storage Error Constructors
func NewUploadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadFailed,
		Message:    "Image upload failed.",
		Field:      "image",
		Cause:      cause,
	}
}

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration %s is missing or invalid", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set", varName),
		Field:      varName,
	}
}

func IsBillingQuotaError(err error) bool {
	return errors.Is(err, ErrBillingQuotaExhausted)
}

func IsInvalidAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}

func IsEmptyCompletionError(err error) bool {
	return errors.Is(err, ErrEmptyCompletion)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
