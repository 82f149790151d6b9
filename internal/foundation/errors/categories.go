package errors

import "net/http"

// ErrorCategory says which part of a build an error came from.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound covers required files that are missing, such as the
	// source directory or a built-in template.
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryTemplate   ErrorCategory = "template"
	CategoryBuild      ErrorCategory = "build"

	// CategoryWatch is used by the file watcher and its rescan scheduler.
	CategoryWatch    ErrorCategory = "watch"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal"
	SeverityError ErrorSeverity = "error"
)

// RetryStrategy tells the rebuild loop whether running again can help.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryUserAction RetryStrategy = "user"
)

// categorySpec holds the defaults and presentation of one category.
type categorySpec struct {
	severity ErrorSeverity
	retry    RetryStrategy
	exitCode int
	status   int
}

var categories = map[ErrorCategory]categorySpec{
	CategoryConfig:     {SeverityFatal, RetryUserAction, 7, http.StatusBadRequest},
	CategoryValidation: {SeverityFatal, RetryUserAction, 2, http.StatusBadRequest},
	CategoryNotFound:   {SeverityFatal, RetryNever, 4, http.StatusNotFound},
	CategoryFileSystem: {SeverityError, RetryBackoff, 11, http.StatusServiceUnavailable},
	CategoryTemplate:   {SeverityError, RetryUserAction, 11, http.StatusServiceUnavailable},
	CategoryBuild:      {SeverityFatal, RetryNever, 11, http.StatusServiceUnavailable},
	CategoryWatch:      {SeverityError, RetryNever, 12, http.StatusInternalServerError},
	CategoryInternal:   {SeverityFatal, RetryNever, 10, http.StatusInternalServerError},
}

func specFor(c ErrorCategory) categorySpec {
	if s, ok := categories[c]; ok {
		return s
	}
	return categorySpec{SeverityError, RetryNever, 1, http.StatusInternalServerError}
}

// ErrorContext carries structured details such as the offending path.
type ErrorContext map[string]any

// GetString returns a string detail.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
