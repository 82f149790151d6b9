package errors

import "maps"

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error with the defaults of its category.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	spec := specFor(category)
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: spec.severity,
		retry:    spec.retry,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError starts an error with err as its cause.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// Retryable marks the error as transient.
func (b *ErrorBuilder) Retryable() *ErrorBuilder {
	b.err.retry = RetryBackoff
	return b
}

// UserAction marks the error as fixable only by editing sources or config.
func (b *ErrorBuilder) UserAction() *ErrorBuilder {
	b.err.retry = RetryUserAction
	return b
}

// Build returns the error. The builder can be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	out.context = maps.Clone(b.err.context)
	return &out
}

func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func NotFoundError(message string) *ErrorBuilder   { return NewError(CategoryNotFound, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func TemplateError(message string) *ErrorBuilder   { return NewError(CategoryTemplate, message) }
func BuildError(message string) *ErrorBuilder      { return NewError(CategoryBuild, message) }
func WatchError(message string) *ErrorBuilder      { return NewError(CategoryWatch, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
