// Package errors provides the classified errors used across showcase.
//
// Every error carries a category. The category decides the default severity
// and retry strategy, the CLI exit code and the preview server's HTTP status,
// so callers never match on error strings:
//
//	err := errors.NotFoundError("built-in template not found").
//		WithContext("path", fullPath).
//		Build()
package errors
