// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (config, validation, not_found, ...),
// a severity and free-form context. Packages build them through the fluent
// builder and the CLI maps categories to exit codes through CLIErrorAdapter.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryConfig, "unsupported config format").
//		WithContext("path", path).
//		WithCause(cause).
//		Build()
package errors
