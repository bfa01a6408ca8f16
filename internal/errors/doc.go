// Package errors provides coded, structured errors for vango-meta.
//
// Every error carries a short code (e.g. "M001") that maps to a registered
// template with a category, a one-line message and a longer explanation.
// Callers may attach a detail, a hint and a wrapped cause:
//
//	err := errors.New("M001").
//	    WithDetail(`language "en" differs from page language "de"`).
//	    WithSuggestion("Enable multiLanguage or drop the language argument")
//
// Errors compare by code, so a registered sentinel works with errors.Is:
//
//	var ErrLanguageMismatch = errors.New("M001")
//	if stderrors.Is(err, ErrLanguageMismatch) { ... }
//
// # Error Categories
//
//   - config: the page configuration forbids the requested operation
//   - validation: a caller passed an unusable argument
//   - render: a collaborator failed while producing a tag
//   - file: a configuration file could not be read or parsed
package errors
