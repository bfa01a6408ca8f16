package meta

import (
	"github.com/vango-dev/vango-meta/internal/errors"
)

// Sentinel errors. Returned errors carry details and match these with
// errors.Is.
var (
	// ErrLanguageMismatch is the configuration error returned when a
	// description or keywords value targets a language other than the page
	// language while multi-language output is disabled.
	ErrLanguageMismatch = errors.New("M001")

	// ErrInvalidArgument is returned when a required name is missing.
	ErrInvalidArgument = errors.New("M002")

	// ErrURLBuild is returned when the canonical target cannot be resolved.
	ErrURLBuild = errors.New("M003")
)
