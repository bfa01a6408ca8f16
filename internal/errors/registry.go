package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category    Category
	Message     string
	Explanation string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Registry Errors (M001-M009)
	// ============================================

	"M001": {
		Category:    CategoryConfig,
		Message:     "Language differs from page language",
		Explanation: "multiLanguage is disabled, so description and keywords may only be set for the page's configured language.",
	},
	"M002": {
		Category:    CategoryValidation,
		Message:     "Name must be provided",
		Explanation: "Custom and http-equiv entries are keyed by name; an empty name cannot be rendered.",
	},
	"M003": {
		Category:    CategoryRender,
		Message:     "Canonical URL could not be built",
		Explanation: "The URL builder rejected the canonical target. Check the path or route descriptor.",
	},

	// ============================================
	// Configuration File Errors (M010-M019)
	// ============================================

	"M010": {
		Category:    CategoryFile,
		Message:     "Configuration file not found",
		Explanation: "No meta.json, meta.yaml or meta.yml was found in the given directory.",
	},
	"M011": {
		Category:    CategoryFile,
		Message:     "Configuration file could not be parsed",
		Explanation: "The configuration file is not valid JSON or YAML, or a value has the wrong shape.",
	},
	"M012": {
		Category:    CategoryConfig,
		Message:     "Invalid configuration value",
		Explanation: "A configuration value is outside its allowed range.",
	},
}
