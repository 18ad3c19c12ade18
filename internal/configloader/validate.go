package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "surface.marker_attribute").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the fields a configuration sets. Unset (empty) fields are
// not reported, so a partial file layer validates on its own.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if level := cfg.Log.Level; level != "" && !logging.ValidLevel(level) {
		result.fail("log.level", level, "invalid level %q; must be one of: debug, info, warn, error", level)
	}

	if format := cfg.Output.Format; format != "" && !format.IsValid() {
		result.fail("output.format", format, "invalid format %q; must be one of: text, json, yaml", format)
	}

	if color := cfg.Output.Color; color != "" && !color.IsValid() {
		result.fail("output.color", color, "invalid color mode %q; must be one of: auto, always, never", color)
	}

	validateSurface(cfg.Surface, result)

	return result
}

// ValidateResolved validates a fully merged configuration. In addition to
// Validate it requires the marker attribute to be set.
func ValidateResolved(cfg *config.Config) *ValidationResult {
	result := Validate(cfg)
	if cfg != nil && cfg.Surface.MarkerAttribute == "" {
		result.fail("surface.marker_attribute", "", "marker attribute must not be empty")
	}
	return result
}

func validateSurface(surface config.SurfaceConfig, result *ValidationResult) {
	if marker := surface.MarkerAttribute; marker != "" {
		if strings.ContainsAny(marker, " \t\n\"'=<>/") {
			result.fail("surface.marker_attribute", marker, "invalid attribute name %q", marker)
		} else if !strings.HasPrefix(marker, "data-") {
			result.warn("surface.marker_attribute", marker, "attribute %q is not a data- attribute", marker)
		}
	}

	classes := []struct {
		field string
		value string
	}{
		{"surface.page_class", surface.PageClass},
		{"surface.title_class", surface.TitleClass},
		{"surface.frame_class", surface.FrameClass},
		{"surface.block_class", surface.BlockClass},
		{"surface.rich_text_class", surface.RichTextClass},
		{"surface.children_class", surface.ChildrenClass},
	}

	seen := make(map[string]string, len(classes))
	for _, class := range classes {
		if class.value == "" {
			continue
		}
		if strings.ContainsAny(class.value, " \t\n") {
			result.fail(class.field, class.value, "class %q must be a single class name", class.value)
			continue
		}
		if other, ok := seen[class.value]; ok {
			result.fail(class.field, class.value, "class %q is already used by %s", class.value, other)
			continue
		}
		seen[class.value] = class.field
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
