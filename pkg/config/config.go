// Package config defines core configuration types for blocksel.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how CLI results are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Default surface markup.
const (
	DefaultMarkerAttribute = "data-block-id"
	DefaultPageClass       = "page"
	DefaultTitleClass      = "page-title"
	DefaultFrameClass      = "frame"
	DefaultBlockClass      = "block"
	DefaultRichTextClass   = "rich-text"
	DefaultChildrenClass   = "block-children"
)

// SurfaceConfig names the attribute and classes the rendering surface uses
// to mark blocks and their regions.
type SurfaceConfig struct {
	// MarkerAttribute carries the block id on each block's marked root.
	MarkerAttribute string `json:"marker_attribute" yaml:"marker_attribute"`

	PageClass     string `json:"page_class" yaml:"page_class"`
	TitleClass    string `json:"title_class" yaml:"title_class"`
	FrameClass    string `json:"frame_class" yaml:"frame_class"`
	BlockClass    string `json:"block_class" yaml:"block_class"`
	RichTextClass string `json:"rich_text_class" yaml:"rich_text_class"`
	ChildrenClass string `json:"children_class" yaml:"children_class"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Format OutputFormat `json:"format" yaml:"format"`
	Color  ColorMode    `json:"color" yaml:"color"`
}

// Config is the root configuration structure for blocksel.
type Config struct {
	Surface SurfaceConfig `json:"surface" yaml:"surface"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Output  OutputConfig  `json:"output" yaml:"output"`

	// CLI-level options (not persisted to config files).

	// Debug forces debug logging.
	Debug bool `json:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Surface: DefaultSurface(),
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// DefaultSurface returns the default surface markup.
func DefaultSurface() SurfaceConfig {
	return SurfaceConfig{
		MarkerAttribute: DefaultMarkerAttribute,
		PageClass:       DefaultPageClass,
		TitleClass:      DefaultTitleClass,
		FrameClass:      DefaultFrameClass,
		BlockClass:      DefaultBlockClass,
		RichTextClass:   DefaultRichTextClass,
		ChildrenClass:   DefaultChildrenClass,
	}
}
