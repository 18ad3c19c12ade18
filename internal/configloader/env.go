package configloader

import (
	"fmt"
	"os"
	"sort"

	"github.com/yaklabco/blocksel/pkg/config"
)

// envVarPrefix is the prefix for all blocksel environment variables.
const envVarPrefix = "BLOCKSEL_"

// envMapping binds one environment variable to a string field.
type envMapping struct {
	field       string
	description string
	set         func(cfg *config.Config, value string)
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MARKER_ATTRIBUTE": {
		field:       "surface.marker_attribute",
		description: "Attribute carrying the block id on rendered nodes",
		set:         func(cfg *config.Config, v string) { cfg.Surface.MarkerAttribute = v },
	},
	"PAGE_CLASS": {
		field:       "surface.page_class",
		description: "Class of the rendered page root",
		set:         func(cfg *config.Config, v string) { cfg.Surface.PageClass = v },
	},
	"FRAME_CLASS": {
		field:       "surface.frame_class",
		description: "Class of rendered frames",
		set:         func(cfg *config.Config, v string) { cfg.Surface.FrameClass = v },
	},
	"BLOCK_CLASS": {
		field:       "surface.block_class",
		description: "Class of rendered content blocks",
		set:         func(cfg *config.Config, v string) { cfg.Surface.BlockClass = v },
	},
	"LOG_LEVEL": {
		field:       "log.level",
		description: "Log level: debug, info, warn, or error",
		set:         func(cfg *config.Config, v string) { cfg.Log.Level = v },
	},
	"FORMAT": {
		field:       "output.format",
		description: "Output format: text, json, or yaml",
		set:         func(cfg *config.Config, v string) { cfg.Output.Format = config.OutputFormat(v) },
	},
	"COLOR": {
		field:       "output.color",
		description: "Color mode: auto, always, or never",
		set:         func(cfg *config.Config, v string) { cfg.Output.Color = config.ColorMode(v) },
	},
}

// LoadFromEnv applies BLOCKSEL_* environment overrides to cfg.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		value, ok := lookup(envVarPrefix + suffix)
		if !ok || value == "" {
			continue
		}
		if mapping.set == nil {
			return fmt.Errorf("no setter for %s%s", envVarPrefix, suffix)
		}
		mapping.set(cfg, value)
	}

	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
