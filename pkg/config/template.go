package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template holding the
// default configuration.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return NewConfig().ToYAMLWithHeader(templateHeader)
	case "json":
		data, err := json.MarshalIndent(NewConfig(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

const templateHeader = `# blocksel configuration
#
# surface: markup used to find blocks in rendered HTML
# log.level: debug, info, warn or error
# output.format: text, json or yaml
# output.color: auto, always or never`
