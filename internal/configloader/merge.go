package configloader

import "github.com/yaklabco/blocksel/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// A zero value in override never replaces a value in base.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	result.Surface = mergeSurface(base.Surface, override.Surface)

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}

	// Debug can only be switched on by a later layer.
	if override.Debug {
		result.Debug = true
	}

	return result
}

func mergeSurface(base, override config.SurfaceConfig) config.SurfaceConfig {
	result := base

	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	pick(&result.MarkerAttribute, override.MarkerAttribute)
	pick(&result.PageClass, override.PageClass)
	pick(&result.TitleClass, override.TitleClass)
	pick(&result.FrameClass, override.FrameClass)
	pick(&result.BlockClass, override.BlockClass)
	pick(&result.RichTextClass, override.RichTextClass)
	pick(&result.ChildrenClass, override.ChildrenClass)

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
