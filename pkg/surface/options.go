package surface

import "github.com/yaklabco/blocksel/pkg/config"

// Option configures a Surface.
type Option func(*options)

type options struct {
	markup config.SurfaceConfig
}

func newOptions(opts []Option) options {
	o := options{markup: config.DefaultSurface()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfig takes marker attribute and class names from cfg. Empty fields
// keep their defaults.
func WithConfig(cfg config.SurfaceConfig) Option {
	return func(o *options) {
		setIf(&o.markup.MarkerAttribute, cfg.MarkerAttribute)
		setIf(&o.markup.PageClass, cfg.PageClass)
		setIf(&o.markup.TitleClass, cfg.TitleClass)
		setIf(&o.markup.FrameClass, cfg.FrameClass)
		setIf(&o.markup.BlockClass, cfg.BlockClass)
		setIf(&o.markup.RichTextClass, cfg.RichTextClass)
		setIf(&o.markup.ChildrenClass, cfg.ChildrenClass)
	}
}

// WithMarkerAttribute sets the attribute that carries block ids.
func WithMarkerAttribute(name string) Option {
	return func(o *options) {
		setIf(&o.markup.MarkerAttribute, name)
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
