package arbor

import "image/color"

// Point is a 2D point in layout space.
type Point struct {
	X, Y float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA, scaling alpha by mul.
func (c Color) toRGBA(mul float64) color.RGBA {
	a := clamp01(c.A * mul)
	return color.RGBA{
		R: uint8(clamp01(c.R) * a * 255),
		G: uint8(clamp01(c.G) * a * 255),
		B: uint8(clamp01(c.B) * a * 255),
		A: uint8(a * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Default option values, used when the corresponding Options field is zero.
const (
	DefaultNodeWidth          = 100.0
	DefaultNodeHeight         = 100.0
	DefaultLevelSpacing       = 200.0
	DefaultTransitionDuration = 0.5 // seconds
)

// Options configures layout geometry and interaction behavior.
// Numeric fields left at zero fall back to their defaults at layout time.
// Construct via DefaultOptions and override fields as needed; a zero-value
// Options literal has collapse toggling disabled.
type Options struct {
	// NodeWidth and NodeHeight are the fixed dimensions every node box is
	// laid out with. The tidy-tree placement has no per-node sizing.
	NodeWidth  float64
	NodeHeight float64

	// LevelSpacing is the vertical distance between consecutive depth levels.
	LevelSpacing float64

	// CollapseEnabled allows Chart.ToggleCollapse to take effect. False in
	// a zero-value Options literal; DefaultOptions turns it on.
	CollapseEnabled bool

	// TransitionDuration is the length, in seconds, of enter and update
	// transitions. Exit transitions run in half this time. Zero falls back
	// to the default; a negative value disables animation entirely, every
	// transition snapping straight to its target.
	TransitionDuration float32
}

// DefaultOptions returns an Options with every field set to its default.
func DefaultOptions() Options {
	return Options{
		NodeWidth:          DefaultNodeWidth,
		NodeHeight:         DefaultNodeHeight,
		LevelSpacing:       DefaultLevelSpacing,
		CollapseEnabled:    true,
		TransitionDuration: DefaultTransitionDuration,
	}
}

// applyDefaults fills zero numeric fields with their default values.
// CollapseEnabled is left alone: false is a meaningful setting.
func (o Options) applyDefaults() Options {
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.LevelSpacing == 0 {
		o.LevelSpacing = DefaultLevelSpacing
	}
	if o.TransitionDuration == 0 {
		o.TransitionDuration = DefaultTransitionDuration
	}
	return o
}
