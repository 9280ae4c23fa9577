package arbor

import "fmt"

// PanTransform is the display-only transform composed after layout: a 2D
// offset in layout units plus a scale factor. It never feeds back into
// layout coordinates.
type PanTransform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Apply converts a layout-space point to screen space.
func (t PanTransform) Apply(x, y float64) (float64, float64) {
	return (x + t.OffsetX) * t.Scale, (y + t.OffsetY) * t.Scale
}

// Invert converts a screen-space point back to layout space.
func (t PanTransform) Invert(sx, sy float64) (float64, float64) {
	return sx/t.Scale - t.OffsetX, sy/t.Scale - t.OffsetY
}

type panPhase uint8

const (
	panIdle panPhase = iota
	panDragging
)

// PanController tracks pointer-drag gestures and owns the chart's
// PanTransform. It is an explicit state machine (idle -> dragging -> idle)
// over recorded start coordinates; pointer-event handlers are plain
// transitions on that state. Offsets apply uniformly and immediately to the
// node and edge layers; panning never touches layout.
type PanController struct {
	transform PanTransform

	phase         panPhase
	startPointerX float64
	startPointerY float64
	startOffsetX  float64
	startOffsetY  float64
}

// NewPanController creates a controller at offset (0, 0), scale 1.
func NewPanController() *PanController {
	return &PanController{transform: PanTransform{Scale: 1}}
}

// Transform returns the current pan transform.
func (p *PanController) Transform() PanTransform {
	return p.transform
}

// Dragging reports whether a drag gesture is in progress.
func (p *PanController) Dragging() bool {
	return p.phase == panDragging
}

// SetScale sets the display scale. Panics if scale is not positive.
func (p *PanController) SetScale(scale float64) {
	if scale <= 0 {
		panic(fmt.Sprintf("arbor: scale must be positive, got %v", scale))
	}
	p.transform.Scale = scale
}

// Center resets the transform for a fresh dataset: the offset horizontally
// centers layout x = 0 within the container, vertical offset zero, scale 1.
func (p *PanController) Center(containerWidth float64) {
	p.transform = PanTransform{OffsetX: containerWidth / 2, Scale: 1}
	p.phase = panIdle
}

// DragStart records the pointer's starting screen position and the current
// offset, entering the dragging phase.
func (p *PanController) DragStart(px, py float64) {
	p.phase = panDragging
	p.startPointerX = px
	p.startPointerY = py
	p.startOffsetX = p.transform.OffsetX
	p.startOffsetY = p.transform.OffsetY
}

// DragMove updates the offset from the pointer's current screen position:
// start offset plus pointer delta divided by the current scale. No-op unless
// dragging. Out-of-bounds coordinates need no special casing; the arithmetic
// clamps nothing and cannot desynchronize layout.
func (p *PanController) DragMove(px, py float64) {
	if p.phase != panDragging {
		return
	}
	p.transform.OffsetX = p.startOffsetX + (px-p.startPointerX)/p.transform.Scale
	p.transform.OffsetY = p.startOffsetY + (py-p.startPointerY)/p.transform.Scale
}

// DragEnd returns to idle. The accumulated offset persists.
func (p *PanController) DragEnd() {
	p.phase = panIdle
}
