package arbor

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// defaultDragDeadZone is the movement in pixels below which a press-release
// counts as a click instead of a pan drag.
const defaultDragDeadZone = 4.0

// NodeRenderer draws one node's content into the given screen-space box.
// The engine positions the box; what appears inside it is the caller's
// rendering slot. The default renderer draws a filled box with a border.
type NodeRenderer func(screen *ebiten.Image, node NodeVisual, x, y, w, h float64)

// View is the ebiten presentation layer for a Chart. It draws the edge and
// node layers under the chart's pan transform, advances transitions each
// frame, and converts pointer gestures into pan drags and collapse-toggle
// clicks. View implements ebiten.Game, so a host can run it directly:
//
//	chart := arbor.NewChart(arbor.DefaultOptions())
//	chart.SetData(raw)
//	ebiten.RunGame(arbor.NewView(chart, 1024, 768))
type View struct {
	// Background is the clear color.
	Background Color
	// LinkColor strokes the elbow edges.
	LinkColor Color
	// LinkWidth is the edge stroke width in layout units.
	LinkWidth float64
	// NodeFill and NodeBorder are used by the default node renderer.
	// A collapsed node is filled with CollapsedFill instead.
	NodeFill      Color
	NodeBorder    Color
	CollapsedFill Color

	chart      *Chart
	renderNode NodeRenderer

	width, height int

	// Pointer state machine: press -> (dead zone exceeded ? drag : click).
	down         bool
	dragging     bool
	startX       float64
	startY       float64
	lastX        float64
	lastY        float64
	dragDeadZone float64
}

// NewView creates a view for the chart with the given initial container size.
func NewView(chart *Chart, width, height int) *View {
	v := &View{
		Background:    Color{R: 0.97, G: 0.97, B: 0.95, A: 1},
		LinkColor:     Color{R: 0.45, G: 0.45, B: 0.5, A: 1},
		LinkWidth:     2,
		NodeFill:      Color{R: 1, G: 1, B: 1, A: 1},
		NodeBorder:    Color{R: 0.25, G: 0.3, B: 0.4, A: 1},
		CollapsedFill: Color{R: 0.85, G: 0.88, B: 0.95, A: 1},
		chart:         chart,
		width:         width,
		height:        height,
		dragDeadZone:  defaultDragDeadZone,
	}
	v.renderNode = v.DrawDefaultNode
	chart.SetContainerWidth(float64(width))
	return v
}

// SetNodeRenderer replaces the node rendering slot. Passing nil restores the
// default box renderer.
func (v *View) SetNodeRenderer(fn NodeRenderer) {
	if fn == nil {
		v.renderNode = v.DrawDefaultNode
		return
	}
	v.renderNode = fn
}

// SetDragDeadZone sets the minimum movement in pixels before a press becomes
// a pan drag rather than a click.
func (v *View) SetDragDeadZone(pixels float64) {
	v.dragDeadZone = pixels
}

// Chart returns the chart this view presents.
func (v *View) Chart() *Chart {
	return v.chart
}

// Update advances input and transitions by one frame. Part of ebiten.Game.
func (v *View) Update() error {
	v.processPointer()
	v.chart.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// processPointer runs the click-vs-drag state machine for the mouse pointer.
func (v *View) processPointer() {
	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !v.down:
		v.down = true
		v.dragging = false
		v.startX, v.startY = px, py
		v.lastX, v.lastY = px, py

	case pressed && v.down:
		if px == v.lastX && py == v.lastY {
			return
		}
		if !v.dragging {
			dx := px - v.startX
			dy := py - v.startY
			if math.Sqrt(dx*dx+dy*dy) > v.dragDeadZone {
				v.dragging = true
				v.chart.Pan().DragStart(v.startX, v.startY)
			}
		}
		if v.dragging {
			v.chart.Pan().DragMove(px, py)
		}
		v.lastX, v.lastY = px, py

	case !pressed && v.down:
		if v.dragging {
			v.chart.Pan().DragEnd()
		} else if n := v.hitTest(px, py); n != nil {
			v.chart.ToggleCollapse(n.Key)
		}
		v.down = false
		v.dragging = false
	}
}

// hitTest returns the topmost node visual under the screen point, or nil.
// Node visuals draw in order, so the last hit wins.
func (v *View) hitTest(sx, sy float64) *NodeVisual {
	t := v.chart.Pan().Transform()
	nodes := v.chart.Animator().Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Exiting {
			continue
		}
		x, y := t.Apply(n.X, n.Y)
		w := n.Width * t.Scale
		h := n.Height * t.Scale
		if sx >= x && sx <= x+w && sy >= y && sy <= y+h {
			return &nodes[i]
		}
	}
	return nil
}

// Draw renders the edge layer, then the node layer, both under the pan
// transform. Part of ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.Background.toRGBA(1))

	t := v.chart.Pan().Transform()
	strokeW := float32(v.LinkWidth * t.Scale)

	for _, l := range v.chart.Animator().Links() {
		clr := v.LinkColor.toRGBA(l.Alpha)
		sx, sy := t.Apply(l.Source.X, l.Source.Y)
		cx, cy := t.Apply(l.Corner().X, l.Corner().Y)
		tx, ty := t.Apply(l.Target.X, l.Target.Y)
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(cx), float32(cy), strokeW, clr, true)
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(tx), float32(ty), strokeW, clr, true)
	}

	for _, n := range v.chart.Animator().Nodes() {
		x, y := t.Apply(n.X, n.Y)
		v.renderNode(screen, n, x, y, n.Width*t.Scale, n.Height*t.Scale)
	}
}

// DrawDefaultNode is the built-in node rendering slot: a filled box with a
// border, collapsed nodes tinted with CollapsedFill. Custom renderers may
// call it and then draw their own content on top.
func (v *View) DrawDefaultNode(screen *ebiten.Image, node NodeVisual, x, y, w, h float64) {
	fill := v.NodeFill
	if node.Node != nil && node.Node.Collapsed() {
		fill = v.CollapsedFill
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill.toRGBA(node.Alpha), true)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, v.NodeBorder.toRGBA(node.Alpha), true)
}

// Layout reports the render size and keeps the chart's container width
// current for initial centering. Part of ebiten.Game.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		v.chart.SetContainerWidth(float64(outsideWidth))
	}
	return v.width, v.height
}
