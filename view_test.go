package arbor

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func scenarioView(t *testing.T) (*Chart, *View) {
	t.Helper()
	c := scenarioChart(t)
	v := NewView(c, 800, 600)
	c.Update(2) // settle enter fades so hit testing sees final visuals
	return c, v
}

func TestViewHitTestFindsNodeUnderPointer(t *testing.T) {
	c, v := scenarioView(t)

	// Initial centering puts layout x = 0 at screen x = 400. Node "1" spans
	// layout (-50..50, 0..100).
	hit := v.hitTest(400, 50)
	if hit == nil {
		t.Fatal("expected a hit on node 1")
	}
	if labelOf(c.Lookup(hit.Key)) != "1" {
		t.Errorf("hit node = %s, want 1", labelOf(c.Lookup(hit.Key)))
	}

	if v.hitTest(400, 150) != nil {
		t.Error("hit between levels should find nothing")
	}

	hit = v.hitTest(350, 250)
	if hit == nil || labelOf(c.Lookup(hit.Key)) != "2" {
		t.Error("expected a hit on node 2")
	}
}

func TestViewHitTestRespectsPan(t *testing.T) {
	c, v := scenarioView(t)

	c.Pan().DragStart(0, 0)
	c.Pan().DragMove(100, 0)
	c.Pan().DragEnd()

	if v.hitTest(400, 50) != nil && labelOf(c.Lookup(v.hitTest(400, 50).Key)) == "1" {
		t.Error("hit test ignored the pan offset")
	}
	hit := v.hitTest(500, 50)
	if hit == nil || labelOf(c.Lookup(hit.Key)) != "1" {
		t.Error("expected node 1 at its panned position")
	}
}

func TestViewHitTestSkipsExitingNodes(t *testing.T) {
	c, v := scenarioView(t)
	two := findLabel(t, c.Root(), "2")
	c.ToggleCollapse(two.Key)

	// Nodes 3 and 4 are mid-exit; they must not swallow clicks.
	for _, n := range c.Animator().Nodes() {
		if !n.Exiting {
			continue
		}
		t1 := c.Pan().Transform()
		sx, sy := t1.Apply(n.X+n.Width/2, n.Y+n.Height/2)
		if hit := v.hitTest(sx, sy); hit != nil && hit.Exiting {
			t.Error("hit test returned an exiting node")
		}
	}
}

func TestViewSetNodeRendererNilRestoresDefault(t *testing.T) {
	_, v := scenarioView(t)
	v.SetNodeRenderer(func(_ *ebiten.Image, _ NodeVisual, _, _, _, _ float64) {})
	v.SetNodeRenderer(nil)
	if v.renderNode == nil {
		t.Error("nil renderer should restore the default, not clear it")
	}
}

func TestViewLayoutTracksContainerWidth(t *testing.T) {
	c, v := scenarioView(t)

	w, h := v.Layout(1000, 700)
	if w != 1000 || h != 700 {
		t.Errorf("Layout = (%d, %d), want (1000, 700)", w, h)
	}
	// Chart was never panned, so the resize recenters.
	if got := c.Pan().Transform().OffsetX; got != 500 {
		t.Errorf("offset after resize = %v, want 500", got)
	}
}
