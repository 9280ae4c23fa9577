package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LinkVisual is the current animated presentation state of one link: the
// interpolated elbow endpoints plus opacity. Exiting links linger until their
// fade-out completes.
type LinkVisual struct {
	Key     LinkKey
	Source  Point
	Target  Point
	Alpha   float64
	Exiting bool
}

// Corner returns the elbow corner for the current interpolated endpoints.
func (v LinkVisual) Corner() Point {
	return Point{X: v.Source.X, Y: v.Target.Y}
}

// NodeVisual is the current animated presentation state of one node. The
// visual for a given key is reused (repositioned, never recreated) for as
// long as the key stays in the layout, which is what makes position
// transitions continuous.
type NodeVisual struct {
	Key     string
	Node    *TreeNode
	X, Y    float64
	Width   float64
	Height  float64
	Alpha   float64
	Exiting bool
}

// linkAnim holds one link's tween state. Geometry interpolates from -> to by
// a single progress tween; alpha has its own tween so enter/exit fades and
// geometry moves compose independently.
type linkAnim struct {
	from, to LinkGeometry
	t        float64 // progress in [0, 1]; 1 when settled
	progress *gween.Tween

	alpha      float64
	alphaTween *gween.Tween

	exiting bool
}

func (l *linkAnim) current() LinkGeometry {
	g := l.to
	g.SourcePoint = lerpPoint(l.from.SourcePoint, l.to.SourcePoint, l.t)
	g.TargetPoint = lerpPoint(l.from.TargetPoint, l.to.TargetPoint, l.t)
	return g
}

type nodeAnim struct {
	node         *TreeNode
	fromX, fromY float64
	toX, toY     float64
	w, h         float64
	t            float64
	progress     *gween.Tween

	alpha      float64
	alphaTween *gween.Tween

	exiting bool
}

func (n *nodeAnim) currentXY() (float64, float64) {
	return lerp(n.fromX, n.toX, n.t), lerp(n.fromY, n.toY, n.t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpPoint(a, b Point, t float64) Point {
	return Point{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

// Animator owns the time-driven interpolation between successive layout
// passes. Apply retargets every element to the newest frame (entering links
// fade in at final geometry, persisting links tween their geometry, dropped
// links fade out over half the duration and are then removed; node visuals
// mirror the same rules with position instead of path geometry). A new Apply
// while a previous transition is still in flight cancels it and retargets
// from the current interpolated values: last write wins, nothing queues.
//
// There is no internal clock. The presentation layer calls Update(dt) each
// frame, the same way it drives any other tween group.
type Animator struct {
	duration float32

	links     map[LinkKey]*linkAnim
	linkOrder []LinkKey
	nodes     map[string]*nodeAnim
	nodeOrder []string
}

// NewAnimator creates an Animator with the given transition duration in
// seconds. A non-positive duration disables animation: Apply snaps every
// element straight to its target and removes exits immediately.
func NewAnimator(duration float32) *Animator {
	return &Animator{
		duration: duration,
		links:    make(map[LinkKey]*linkAnim),
		nodes:    make(map[string]*nodeAnim),
	}
}

// SetDuration changes the duration used by subsequent Apply calls.
// In-flight transitions keep their original timing.
func (a *Animator) SetDuration(duration float32) {
	a.duration = duration
}

// Apply retargets the animator to a newly computed frame.
func (a *Animator) Apply(frame Frame) {
	a.applyLinks(frame.Links)
	a.applyNodes(frame.Nodes)
}

func (a *Animator) applyLinks(next []LinkGeometry) {
	seen := make(map[LinkKey]struct{}, len(next))
	prevOrder := append([]LinkKey(nil), a.linkOrder...)
	a.linkOrder = a.linkOrder[:0]

	for _, g := range next {
		key := g.Key()
		seen[key] = struct{}{}
		a.linkOrder = append(a.linkOrder, key)

		l, ok := a.links[key]
		if !ok {
			// Enter: final geometry immediately, opacity 0 -> 1.
			l = &linkAnim{from: g, to: g, t: 1}
			a.links[key] = l
			if a.duration > 0 {
				l.alphaTween = gween.New(0, 1, a.duration, ease.Linear)
			} else {
				l.alpha = 1
			}
			continue
		}

		// Update (or resurrect a link that was mid-exit).
		if l.exiting {
			l.exiting = false
			if a.duration > 0 {
				l.alphaTween = gween.New(float32(l.alpha), 1, a.duration, ease.Linear)
			} else {
				l.alpha = 1
				l.alphaTween = nil
			}
		}
		if cur := l.current(); cur.SourcePoint != g.SourcePoint || cur.TargetPoint != g.TargetPoint {
			l.from = cur
			l.to = g
			if a.duration > 0 {
				l.t = 0
				l.progress = gween.New(0, 1, a.duration, ease.InOutCubic)
			} else {
				l.t = 1
				l.progress = nil
			}
		} else {
			l.to = g
			l.from = g
			l.t = 1
			l.progress = nil
		}
	}

	for key, l := range a.links {
		if _, ok := seen[key]; ok || l.exiting {
			continue
		}
		if a.duration <= 0 {
			delete(a.links, key)
			continue
		}
		// Exit: freeze geometry, fade out over half the duration.
		l.from = l.current()
		l.to = l.from
		l.t = 1
		l.progress = nil
		l.exiting = true
		l.alphaTween = gween.New(float32(l.alpha), 0, a.duration/2, ease.Linear)
	}

	// Exiting links keep rendering behind the live set until they finish,
	// in their previous order.
	for _, key := range prevOrder {
		if l, ok := a.links[key]; ok && l.exiting {
			a.linkOrder = append(a.linkOrder, key)
		}
	}
}

func (a *Animator) applyNodes(next []PositionedNode) {
	seen := make(map[string]struct{}, len(next))
	prevOrder := append([]string(nil), a.nodeOrder...)
	a.nodeOrder = a.nodeOrder[:0]

	for _, p := range next {
		seen[p.Node.Key] = struct{}{}
		a.nodeOrder = append(a.nodeOrder, p.Node.Key)

		n, ok := a.nodes[p.Node.Key]
		if !ok {
			n = &nodeAnim{node: p.Node, fromX: p.X, fromY: p.Y, toX: p.X, toY: p.Y, w: p.Width, h: p.Height, t: 1}
			a.nodes[p.Node.Key] = n
			if a.duration > 0 {
				n.alphaTween = gween.New(0, 1, a.duration, ease.Linear)
			} else {
				n.alpha = 1
			}
			continue
		}

		n.node = p.Node
		n.w, n.h = p.Width, p.Height
		if n.exiting {
			n.exiting = false
			if a.duration > 0 {
				n.alphaTween = gween.New(float32(n.alpha), 1, a.duration, ease.Linear)
			} else {
				n.alpha = 1
				n.alphaTween = nil
			}
		}
		cx, cy := n.currentXY()
		if cx != p.X || cy != p.Y {
			n.fromX, n.fromY = cx, cy
			n.toX, n.toY = p.X, p.Y
			if a.duration > 0 {
				n.t = 0
				n.progress = gween.New(0, 1, a.duration, ease.InOutCubic)
			} else {
				n.t = 1
				n.progress = nil
			}
		} else {
			n.fromX, n.fromY = p.X, p.Y
			n.toX, n.toY = p.X, p.Y
			n.t = 1
			n.progress = nil
		}
	}

	for key, n := range a.nodes {
		if _, ok := seen[key]; ok || n.exiting {
			continue
		}
		if a.duration <= 0 {
			delete(a.nodes, key)
			continue
		}
		cx, cy := n.currentXY()
		n.fromX, n.fromY = cx, cy
		n.toX, n.toY = cx, cy
		n.t = 1
		n.progress = nil
		n.exiting = true
		n.alphaTween = gween.New(float32(n.alpha), 0, a.duration/2, ease.Linear)
	}

	for _, key := range prevOrder {
		if n, ok := a.nodes[key]; ok && n.exiting {
			a.nodeOrder = append(a.nodeOrder, key)
		}
	}
}

// Update advances all in-flight transitions by dt seconds. Exiting elements
// whose fade completed are removed from the rendered set.
func (a *Animator) Update(dt float32) {
	for key, l := range a.links {
		if l.progress != nil {
			val, done := l.progress.Update(dt)
			l.t = float64(val)
			if done {
				l.t = 1
				l.progress = nil
			}
		}
		if l.alphaTween != nil {
			val, done := l.alphaTween.Update(dt)
			l.alpha = float64(val)
			if done {
				l.alphaTween = nil
				if l.exiting {
					delete(a.links, key)
				}
			}
		}
	}

	for key, n := range a.nodes {
		if n.progress != nil {
			val, done := n.progress.Update(dt)
			n.t = float64(val)
			if done {
				n.t = 1
				n.progress = nil
			}
		}
		if n.alphaTween != nil {
			val, done := n.alphaTween.Update(dt)
			n.alpha = float64(val)
			if done {
				n.alphaTween = nil
				if n.exiting {
					delete(a.nodes, key)
				}
			}
		}
	}
}

// Animating reports whether any transition is still in flight.
func (a *Animator) Animating() bool {
	for _, l := range a.links {
		if l.progress != nil || l.alphaTween != nil {
			return true
		}
	}
	for _, n := range a.nodes {
		if n.progress != nil || n.alphaTween != nil {
			return true
		}
	}
	return false
}

// Links returns the current link visuals in render order: the live set in
// layout order, then any still-fading exits.
func (a *Animator) Links() []LinkVisual {
	out := make([]LinkVisual, 0, len(a.links))
	for _, key := range a.linkOrder {
		l, ok := a.links[key]
		if !ok {
			continue
		}
		g := l.current()
		out = append(out, LinkVisual{
			Key:     key,
			Source:  g.SourcePoint,
			Target:  g.TargetPoint,
			Alpha:   l.alpha,
			Exiting: l.exiting,
		})
	}
	return out
}

// Nodes returns the current node visuals in render order.
func (a *Animator) Nodes() []NodeVisual {
	out := make([]NodeVisual, 0, len(a.nodes))
	for _, key := range a.nodeOrder {
		n, ok := a.nodes[key]
		if !ok {
			continue
		}
		x, y := n.currentXY()
		out = append(out, NodeVisual{
			Key:     key,
			Node:    n.node,
			X:       x,
			Y:       y,
			Width:   n.w,
			Height:  n.h,
			Alpha:   n.alpha,
			Exiting: n.exiting,
		})
	}
	return out
}
