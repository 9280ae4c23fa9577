package arbor

// Chart wires the whole engine together: the normalized tree, layout
// options, the pan transform, and the animated transition state. All state
// changes flow through an explicit pipeline: SetData, ToggleCollapse, and
// SetOptions each mutate their piece of state and call Rebuild, which re-runs
// layout and retargets the animator. There is no implicit dependency
// tracking; the trigger set is exactly those three entry points.
//
// Chart is single-threaded: call it only from the goroutine that drives
// rendering, the same ownership rule the rest of the package follows.
type Chart struct {
	opts  Options
	root  *TreeNode
	index map[string]*TreeNode

	pan      *PanController
	animator *Animator
	frame    Frame

	containerWidth float64
}

// NewChart creates a chart with the given options and an empty dataset.
// An empty chart lays out to empty node and link sequences; it is renderable,
// not an error.
func NewChart(opts Options) *Chart {
	opts = opts.applyDefaults()
	c := &Chart{
		opts:     opts,
		pan:      NewPanController(),
		animator: NewAnimator(opts.TransitionDuration),
	}
	root, _ := Normalize(nil) // nil input cannot fail
	c.setRoot(root)
	c.Rebuild()
	return c
}

// SetData replaces the dataset. The raw input is normalized (every node gets
// a fresh key; keys never survive dataset replacement), the previous tree is
// discarded, the pan transform resets to its initial centering, and the chart
// rebuilds. The error is the normalizer's: malformed input produces no
// partial tree and leaves the previous dataset in place.
func (c *Chart) SetData(raw any) error {
	root, err := Normalize(raw)
	if err != nil {
		return err
	}
	c.setRoot(root)
	c.pan.Center(c.containerWidth)
	c.Rebuild()
	return nil
}

func (c *Chart) setRoot(root *TreeNode) {
	c.root = root
	c.index = make(map[string]*TreeNode)
	root.Walk(func(n *TreeNode) {
		c.index[n.Key] = n
	})
}

// Root returns the synthetic super-root of the normalized tree.
func (c *Chart) Root() *TreeNode {
	return c.root
}

// Lookup returns the node with the given key, hidden nodes included, or nil.
func (c *Chart) Lookup(key string) *TreeNode {
	return c.index[key]
}

// Options returns the current options.
func (c *Chart) Options() Options {
	return c.opts
}

// SetOptions replaces the options and rebuilds. The dataset is not
// re-normalized: keys and collapse state survive an options change.
func (c *Chart) SetOptions(opts Options) {
	c.opts = opts.applyDefaults()
	c.animator.SetDuration(c.opts.TransitionDuration)
	c.Rebuild()
}

// SetContainerWidth records the visible container width used for initial
// centering, and recenters if the chart has not been panned yet (offset still
// at the previous initial value).
func (c *Chart) SetContainerWidth(w float64) {
	prev := c.containerWidth
	c.containerWidth = w
	t := c.pan.Transform()
	if !c.pan.Dragging() && t.OffsetX == prev/2 && t.OffsetY == 0 {
		c.pan.Center(w)
	}
}

// ToggleCollapse is the node interaction entry point: it toggles the keyed
// node's collapse state and rebuilds. An unknown or stale key is a no-op, not
// an error; keys legitimately go stale after a dataset replacement. A leaf
// key is likewise a no-op. Disabled entirely when Options.CollapseEnabled is
// false.
func (c *Chart) ToggleCollapse(key string) {
	if !c.opts.CollapseEnabled {
		return
	}
	n := c.index[key]
	if n == nil || n.synthetic || !n.HasChildren() {
		return
	}
	n.Toggle()
	c.Rebuild()
}

// Rebuild re-runs layout over the current tree and options and retargets the
// animator. Call after any out-of-band mutation; the built-in entry points
// call it themselves.
func (c *Chart) Rebuild() {
	if globalDebug {
		debugCheckTree(c.root)
	}
	c.frame = Layout(c.root, c.opts)
	c.animator.Apply(c.frame)
}

// Frame returns the node and link sequences of the most recent layout pass.
// These are the layout targets; for mid-transition interpolated values use
// Animator.
func (c *Chart) Frame() Frame {
	return c.frame
}

// Pan returns the chart's pan controller.
func (c *Chart) Pan() *PanController {
	return c.pan
}

// Animator returns the chart's transition animator.
func (c *Chart) Animator() *Animator {
	return c.animator
}

// Update advances in-flight transitions by dt seconds.
func (c *Chart) Update(dt float32) {
	c.animator.Update(dt)
}
