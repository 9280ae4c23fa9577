package arbor

// PositionedNode is the per-pass placement of one visible node. X and Y are
// the top-left corner of the node box in layout space. PositionedNodes are
// transient: each layout pass supersedes the previous one entirely, and
// continuity across passes is by TreeNode key only.
type PositionedNode struct {
	Node   *TreeNode
	X, Y   float64
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the node box.
func (p PositionedNode) CenterX() float64 {
	return p.X + p.Width/2
}

// LinkGeometry is one parent-to-visible-child edge. Its identity for diffing
// is the ordered (SourceKey, TargetKey) pair. SourcePoint anchors at the
// bottom center of the source box, TargetPoint at the top center of the
// target box.
type LinkGeometry struct {
	SourceKey   string
	TargetKey   string
	SourcePoint Point
	TargetPoint Point
}

// LinkKey identifies a link across layout passes.
type LinkKey struct {
	SourceKey string
	TargetKey string
}

// Key returns the link's diffing identity.
func (l LinkGeometry) Key() LinkKey {
	return LinkKey{SourceKey: l.SourceKey, TargetKey: l.TargetKey}
}

// Corner returns the elbow corner point: directly below the source anchor at
// the target's vertical coordinate. The edge is drawn as two straight
// segments, source -> corner -> target.
func (l LinkGeometry) Corner() Point {
	return Point{X: l.SourcePoint.X, Y: l.TargetPoint.Y}
}

// Frame is the output of one layout pass: node placements and link geometry
// in deterministic preorder.
type Frame struct {
	Nodes []PositionedNode
	Links []LinkGeometry
}

// Layout computes fixed-node-size tidy-tree positions for every node
// reachable through attached children. Hidden (collapsed) subtrees do not
// participate. Depth maps to Y as depth*LevelSpacing, with the first visible
// level at Y = 0; siblings spread along X with subtree contours guaranteed
// not to overlap and every parent centered over its children's span.
//
// Layout is a pure function of the tree shape, collapse flags, and options:
// identical input always yields identical coordinates. The synthetic root and
// any link sourced at it are filtered from the output. An empty tree yields
// empty sequences.
func Layout(root *TreeNode, opts Options) Frame {
	opts = opts.applyDefaults()

	t := buildLayoutTree(root, nil, 0)
	firstWalk(t, opts.NodeWidth)
	secondWalk(t, -t.prelim) // synthetic root centered at x = 0

	frame := Frame{Nodes: []PositionedNode{}, Links: []LinkGeometry{}}
	collect(t, opts, &frame)
	return frame
}

// layoutNode is the per-pass working state for one visible node.
type layoutNode struct {
	tree     *TreeNode
	parent   *layoutNode
	children []*layoutNode
	number   int // index among siblings
	depth    int

	prelim   float64
	mod      float64
	shift    float64
	change   float64
	thread   *layoutNode
	ancestor *layoutNode
	x        float64
}

func buildLayoutTree(n *TreeNode, parent *layoutNode, depth int) *layoutNode {
	v := &layoutNode{tree: n, parent: parent, depth: depth}
	v.ancestor = v
	for i, c := range n.children {
		child := buildLayoutTree(c, v, depth+1)
		child.number = i
		v.children = append(v.children, child)
	}
	return v
}

// separation is the minimum horizontal distance between the centers of two
// nodes at the same depth: one node width for siblings, two for nodes from
// different parents.
func separation(a, b *layoutNode, nodeWidth float64) float64 {
	if a.parent == b.parent {
		return nodeWidth
	}
	return 2 * nodeWidth
}

func leftSibling(v *layoutNode) *layoutNode {
	if v.parent == nil || v.number == 0 {
		return nil
	}
	return v.parent.children[v.number-1]
}

// nextLeft follows the left contour of the subtree under v.
func nextLeft(v *layoutNode) *layoutNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

// nextRight follows the right contour of the subtree under v.
func nextRight(v *layoutNode) *layoutNode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

// firstWalk computes preliminary x positions bottom-up, resolving subtree
// overlap with the contour-threading scheme of Buchheim, Jünger and Leipert.
func firstWalk(v *layoutNode, nodeWidth float64) {
	if len(v.children) == 0 {
		if w := leftSibling(v); w != nil {
			v.prelim = w.prelim + separation(w, v, nodeWidth)
		}
		return
	}

	defaultAncestor := v.children[0]
	for _, w := range v.children {
		firstWalk(w, nodeWidth)
		defaultAncestor = apportion(w, defaultAncestor, nodeWidth)
	}
	executeShifts(v)

	midpoint := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
	if w := leftSibling(v); w != nil {
		v.prelim = w.prelim + separation(w, v, nodeWidth)
		v.mod = v.prelim - midpoint
	} else {
		v.prelim = midpoint
	}
}

// apportion shifts the subtree rooted at v right until its left contour
// clears the right contour of everything laid out so far.
func apportion(v, defaultAncestor *layoutNode, nodeWidth float64) *layoutNode {
	w := leftSibling(v)
	if w == nil {
		return defaultAncestor
	}

	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]

	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for nextRight(vim) != nil && nextLeft(vip) != nil {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.ancestor = v

		shift := (vim.prelim + sim) - (vip.prelim + sip) + separation(vim, vip, nodeWidth)
		if shift > 0 {
			moveSubtree(topAncestor(vim, v, defaultAncestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}

	if nextRight(vim) != nil && nextRight(vop) == nil {
		vop.thread = nextRight(vim)
		vop.mod += sim - sop
	}
	if nextLeft(vip) != nil && nextLeft(vom) == nil {
		vom.thread = nextLeft(vip)
		vom.mod += sip - som
		defaultAncestor = v
	}
	return defaultAncestor
}

func moveSubtree(wm, wp *layoutNode, shift float64) {
	subtrees := float64(wp.number - wm.number)
	wp.change -= shift / subtrees
	wp.shift += shift
	wm.change += shift / subtrees
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *layoutNode) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

// topAncestor returns the greatest distinct ancestor of vim that is a sibling
// of v, falling back to defaultAncestor.
func topAncestor(vim, v, defaultAncestor *layoutNode) *layoutNode {
	if vim.ancestor.parent == v.parent {
		return vim.ancestor
	}
	return defaultAncestor
}

// secondWalk assigns final x positions by accumulating modifiers top-down.
func secondWalk(v *layoutNode, m float64) {
	v.x = v.prelim + m
	for _, w := range v.children {
		secondWalk(w, m+v.mod)
	}
}

// collect flattens the positioned tree into the output frame in preorder,
// post-filtering the synthetic root and its outgoing links.
func collect(v *layoutNode, opts Options, frame *Frame) {
	if !v.tree.synthetic {
		frame.Nodes = append(frame.Nodes, PositionedNode{
			Node:   v.tree,
			X:      v.x - opts.NodeWidth/2,
			Y:      float64(v.depth-1) * opts.LevelSpacing,
			Width:  opts.NodeWidth,
			Height: opts.NodeHeight,
		})
		for _, w := range v.children {
			frame.Links = append(frame.Links, LinkGeometry{
				SourceKey:   v.tree.Key,
				TargetKey:   w.tree.Key,
				SourcePoint: Point{X: v.x, Y: float64(v.depth-1)*opts.LevelSpacing + opts.NodeHeight},
				TargetPoint: Point{X: w.x, Y: float64(w.depth-1) * opts.LevelSpacing},
			})
		}
	}
	for _, w := range v.children {
		collect(w, opts, frame)
	}
}
