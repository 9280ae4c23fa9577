package arbor

// Toggle flips the node between expanded and collapsed.
//
// Expanded with children: the attached child list moves to hiddenChildren in
// one O(1) swap; no node in the subtree is copied, so every key survives the
// round trip exactly. Collapsed: hiddenChildren moves back, restoring the
// original sequence (same keys, same order, same payloads).
//
// Toggling a leaf or the synthetic root is a no-op. After any effective
// toggle the caller must re-run layout; Chart.ToggleCollapse does both.
func (n *TreeNode) Toggle() {
	if n == nil || n.synthetic {
		return
	}
	switch {
	case n.collapsed:
		n.children = n.hiddenChildren
		n.hiddenChildren = nil
		n.collapsed = false
	case len(n.children) > 0:
		n.hiddenChildren = n.children
		n.children = nil
		n.collapsed = true
	}
}
