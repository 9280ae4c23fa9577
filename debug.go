package arbor

import (
	"fmt"
	"os"
)

// globalDebug enables invariant checking on every rebuild.
// Plain bool, no atomic; arbor is single-threaded.
var globalDebug bool

// SetDebug toggles debug mode. When enabled, Chart.Rebuild validates the
// normalized tree before layout and panics with a descriptive message if a
// structural invariant is broken. Meant for development; release builds leave
// it off.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckTree panics if the tree violates a structural invariant.
func debugCheckTree(root *TreeNode) {
	if err := validateTree(root); err != nil {
		panic(fmt.Sprintf("arbor debug: %v", err))
	}
}

// debugMaxTreeDepth is the depth past which validateTree warns on stderr.
const debugMaxTreeDepth = 64

// validateTree checks the normalized-tree invariants:
//
//   - the root is synthetic, never collapsed, with no hidden children
//   - no node holds both attached and hidden children
//   - collapsed is true exactly when hiddenChildren is populated
//   - every key is unique and non-empty
//   - parent links match the child lists
func validateTree(root *TreeNode) error {
	if root == nil {
		return fmt.Errorf("tree root is nil")
	}
	if !root.synthetic {
		return fmt.Errorf("tree root is not the synthetic super-root")
	}
	if root.collapsed || len(root.hiddenChildren) > 0 {
		return fmt.Errorf("synthetic root must never be collapsed")
	}
	keys := make(map[string]struct{})
	return validateNode(root, nil, 0, keys)
}

func validateNode(n, parent *TreeNode, depth int, keys map[string]struct{}) error {
	if n.Key == "" {
		return fmt.Errorf("node has empty key")
	}
	if _, dup := keys[n.Key]; dup {
		return fmt.Errorf("duplicate key %q", n.Key)
	}
	keys[n.Key] = struct{}{}

	if n.parent != parent {
		return fmt.Errorf("node %q has wrong parent link", n.Key)
	}
	if len(n.children) > 0 && len(n.hiddenChildren) > 0 {
		return fmt.Errorf("node %q has both attached and hidden children", n.Key)
	}
	if n.collapsed != (len(n.hiddenChildren) > 0) {
		return fmt.Errorf("node %q collapse flag disagrees with hidden children", n.Key)
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Key)
	}

	for _, c := range n.children {
		if err := validateNode(c, n, depth+1, keys); err != nil {
			return err
		}
	}
	for _, c := range n.hiddenChildren {
		if err := validateNode(c, n, depth+1, keys); err != nil {
			return err
		}
	}
	return nil
}
