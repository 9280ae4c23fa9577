package arbor

import (
	"fmt"

	"github.com/google/uuid"
)

// RawNode is the caller-supplied input form of a tree node: an arbitrary
// payload mapping plus an ordered child list. RawNode trees are never mutated
// by the engine; normalization deep-copies them.
type RawNode struct {
	Payload  map[string]any
	Children []*RawNode
}

// TreeNode is a node of the normalized tree. Every TreeNode carries a
// permanent unique key assigned once at normalization time; the key never
// changes across collapse/expand cycles or layout passes. Re-normalizing the
// same raw input mints new keys, so normalize once per logical dataset.
//
// A node with descendants holds them in exactly one of children (expanded,
// participates in layout) or hiddenChildren (collapsed, preserved for
// restoration). A leaf holds neither.
type TreeNode struct {
	// Key is the node's permanent unique identifier.
	Key string

	// Payload holds the caller's data fields for this node.
	Payload map[string]any

	parent         *TreeNode
	children       []*TreeNode
	hiddenChildren []*TreeNode
	collapsed      bool
	synthetic      bool
}

// Parent returns the node's parent, or nil for the synthetic root.
func (n *TreeNode) Parent() *TreeNode {
	return n.parent
}

// Children returns the attached (visible) child list.
// The returned slice MUST NOT be mutated by the caller.
func (n *TreeNode) Children() []*TreeNode {
	return n.children
}

// HiddenChildren returns the detached child list of a collapsed node.
// The returned slice MUST NOT be mutated by the caller.
func (n *TreeNode) HiddenChildren() []*TreeNode {
	return n.hiddenChildren
}

// Collapsed reports whether the node's children are currently detached.
func (n *TreeNode) Collapsed() bool {
	return n.collapsed
}

// Synthetic reports whether this is the invisible super-root that wraps the
// input forest. The synthetic root is never rendered and never collapsible.
func (n *TreeNode) Synthetic() bool {
	return n.synthetic
}

// HasChildren reports whether the node has descendants, attached or hidden.
func (n *TreeNode) HasChildren() bool {
	return len(n.children) > 0 || len(n.hiddenChildren) > 0
}

// Walk calls fn for every node in the subtree rooted at n, preorder,
// visiting attached and hidden children alike.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
	for _, c := range n.hiddenChildren {
		c.Walk(fn)
	}
}

// Normalize converts caller-supplied tree data into a normalized tree rooted
// at a synthetic invisible super-root. Accepted input forms:
//
//   - nil: an empty, renderable chart (synthetic root with no children)
//   - *RawNode or RawNode: a single tree
//   - []*RawNode: a forest
//   - map[string]any: a single tree; a "children" entry, if present, must be
//     an ordered []any of further mappings and is not copied into the payload
//   - []any of mappings: a forest (the shape yaml/json decoding produces)
//
// Forest roots are attached beneath the synthetic root in REVERSE input
// order; this matches the expected visual stacking and is a documented,
// tested rule. Child order within each tree is preserved.
//
// Every produced node is a deep copy with a freshly minted unique key; the
// raw input is never mutated. Malformed input (a payload that is not a
// mapping, a children value that is not an ordered sequence, or a nil node
// inside a typed tree or forest) fails fast with a descriptive error and no
// partial tree.
func Normalize(raw any) (*TreeNode, error) {
	forest, err := rawForest(raw)
	if err != nil {
		return nil, err
	}
	root := &TreeNode{Key: uuid.NewString(), synthetic: true}
	for i := len(forest) - 1; i >= 0; i-- {
		child := copyRaw(forest[i], root)
		root.children = append(root.children, child)
	}
	return root, nil
}

// rawForest coerces any accepted input form into a typed forest.
func rawForest(raw any) ([]*RawNode, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *RawNode:
		if v == nil {
			return nil, nil
		}
		if err := validateRaw(v); err != nil {
			return nil, err
		}
		return []*RawNode{v}, nil
	case RawNode:
		if err := validateRaw(&v); err != nil {
			return nil, err
		}
		return []*RawNode{&v}, nil
	case []*RawNode:
		for _, n := range v {
			if err := validateRaw(n); err != nil {
				return nil, err
			}
		}
		return v, nil
	case map[string]any:
		node, err := rawFromMap(v)
		if err != nil {
			return nil, err
		}
		return []*RawNode{node}, nil
	case []any:
		forest := make([]*RawNode, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("arbor: node payload must be a mapping, got %T", item)
			}
			node, err := rawFromMap(m)
			if err != nil {
				return nil, err
			}
			forest = append(forest, node)
		}
		return forest, nil
	default:
		return nil, fmt.Errorf("arbor: unsupported tree input type %T", raw)
	}
}

// validateRaw rejects nil nodes anywhere in a typed subtree before copying
// begins, so malformed input never yields a partial tree.
func validateRaw(n *RawNode) error {
	if n == nil {
		return fmt.Errorf("arbor: nil node in input")
	}
	for _, c := range n.Children {
		if err := validateRaw(c); err != nil {
			return err
		}
	}
	return nil
}

// rawFromMap converts a decoded mapping into a RawNode. The "children" entry
// becomes the child list; every other entry belongs to the payload.
func rawFromMap(m map[string]any) (*RawNode, error) {
	node := &RawNode{Payload: make(map[string]any, len(m))}
	for k, v := range m {
		if k != "children" {
			node.Payload[k] = v
			continue
		}
		if v == nil {
			continue
		}
		seq, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("arbor: children must be an ordered sequence, got %T", v)
		}
		for _, item := range seq {
			cm, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("arbor: node payload must be a mapping, got %T", item)
			}
			child, err := rawFromMap(cm)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}

// copyRaw deep-copies a raw subtree into fresh TreeNodes with new keys.
func copyRaw(raw *RawNode, parent *TreeNode) *TreeNode {
	n := &TreeNode{
		Key:     uuid.NewString(),
		Payload: make(map[string]any, len(raw.Payload)),
		parent:  parent,
	}
	for k, v := range raw.Payload {
		n.Payload[k] = v
	}
	for _, c := range raw.Children {
		n.children = append(n.children, copyRaw(c, n))
	}
	return n
}
