// Package arbor is an interactive tree-chart engine for [Ebitengine].
//
// Arbor renders a rooted tree (an organization chart, a file hierarchy, any
// parent-child dataset) as a pannable diagram with per-node collapse/expand
// and animated transitions between layouts.
//
// # Quick start
//
//	chart := arbor.NewChart(arbor.DefaultOptions())
//	if err := chart.SetData(raw); err != nil {
//		log.Fatal(err)
//	}
//	ebiten.RunGame(arbor.NewView(chart, 1024, 768))
//
// Datasets come from typed [RawNode] trees, from generic decoded data
// (maps and slices, the shape yaml/json unmarshaling produces), or from
// [ParseYAML]. Clicking a node collapses or expands its subtree; dragging
// pans the whole diagram.
//
// # Pipeline
//
// [Normalize] deep-copies the input forest into a tree of [TreeNode] values,
// each with a permanent unique key, under an invisible synthetic super-root.
// [Layout] places every visible node with a fixed-node-size tidy-tree
// algorithm and emits [PositionedNode] and [LinkGeometry] sequences.
// [Animator] retargets on every pass, classifying each element against its
// retained state as entering, persisting, or exiting, and drives time-based
// opacity and geometry interpolation (built on [gween]). [DiffLinks] exposes
// the same enter/update/exit partition as a standalone operation for hosts
// that bring their own animation. [PanController] holds the display-only
// pan/scale transform composed after layout. [Chart] ties the pipeline
// together behind explicit rebuild triggers: dataset replacement, collapse
// toggle, and option changes.
//
// The engine itself is presentation-agnostic: everything below [View]
// computes coordinates and target values only. [View] is the bundled
// Ebitengine presentation layer; a host with its own renderer can consume
// [Chart.Frame] and [Animator] directly and supply its own drawing.
//
// Arbor is single-threaded: drive a chart and its view from one
// goroutine, the model every Ebitengine game already follows.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package arbor
