package arbor

import (
	"math"
	"reflect"
	"testing"
)

const coordEps = 1e-6

func layoutScenario(t *testing.T) (*TreeNode, Frame) {
	t.Helper()
	root := mustNormalize(t, scenarioForest())
	return root, Layout(root, DefaultOptions())
}

func frameLabels(f Frame) []string {
	labels := make([]string, 0, len(f.Nodes))
	for _, p := range f.Nodes {
		labels = append(labels, labelOf(p.Node))
	}
	return labels
}

// --- Scenario geometry ---

func TestLayoutScenarioPositions(t *testing.T) {
	_, frame := layoutScenario(t)

	if got := frameLabels(frame); !reflect.DeepEqual(got, []string{"1", "2", "3", "4", "5"}) {
		t.Fatalf("node order = %v, want [1 2 3 4 5]", got)
	}
	if len(frame.Links) != 4 {
		t.Fatalf("link count = %d, want 4", len(frame.Links))
	}

	wantCenterX := map[string]float64{"1": 0, "2": -50, "3": -100, "4": 0, "5": 50}
	wantY := map[string]float64{"1": 0, "2": 200, "3": 400, "4": 400, "5": 200}
	for _, p := range frame.Nodes {
		label := labelOf(p.Node)
		if math.Abs(p.CenterX()-wantCenterX[label]) > coordEps {
			t.Errorf("node %s centerX = %v, want %v", label, p.CenterX(), wantCenterX[label])
		}
		if math.Abs(p.Y-wantY[label]) > coordEps {
			t.Errorf("node %s Y = %v, want %v", label, p.Y, wantY[label])
		}
		if p.Width != 100 || p.Height != 100 {
			t.Errorf("node %s size = %vx%v, want 100x100", label, p.Width, p.Height)
		}
	}
}

func TestLayoutLinkAnchors(t *testing.T) {
	root, frame := layoutScenario(t)
	one := findLabel(t, root, "1")
	two := findLabel(t, root, "2")

	var link *LinkGeometry
	for i := range frame.Links {
		if frame.Links[i].SourceKey == one.Key && frame.Links[i].TargetKey == two.Key {
			link = &frame.Links[i]
		}
	}
	if link == nil {
		t.Fatal("link 1->2 not found")
	}

	// Bottom center of the source, top center of the target.
	if link.SourcePoint != (Point{X: 0, Y: 100}) {
		t.Errorf("source anchor = %+v, want {0 100}", link.SourcePoint)
	}
	if link.TargetPoint != (Point{X: -50, Y: 200}) {
		t.Errorf("target anchor = %+v, want {-50 200}", link.TargetPoint)
	}
	if corner := link.Corner(); corner != (Point{X: 0, Y: 200}) {
		t.Errorf("elbow corner = %+v, want {0 200}", corner)
	}
}

// --- Algorithm properties ---

// wideRaw builds an asymmetric tree that exercises the contour machinery:
// deep left subtrees next to shallow wide ones.
func wideRaw() *RawNode {
	return buildRaw("root",
		buildRaw("a",
			buildRaw("a1", buildRaw("a1a"), buildRaw("a1b"), buildRaw("a1c")),
			buildRaw("a2"),
		),
		buildRaw("b"),
		buildRaw("c",
			buildRaw("c1"),
			buildRaw("c2", buildRaw("c2a", buildRaw("deep1"), buildRaw("deep2"))),
			buildRaw("c3"),
		),
	)
}

func TestLayoutDeterministic(t *testing.T) {
	root := mustNormalize(t, wideRaw())
	opts := DefaultOptions()

	first := Layout(root, opts)
	second := Layout(root, opts)
	if !reflect.DeepEqual(first, second) {
		t.Error("layout of unchanged tree differs between runs")
	}
}

func TestLayoutParentCenteredOverChildren(t *testing.T) {
	root := mustNormalize(t, wideRaw())
	frame := Layout(root, DefaultOptions())

	centers := make(map[string]float64)
	for _, p := range frame.Nodes {
		centers[p.Node.Key] = p.CenterX()
	}
	for _, p := range frame.Nodes {
		kids := p.Node.Children()
		if len(kids) == 0 {
			continue
		}
		first := centers[kids[0].Key]
		last := centers[kids[len(kids)-1].Key]
		mid := (first + last) / 2
		if math.Abs(p.CenterX()-mid) > coordEps {
			t.Errorf("node %s center = %v, want midpoint %v of its children",
				labelOf(p.Node), p.CenterX(), mid)
		}
	}
}

func TestLayoutNoOverlapWithinLevel(t *testing.T) {
	root := mustNormalize(t, wideRaw())
	opts := DefaultOptions()
	frame := Layout(root, opts)

	byDepth := make(map[float64][]float64)
	for _, p := range frame.Nodes {
		byDepth[p.Y] = append(byDepth[p.Y], p.CenterX())
	}
	for y, xs := range byDepth {
		for i := range xs {
			for j := i + 1; j < len(xs); j++ {
				if math.Abs(xs[i]-xs[j]) < opts.NodeWidth-coordEps {
					t.Errorf("nodes at depth y=%v overlap: centers %v and %v", y, xs[i], xs[j])
				}
			}
		}
	}
}

func TestLayoutDepthSpacing(t *testing.T) {
	root := mustNormalize(t, wideRaw())
	opts := DefaultOptions()
	opts.LevelSpacing = 75
	frame := Layout(root, opts)

	depths := make(map[string]int)
	var walk func(n *TreeNode, d int)
	walk = func(n *TreeNode, d int) {
		depths[n.Key] = d
		for _, c := range n.Children() {
			walk(c, d+1)
		}
	}
	for _, c := range root.Children() {
		walk(c, 0)
	}

	for _, p := range frame.Nodes {
		want := float64(depths[p.Node.Key]) * opts.LevelSpacing
		if math.Abs(p.Y-want) > coordEps {
			t.Errorf("node %s Y = %v, want %v", labelOf(p.Node), p.Y, want)
		}
	}
}

func TestLayoutExcludesSyntheticRoot(t *testing.T) {
	root := mustNormalize(t, []*RawNode{buildRaw("a"), buildRaw("b")})
	frame := Layout(root, DefaultOptions())

	for _, p := range frame.Nodes {
		if p.Node.Synthetic() {
			t.Error("synthetic root leaked into the node sequence")
		}
	}
	for _, l := range frame.Links {
		if l.SourceKey == root.Key {
			t.Error("link sourced at the synthetic root leaked into the output")
		}
	}
	// Two disconnected top-level trees: no links at all.
	if len(frame.Links) != 0 {
		t.Errorf("link count = %d, want 0", len(frame.Links))
	}
}

func TestLayoutEmptyTree(t *testing.T) {
	root := mustNormalize(t, nil)
	frame := Layout(root, DefaultOptions())
	if len(frame.Nodes) != 0 || len(frame.Links) != 0 {
		t.Errorf("empty tree layout = %d nodes, %d links; want 0, 0",
			len(frame.Nodes), len(frame.Links))
	}
}

func TestLayoutSkipsHiddenSubtrees(t *testing.T) {
	root := mustNormalize(t, scenarioForest())
	findLabel(t, root, "2").Toggle()

	frame := Layout(root, DefaultOptions())
	if got := frameLabels(frame); !reflect.DeepEqual(got, []string{"1", "2", "5"}) {
		t.Errorf("node order after collapse = %v, want [1 2 5]", got)
	}
	if len(frame.Links) != 2 {
		t.Errorf("link count after collapse = %d, want 2", len(frame.Links))
	}
}

func TestLayoutZeroOptionsUseDefaults(t *testing.T) {
	root := mustNormalize(t, scenarioForest())
	frame := Layout(root, Options{})
	if frame.Nodes[0].Width != DefaultNodeWidth || frame.Nodes[0].Height != DefaultNodeHeight {
		t.Errorf("zero options did not fall back to default node size")
	}
	if math.Abs(frame.Nodes[1].Y-DefaultLevelSpacing) > coordEps {
		t.Errorf("zero options did not fall back to default level spacing")
	}
}
