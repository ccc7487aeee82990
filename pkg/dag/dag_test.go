package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty AddNode() error = %v, want ErrInvalidNodeID", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestPutNodeRedeclares(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a", Kind: NodeKindPackage})
	_ = g.AddNode(Node{ID: "b", Kind: NodeKindDependency})

	if err := g.PutNode(Node{ID: "a", Kind: NodeKindDependency}); err != nil {
		t.Fatalf("PutNode() error: %v", err)
	}

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("Node(a) not found")
	}
	if n.Kind != NodeKindDependency {
		t.Errorf("Kind = %v, want dependency", n.Kind)
	}

	ids := nodeIDs(g)
	if !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("node order = %v, want [a b]", ids)
	}
	if err := g.PutNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("PutNode(empty) error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b", Kind: NodeKindDependency})

	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("parallel AddEdge() error: %v", err)
	}
	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) error = %v, want ErrUnknownTargetNode", err)
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.OutDegree("a") != 2 {
		t.Errorf("OutDegree(a) = %d, want 2", g.OutDegree("a"))
	}
	if got := g.Parents("b"); !slices.Equal(got, []string{"a", "a"}) {
		t.Errorf("Parents(b) = %v, want [a a]", got)
	}
}

func TestNodesReturnsCopies(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})

	nodes := g.Nodes()
	nodes[0].Kind = NodeKindDependency

	n, _ := g.Node("a")
	if n.Kind != NodeKindPackage {
		t.Error("modifying Nodes() result should not affect the graph")
	}
}

func TestNodeMissing(t *testing.T) {
	g := New()
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) should report false")
	}
	if g.Children("missing") != nil {
		t.Error("Children(missing) should be nil")
	}
}

func TestNodeKindString(t *testing.T) {
	if NodeKindPackage.String() != "package" {
		t.Errorf("NodeKindPackage.String() = %q", NodeKindPackage.String())
	}
	if NodeKindDependency.String() != "dependency" {
		t.Errorf("NodeKindDependency.String() = %q", NodeKindDependency.String())
	}
}

func nodeIDs(g *DAG) []string {
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}
