package element

import (
	"testing"

	errs "github.com/matzehuels/gridglob/pkg/errors"
)

func sampleTree() (root, a, b, c *Node) {
	root = NewLeaf("Root")
	a = NewLeaf("A")
	b = NewLeaf("B")
	c = NewLeaf("C")
	root.Append(a, b, c)
	return root, a, b, c
}

func TestNewTree(t *testing.T) {
	root, a, _, _ := sampleTree()
	tr, err := NewTree(root)
	if err != nil {
		t.Fatalf("NewTree() error = %v", err)
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}
	if got, ok := tr.Lookup("A"); !ok || got != a {
		t.Errorf("Lookup(A) = %v, %v", got, ok)
	}
	if _, ok := tr.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	p, err := tr.Parent(a)
	if err != nil || p != root {
		t.Errorf("Parent(A) = %v, %v, want Root", p, err)
	}
	if p, err := tr.Parent(root); err != nil || p != nil {
		t.Errorf("Parent(Root) = %v, %v, want nil, nil", p, err)
	}
}

func TestNewTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Node
		code  errs.Code
	}{
		{
			name: "DuplicateID",
			build: func() *Node {
				r := NewLeaf("Root")
				r.Append(NewLeaf("A"), NewLeaf("A"))
				return r
			},
			code: errs.ErrCodeDuplicateID,
		},
		{
			name: "SharedNode",
			build: func() *Node {
				r := NewLeaf("Root")
				a := NewLeaf("A")
				r.Append(a, a)
				return r
			},
			code: errs.ErrCodeInvalidInput,
		},
		{
			name: "EmptyID",
			build: func() *Node {
				r := NewLeaf("Root")
				r.Append(NewLeaf(""))
				return r
			},
			code: errs.ErrCodeInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTree(tt.build())
			if !errs.Is(err, tt.code) {
				t.Errorf("NewTree() error = %v, want code %v", err, tt.code)
			}
		})
	}

	if _, err := NewTree(nil); err == nil {
		t.Error("NewTree(nil) should fail")
	}
}

func TestTreeParentNotFound(t *testing.T) {
	root, _, _, _ := sampleTree()
	tr, _ := NewTree(root)

	_, err := tr.Parent(NewLeaf("stranger"))
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Parent(stranger) error = %v, want NOT_FOUND", err)
	}
}

func TestTreeAttachMoves(t *testing.T) {
	root, a, b, _ := sampleTree()
	tr, _ := NewTree(root)

	grid := NewContainer("grid")
	tr.Attach(root, grid)
	tr.Place(grid, a, Coord{Row: 0, Col: 0})
	tr.Place(grid, b, Coord{Row: 0, Col: 1})

	if root.IndexOf(a) >= 0 || root.IndexOf(b) >= 0 {
		t.Error("A and B should have left Root")
	}
	if grid.ChildCount() != 2 {
		t.Fatalf("grid has %d children, want 2", grid.ChildCount())
	}
	if p, _ := tr.Parent(b); p != grid {
		t.Errorf("Parent(B) = %v, want grid", p)
	}
	if c, ok := b.Coord(); !ok || c != (Coord{Row: 0, Col: 1}) {
		t.Errorf("B.Coord() = %v, %v", c, ok)
	}
	if got, ok := tr.Lookup("grid"); !ok || got != grid {
		t.Error("new container should be indexed")
	}

	// Moving back under a leaf drops the coordinate.
	tr.Attach(root, b)
	if _, ok := b.Coord(); ok {
		t.Error("B should have no coordinate under a leaf parent")
	}
	if p, _ := FindParent(root, b); p != root {
		t.Errorf("FindParent(B) = %v, want Root", p)
	}
}

func TestTreeDetach(t *testing.T) {
	root, a, _, _ := sampleTree()
	tr, _ := NewTree(root)

	if p := tr.Detach(a); p != root {
		t.Errorf("Detach(A) = %v, want Root", p)
	}
	if tr.Contains(a) {
		t.Error("detached node should not be contained")
	}
	if _, ok := tr.Lookup("A"); ok {
		t.Error("detached node should not be found by Lookup")
	}
	if !tr.HasID("A") {
		t.Error("detached node keeps its ID reserved")
	}
	if p := tr.Detach(a); p != nil {
		t.Errorf("second Detach(A) = %v, want nil", p)
	}

	tr.Attach(root, a)
	if !tr.Contains(a) {
		t.Error("reattached node should be contained")
	}
}

func TestTreeDetachRootPanics(t *testing.T) {
	root, _, _, _ := sampleTree()
	tr, _ := NewTree(root)

	defer func() {
		if recover() == nil {
			t.Error("Detach(root) should panic")
		}
	}()
	tr.Detach(root)
}

func TestTreeInsertAtCyclePanics(t *testing.T) {
	root, _, _, _ := sampleTree()
	tr, _ := NewTree(root)
	grid := NewContainer("grid")
	tr.Attach(root, grid)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("moving a node under itself should panic")
		}
		if err, ok := r.(error); !ok || !errs.Is(err, errs.ErrCodeCycle) {
			t.Errorf("panic value = %v, want CYCLE error", r)
		}
	}()
	tr.Attach(grid, root)
}

func TestTreeReplace(t *testing.T) {
	root, a, b, c := sampleTree()
	tr, _ := NewTree(root)

	grid := NewContainer("grid")
	p, err := tr.Replace(b, grid)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if p != root {
		t.Errorf("Replace() parent = %v, want Root", p)
	}
	want := []*Node{a, grid, c}
	for i, n := range root.Children() {
		if n != want[i] {
			t.Errorf("child %d = %s, want %s", i, n.ID, want[i].ID)
		}
	}
	if tr.Contains(b) {
		t.Error("replaced node should be detached")
	}

	if _, err := tr.Replace(root, NewContainer("x")); err == nil {
		t.Error("Replace(root) should fail")
	}
}

func TestTreeReplaceKeepsCoordinate(t *testing.T) {
	grid := NewContainer("grid")
	a, b := NewLeaf("A"), NewLeaf("B")
	a.SetCoord(Coord{Row: 0, Col: 0})
	b.SetCoord(Coord{Row: 0, Col: 1})
	grid.Append(a, b)
	tr, _ := NewTree(grid)

	sub := NewContainer("sub")
	if _, err := tr.Replace(b, sub); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if c, ok := sub.Coord(); !ok || c.Col != 1 {
		t.Errorf("sub.Coord() = %v, %v, want col 1", c, ok)
	}
	if _, ok := b.Coord(); ok {
		t.Error("replaced node should lose its coordinate")
	}
}

func TestTreeIsAncestorAndDepth(t *testing.T) {
	root, a, _, _ := sampleTree()
	tr, _ := NewTree(root)
	grid := NewContainer("grid")
	tr.Attach(root, grid)
	tr.Place(grid, a, Coord{})

	if !tr.IsAncestor(root, a) || !tr.IsAncestor(grid, a) || !tr.IsAncestor(a, a) {
		t.Error("IsAncestor should hold along the parent chain")
	}
	if tr.IsAncestor(a, grid) {
		t.Error("A is not an ancestor of grid")
	}
	if d := tr.Depth(a); d != 2 {
		t.Errorf("Depth(A) = %d, want 2", d)
	}
	if d := tr.Depth(NewLeaf("x")); d != -1 {
		t.Errorf("Depth(stranger) = %d, want -1", d)
	}
}

func TestTreeMatchesFindParent(t *testing.T) {
	root, a, b, c := sampleTree()
	tr, _ := NewTree(root)
	grid := NewContainer("grid")
	tr.Attach(root, grid)
	tr.Place(grid, a, Coord{})
	tr.Place(grid, b, Coord{Col: 1})

	for _, n := range []*Node{a, b, c, grid} {
		want, _ := FindParent(root, n)
		got, err := tr.Parent(n)
		if err != nil || got != want {
			t.Errorf("Parent(%s) = %v, %v; FindParent = %v", n.ID, got, err, want)
		}
	}
}
