package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridglob/pkg/element"
)

func compiled() *element.Node {
	a := element.NewLeaf("A")
	a.SetCoord(element.Coord{})
	a.Meta["label"] = "Name"
	b := element.NewLeaf("B")
	b.SetCoord(element.Coord{Col: 1})
	g := element.NewContainer("grid-A-B")
	g.Append(a, b)
	root := element.NewLeaf("form")
	root.Append(g)
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(compiled(), Options{})

	wants := []string{
		"digraph G {",
		`"form" [label="form"];`,
		`"grid-A-B" [label="grid-A-B", style="rounded,filled,dashed"`,
		`"form" -> "grid-A-B";`,
		`"grid-A-B" -> "A" [label="0,0"];`,
		`"grid-A-B" -> "B" [label="0,1"];`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(compiled(), Options{Detailed: true})

	for _, want := range []string{`cell: 0,1`, `label: Name`, `axis: column`} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg><g/></svg>")); string(got) != "<svg><g/></svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}
