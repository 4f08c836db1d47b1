package constraint

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
)

func TestEdgePlacement(t *testing.T) {
	tests := []struct {
		edge Edge
		axis element.Axis
		dir  int
	}{
		{Above, element.AxisRow, -1},
		{Below, element.AxisRow, 1},
		{LeftOf, element.AxisColumn, -1},
		{RightOf, element.AxisColumn, 1},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			axis, dir, err := tt.edge.Placement()
			if err != nil {
				t.Fatalf("Placement() error = %v", err)
			}
			if axis != tt.axis || dir != tt.dir {
				t.Errorf("Placement() = %v, %d, want %v, %d", axis, dir, tt.axis, tt.dir)
			}
		})
	}

	if _, _, err := Edge(42).Placement(); !errs.Is(err, errs.ErrCodeUnsupportedEdge) {
		t.Errorf("Placement() on invalid edge error = %v, want UNSUPPORTED_EDGE", err)
	}
}

func TestEdgeOrthogonal(t *testing.T) {
	if Above.Orthogonal() != RightOf || Below.Orthogonal() != RightOf {
		t.Error("row collisions should sub-divide to the right")
	}
	if LeftOf.Orthogonal() != Below || RightOf.Orthogonal() != Below {
		t.Error("column collisions should sub-divide downward")
	}
}

func TestParseEdge(t *testing.T) {
	tests := []struct {
		in      string
		want    Edge
		wantErr bool
	}{
		{"right-of", RightOf, false},
		{"RightOf", RightOf, false},
		{"right_of", RightOf, false},
		{" left of ", LeftOf, false},
		{"above", Above, false},
		{"TopOf", Above, false},
		{"below", Below, false},
		{"bottom-of", Below, false},
		{"", 0, true},
		{"beside", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseEdge(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEdge(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseEdge(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConstraintJSON(t *testing.T) {
	var c Constraint
	if err := json.Unmarshal([]byte(`{"anchor":"A","dependent":"B","edge":"TopOf"}`), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c != New("A", "B", Above) {
		t.Errorf("decoded %+v", c)
	}

	data, err := json.Marshal(New("A", "B", LeftOf))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"anchor":"A","dependent":"B","edge":"left-of"}` {
		t.Errorf("Marshal() = %s", data)
	}

	if err := json.Unmarshal([]byte(`{"anchor":"A","dependent":"B","edge":"sideways"}`), &c); err == nil {
		t.Error("unknown edge should fail to decode")
	}
}

func TestConstraintValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint
		code errs.Code
	}{
		{"Valid", New("A", "B", RightOf), ""},
		{"EmptyAnchor", New("", "B", RightOf), errs.ErrCodeInvalidConstraint},
		{"EmptyDependent", New("A", "", RightOf), errs.ErrCodeInvalidConstraint},
		{"SelfReference", New("A", "A", RightOf), errs.ErrCodeInvalidConstraint},
		{"BadEdge", New("A", "B", Edge(9)), errs.ErrCodeUnsupportedEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if errs.GetCode(err) != tt.code {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConstraintString(t *testing.T) {
	if got := New("A", "B", RightOf).String(); got != "B right-of A" {
		t.Errorf("String() = %q", got)
	}
}
