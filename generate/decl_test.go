package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMethodNames(t *testing.T) {
	for _, test := range []struct {
		groups []Group
		want   string
	}{
		{nil, "Add Sub Mul Div AddAssign SubAssign MulAssign DivAssign Equal NotEqual Less LessEqual Greater GreaterEqual Compare String"},
		{[]Group{AddSub}, "Add Sub AddAssign SubAssign"},
		{[]Group{AddSub, Arith}, "Add Sub Mul Div AddAssign SubAssign MulAssign DivAssign"},
		{[]Group{Eq}, "Equal NotEqual"},
		{[]Group{Ord, Stringer}, "Less LessEqual Greater GreaterEqual Compare String"},
	} {
		d := Decl{Type: "T", Groups: test.groups}
		got := strings.Join(d.methodNames(), " ")
		if got != test.want {
			t.Errorf("%v:\ngot  %s\nwant %s", test.groups, got, test.want)
		}
	}
}

func TestParseDeclFile(t *testing.T) {
	const data = `
types:
  - type: Vector3D
    fields: [x, y, z]
  - type: Color
    fields: ["R()", "G()", "B()", "A()"]
    ops: [arith, eq]
    new: NewColor
`
	got, err := parseDeclFile("fieldops.yaml", []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	want := []Decl{
		{
			Type:      "Vector3D",
			Selectors: []Selector{{Name: "x"}, {Name: "y"}, {Name: "z"}},
		},
		{
			Type: "Color",
			Selectors: []Selector{
				{Name: "R", Method: true}, {Name: "G", Method: true},
				{Name: "B", Method: true}, {Name: "A", Method: true},
			},
			Groups: []Group{Arith, Eq},
			New:    "NewColor",
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(Decl{}, "Pos")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got[0].Pos.Line != 3 || got[1].Pos.Line != 5 {
		t.Errorf("lines: got %d, %d; want 3, 5", got[0].Pos.Line, got[1].Pos.Line)
	}
	if got[0].Pos.Filename != "fieldops.yaml" {
		t.Errorf("filename: got %q", got[0].Pos.Filename)
	}
}

func TestParseDeclFileEmpty(t *testing.T) {
	got, err := parseDeclFile("empty.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestParseDeclFileErrors(t *testing.T) {
	for _, test := range []struct {
		data string
		want string // substring of the error
	}{
		{"- a\n- b\n", "must be a mapping"},
		{"kinds: []\n", `unknown key "kinds"`},
		{"types:\n  - type: T\n    field: [x]\n", `unknown key "field"`},
		{"types:\n  - type: T\n    ops: [arith, mod]\n", `unknown op group "mod"`},
		{"types:\n  - type: 1T\n", "bad type name"},
		{"types:\n  - type: T\n    fields: [x.y]\n", "bad selector"},
		{"types:\n  - type: T\n    new: new-T\n", "bad constructor name"},
		{"types:\n  - type: T\n    fields: []\n", "at least one field selector"},
		{"types: [\n", "fieldops.yaml"},
	} {
		_, err := parseDeclFile("fieldops.yaml", []byte(test.data))
		if err == nil {
			t.Errorf("%q: got nil, want error", test.data)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%q: got %q, want it to contain %q", test.data, err, test.want)
		}
	}
}

func TestLoadDeclFileMissing(t *testing.T) {
	_, err := LoadDeclFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("got %v, want a not-exist error", err)
	}
}
