package generate

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// A Group names a set of generated methods.
type Group string

const (
	Arith    Group = "arith"  // Add Sub Mul Div and their Assign forms
	AddSub   Group = "addsub" // Add Sub AddAssign SubAssign
	Eq       Group = "eq"     // Equal NotEqual
	Ord      Group = "ord"    // Less LessEqual Greater GreaterEqual Compare
	Stringer Group = "string" // String
)

// DefaultGroups is used when a declaration names no groups.
var DefaultGroups = []Group{Arith, Eq, Ord, Stringer}

var allGroups = []Group{Arith, AddSub, Eq, Ord, Stringer}

// binaryMethod is a generated method that applies a binary operator
// to each pair of fields.
type binaryMethod struct {
	name string      // e.g. Add
	tok  token.Token // e.g. +
	verb string      // for the doc comment
}

var (
	addSubMethods = []binaryMethod{
		{"Add", token.ADD, "sum"},
		{"Sub", token.SUB, "difference"},
	}
	arithMethods = append(slices.Clone(addSubMethods),
		binaryMethod{"Mul", token.MUL, "product"},
		binaryMethod{"Div", token.QUO, "quotient"},
	)
	eqMethods  = []string{"Equal", "NotEqual"}
	ordMethods = []string{"Less", "LessEqual", "Greater", "GreaterEqual", "Compare"}
)

func parseGroups(s string) ([]Group, error) {
	var gs []Group
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		g := Group(part)
		if !slices.Contains(allGroups, g) {
			return nil, fmt.Errorf("unknown op group %q (want one of %v)", part, allGroups)
		}
		if !slices.Contains(gs, g) {
			gs = append(gs, g)
		}
	}
	if len(gs) == 0 {
		return nil, errors.New("empty op group list")
	}
	return gs, nil
}

// A Selector picks one value out of an aggregate: a field, or a method
// with no arguments and one result.
type Selector struct {
	Name   string
	Method bool
}

func (s Selector) String() string {
	if s.Method {
		return s.Name + "()"
	}
	return s.Name
}

// ParseSelector parses "name" as a field selector and "Name()" as an
// accessor method selector.
func ParseSelector(s string) (Selector, error) {
	sel := Selector{Name: s}
	if name, ok := strings.CutSuffix(s, "()"); ok {
		sel = Selector{Name: name, Method: true}
	}
	if !token.IsIdentifier(sel.Name) || sel.Name == "_" {
		return Selector{}, fmt.Errorf("bad selector %q", s)
	}
	return sel, nil
}

// A Decl opts a type into operator generation.
type Decl struct {
	Type string
	// Selectors in order. Empty means every struct field in declaration order.
	Selectors []Selector
	Groups    []Group
	// New names a function taking one argument per selector, in order,
	// and returning a value of the type. Empty means a composite literal.
	New string
	// Where the declaration was written.
	Pos token.Position
}

// Has reports whether d generates the methods of g.
func (d *Decl) Has(g Group) bool {
	gs := d.Groups
	if len(gs) == 0 {
		gs = DefaultGroups
	}
	if g == AddSub && slices.Contains(gs, Arith) {
		return true
	}
	return slices.Contains(gs, g)
}

// methodNames returns the names of all methods d generates.
func (d *Decl) methodNames() []string {
	var names []string
	bms := d.binaryMethods()
	for _, bm := range bms {
		names = append(names, bm.name)
	}
	for _, bm := range bms {
		names = append(names, bm.name+"Assign")
	}
	if d.Has(Eq) {
		names = append(names, eqMethods...)
	}
	if d.Has(Ord) {
		names = append(names, ordMethods...)
	}
	if d.Has(Stringer) {
		names = append(names, "String")
	}
	return names
}

func (d *Decl) binaryMethods() []binaryMethod {
	switch {
	case d.Has(Arith):
		return arithMethods
	case d.Has(AddSub):
		return addSubMethods
	}
	return nil
}

// A declaration file lists decls for a package without touching its
// source. It is YAML:
//
//	types:
//	  - type: Vector3D
//	    fields: [x, y, z]
//	    ops: [arith, eq]
//	    new: NewVector3D
type declFile struct {
	Types []fileDecl `yaml:"types"`
}

type fileDecl struct {
	Type   string    `yaml:"type"`
	Fields *[]string `yaml:"fields"` // nil means every field; empty is an error
	Ops    []string  `yaml:"ops"`
	New    string    `yaml:"new"`
}

var fileDeclKeys = []string{"type", "fields", "ops", "new"}

// LoadDeclFile reads the declaration file at path.
func LoadDeclFile(path string) ([]Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDeclFile(path, data)
}

func parseDeclFile(path string, data []byte) ([]Decl, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	items, err := typeItems(root.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var df declFile
	if err := root.Decode(&df); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var decls []Decl
	for i, fd := range df.Types {
		pos := token.Position{Filename: path, Line: items[i].Line, Column: items[i].Column}
		if err := checkKeys(items[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		d, err := fd.decl(pos)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// typeItems returns the nodes of the "types" sequence, so errors can
// carry line numbers.
func typeItems(doc *yaml.Node) ([]*yaml.Node, error) {
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("declaration file must be a mapping")
	}
	var items []*yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		switch key := doc.Content[i].Value; key {
		case "types":
			items = doc.Content[i+1].Content
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", doc.Content[i].Line, key)
		}
	}
	return items, nil
}

func checkKeys(item *yaml.Node) error {
	for i := 0; i+1 < len(item.Content); i += 2 {
		if key := item.Content[i].Value; !slices.Contains(fileDeclKeys, key) {
			return fmt.Errorf("unknown key %q", key)
		}
	}
	return nil
}

func (fd fileDecl) decl(pos token.Position) (Decl, error) {
	if !token.IsIdentifier(fd.Type) {
		return Decl{}, fmt.Errorf("bad type name %q", fd.Type)
	}
	d := Decl{Type: fd.Type, New: fd.New, Pos: pos}
	if fd.New != "" && !token.IsIdentifier(fd.New) {
		return Decl{}, fmt.Errorf("bad constructor name %q", fd.New)
	}
	if fd.Fields != nil {
		if len(*fd.Fields) == 0 {
			return Decl{}, errors.New("at least one field selector must be supplied; leave out fields to select them all")
		}
		for _, f := range *fd.Fields {
			s, err := ParseSelector(f)
			if err != nil {
				return Decl{}, err
			}
			d.Selectors = append(d.Selectors, s)
		}
	}
	if len(fd.Ops) > 0 {
		gs, err := parseGroups(strings.Join(fd.Ops, ","))
		if err != nil {
			return Decl{}, err
		}
		d.Groups = gs
	}
	return d, nil
}
