package generate

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

// Header starts every generated file.
const Header = "// Code generated by fieldopgen. DO NOT EDIT."

const (
	recvName  = "a"
	otherName = "b"
)

// A docDecl is a generated declaration with its doc comment. Comments are
// attached as text because synthesized nodes have no positions.
type docDecl struct {
	doc  string
	decl ast.Decl
}

// Generate returns the formatted source of a file in package pkgName
// that declares the methods of every plan.
func Generate(pkgName string, plans []*Plan) ([]byte, error) {
	plans = append([]*Plan(nil), plans...)
	sort.Slice(plans, func(i, j int) bool { return plans[i].Decl.Type < plans[j].Decl.Type })

	fset := token.NewFileSet()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n", Header, pkgName)
	for _, p := range plans {
		for _, dd := range p.synthesize() {
			buf.WriteString("\n")
			for _, line := range strings.Split(dd.doc, "\n") {
				fmt.Fprintf(&buf, "// %s\n", line)
			}
			if err := format.Node(&buf, fset, dd.decl); err != nil {
				return nil, fmt.Errorf("%s.%s: %v", p.Decl.Type, dd.decl.(*ast.FuncDecl).Name.Name, err)
			}
			buf.WriteString("\n")
		}
	}

	// Reparse so the file has real positions, then fix up imports.
	file, err := parser.ParseFile(fset, "", buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %v", err)
	}
	astutil.AddImport(fset, file, "fmt")
	trimImports(fset, file)
	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// trimImports removes unused imports from file.
func trimImports(fset *token.FileSet, file *ast.File) {
	for _, impgrp := range astutil.Imports(fset, file) {
		for _, impspec := range impgrp {
			path := importPath(impspec)
			if !astutil.UsesImport(file, path) {
				name := ""
				if impspec.Name != nil {
					name = impspec.Name.Name
				}
				astutil.DeleteNamedImport(fset, file, name, path)
			}
		}
	}
}

// importPath returns the unquoted import path of s,
// or "" if the path is not properly quoted.
func importPath(s *ast.ImportSpec) string {
	t, err := strconv.Unquote(s.Path.Value)
	if err == nil {
		return t
	}
	return ""
}

func (p *Plan) typeExpr() ast.Expr { return id(p.Decl.Type) }

func (p *Plan) valueRecv() *ast.Field { return field(recvName, p.typeExpr()) }

func (p *Plan) pointerRecv() *ast.Field {
	return field(recvName, &ast.StarExpr{X: p.typeExpr()})
}

func (p *Plan) otherParam() []*ast.Field { return []*ast.Field{field(otherName, p.typeExpr())} }

// project returns the expressions selecting each value from x, in order.
func (p *Plan) project(x string) []ast.Expr {
	exprs := make([]ast.Expr, len(p.values))
	for i, v := range p.values {
		var e ast.Expr = sel(id(x), v.sel.Name)
		if v.sel.Method {
			e = call(e)
		}
		exprs[i] = e
	}
	return exprs
}

// combine returns lhs[i] op rhs[i] for every position.
func combine(lhs, rhs []ast.Expr, op token.Token) []ast.Expr {
	exprs := make([]ast.Expr, len(lhs))
	for i := range lhs {
		exprs[i] = &ast.BinaryExpr{X: lhs[i], Op: op, Y: rhs[i]}
	}
	return exprs
}

// build returns an expression of the type constructed from vals.
func (p *Plan) build(vals []ast.Expr) ast.Expr {
	if p.ctor != nil {
		return call(id(p.Decl.New), vals...)
	}
	elts := make([]ast.Expr, len(vals))
	for i, v := range p.values {
		elts[i] = &ast.KeyValueExpr{Key: id(v.sel.Name), Value: vals[i]}
	}
	return &ast.CompositeLit{Type: p.typeExpr(), Elts: elts}
}

// fold joins exprs with op, left to right.
func fold(exprs []ast.Expr, op token.Token) ast.Expr {
	e := exprs[0]
	for _, x := range exprs[1:] {
		e = &ast.BinaryExpr{X: e, Op: op, Y: x}
	}
	return e
}

func (p *Plan) synthesize() []docDecl {
	var dds []docDecl
	bms := p.Decl.binaryMethods()
	for _, bm := range bms {
		dds = append(dds, p.binary(bm))
	}
	for _, bm := range bms {
		dds = append(dds, p.assign(bm))
	}
	if p.Decl.Has(Eq) {
		dds = append(dds, p.equal(), p.notEqual())
	}
	if p.Decl.Has(Ord) {
		dds = append(dds, p.less())
		dds = append(dds, p.derivedOrder()...)
		dds = append(dds, p.compare())
	}
	if p.Decl.Has(Stringer) {
		dds = append(dds, p.stringMethod())
	}
	return dds
}

// e.g. func (a T) Add(b T) T { return T{x: a.x + b.x, y: a.y + b.y} }
func (p *Plan) binary(bm binaryMethod) docDecl {
	vals := combine(p.project(recvName), p.project(otherName), bm.tok)
	return docDecl{
		doc: fmt.Sprintf("%s returns the field-wise %s %s %s %s.", bm.name, bm.verb, recvName, bm.tok, otherName),
		decl: method(p.valueRecv(), bm.name,
			funcType(p.otherParam(), field("", p.typeExpr())),
			returnStmt(p.build(vals))),
	}
}

// e.g. func (a *T) AddAssign(b T) { *a = a.Add(b) }
func (p *Plan) assign(bm binaryMethod) docDecl {
	name := bm.name + "Assign"
	return docDecl{
		doc: fmt.Sprintf("%s sets %s to %s.%s(%s).", name, recvName, recvName, bm.name, otherName),
		decl: method(p.pointerRecv(), name, funcType(p.otherParam()),
			&ast.AssignStmt{
				Lhs: []ast.Expr{&ast.StarExpr{X: id(recvName)}},
				Tok: token.ASSIGN,
				Rhs: []ast.Expr{call(sel(id(recvName), bm.name), id(otherName))},
			}),
	}
}

func boolResult() *ast.Field { return field("", id("bool")) }

// e.g. func (a T) Equal(b T) bool { return a.x == b.x && a.y == b.y }
func (p *Plan) equal() docDecl {
	eqs := combine(p.project(recvName), p.project(otherName), token.EQL)
	return docDecl{
		doc:  "Equal reports whether every field of a equals the same field of b.",
		decl: method(p.valueRecv(), "Equal", funcType(p.otherParam(), boolResult()), returnStmt(fold(eqs, token.LAND))),
	}
}

func (p *Plan) notEqual() docDecl {
	return docDecl{
		doc: "NotEqual is !a.Equal(b).",
		decl: method(p.valueRecv(), "NotEqual", funcType(p.otherParam(), boolResult()),
			returnStmt(not(call(sel(id(recvName), "Equal"), id(otherName))))),
	}
}

// Less is lexicographic:
//
//	if a.x < b.x {
//		return true
//	}
//	if b.x < a.x {
//		return false
//	}
//	return a.y < b.y
func (p *Plan) less() docDecl {
	lhs, rhs := p.project(recvName), p.project(otherName)
	var body []ast.Stmt
	last := len(lhs) - 1
	for i := 0; i < last; i++ {
		body = append(body,
			&ast.IfStmt{
				Cond: &ast.BinaryExpr{X: lhs[i], Op: token.LSS, Y: rhs[i]},
				Body: returnStmtBlock(id("true")),
			},
			&ast.IfStmt{
				Cond: &ast.BinaryExpr{X: rhs[i], Op: token.LSS, Y: lhs[i]},
				Body: returnStmtBlock(id("false")),
			})
	}
	body = append(body, returnStmt(&ast.BinaryExpr{X: lhs[last], Op: token.LSS, Y: rhs[last]}))
	return docDecl{
		doc:  "Less compares a and b field by field, in order.",
		decl: method(p.valueRecv(), "Less", funcType(p.otherParam(), boolResult()), body...),
	}
}

// derivedOrder returns LessEqual, Greater and GreaterEqual, all written
// in terms of Less.
func (p *Plan) derivedOrder() []docDecl {
	lessCall := func(x, y string) ast.Expr { return call(sel(id(x), "Less"), id(y)) }
	mk := func(name, doc string, e ast.Expr) docDecl {
		return docDecl{
			doc:  doc,
			decl: method(p.valueRecv(), name, funcType(p.otherParam(), boolResult()), returnStmt(e)),
		}
	}
	return []docDecl{
		mk("LessEqual", "LessEqual is !b.Less(a).", not(lessCall(otherName, recvName))),
		mk("Greater", "Greater is b.Less(a).", lessCall(otherName, recvName)),
		mk("GreaterEqual", "GreaterEqual is !a.Less(b).", not(lessCall(recvName, otherName))),
	}
}

func (p *Plan) compare() docDecl {
	lessCall := func(x, y string) ast.Expr { return call(sel(id(x), "Less"), id(y)) }
	sw := &ast.SwitchStmt{Body: &ast.BlockStmt{List: []ast.Stmt{
		&ast.CaseClause{
			List: []ast.Expr{lessCall(recvName, otherName)},
			Body: []ast.Stmt{returnStmt(&ast.UnaryExpr{Op: token.SUB, X: lit(token.INT, "1")})},
		},
		&ast.CaseClause{
			List: []ast.Expr{lessCall(otherName, recvName)},
			Body: []ast.Stmt{returnStmt(lit(token.INT, "1"))},
		},
	}}}
	return docDecl{
		doc: "Compare returns -1 if a is less than b, +1 if b is less than a,\nand 0 otherwise.",
		decl: method(p.valueRecv(), "Compare", funcType(p.otherParam(), field("", id("int"))),
			sw, returnStmt(lit(token.INT, "0"))),
	}
}

// e.g. func (a T) String() string { return fmt.Sprintf("(%v, %v)", a.x, a.y) }
func (p *Plan) stringMethod() docDecl {
	verbs := strings.TrimSuffix(strings.Repeat("%v, ", len(p.values)), ", ")
	args := append([]ast.Expr{lit(token.STRING, fmt.Sprintf("%q", "("+verbs+")"))}, p.project(recvName)...)
	return docDecl{
		doc: `String formats a as "(v0, v1, ...)".`,
		decl: method(p.valueRecv(), "String", funcType(nil, field("", id("string"))),
			returnStmt(call(sel(id("fmt"), "Sprintf"), args...))),
	}
}
