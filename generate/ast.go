package generate

import (
	"go/ast"
	"go/token"
)

func lit(kind token.Token, s string) *ast.BasicLit {
	return &ast.BasicLit{Kind: kind, Value: s}
}

func id(name string) *ast.Ident {
	return &ast.Ident{Name: name}
}

func sel(x ast.Expr, name string) *ast.SelectorExpr {
	return &ast.SelectorExpr{X: x, Sel: id(name)}
}

func call(fun ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fun, Args: args}
}

func field(name string, typ ast.Expr) *ast.Field {
	if name == "" {
		return &ast.Field{Type: typ}
	}
	return &ast.Field{Names: []*ast.Ident{id(name)}, Type: typ}
}

func not(x ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Op: token.NOT, X: x}
}

func funcType(params []*ast.Field, results ...*ast.Field) *ast.FuncType {
	ft := &ast.FuncType{Params: &ast.FieldList{List: params}}
	if len(results) > 0 {
		ft.Results = &ast.FieldList{List: results}
	}
	return ft
}

func returnStmt(e ast.Expr) *ast.ReturnStmt {
	return &ast.ReturnStmt{Results: []ast.Expr{e}}
}

func returnStmtBlock(e ast.Expr) *ast.BlockStmt {
	return &ast.BlockStmt{List: []ast.Stmt{returnStmt(e)}}
}

// method returns a method declaration on the receiver recv named name.
func method(recv *ast.Field, name string, typ *ast.FuncType, body ...ast.Stmt) *ast.FuncDecl {
	return &ast.FuncDecl{
		Recv: &ast.FieldList{List: []*ast.Field{recv}},
		Name: id(name),
		Type: typ,
		Body: &ast.BlockStmt{List: body},
	}
}
