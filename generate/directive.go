package generate

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const directiveName = "fieldops:gen"

// ParseDirective parses the text of one comment. It reports false if the
// comment is not a fieldops directive. Like other Go directives, it is a
// line comment with no space after the slashes. The returned Decl has no Type or
// Pos; the caller fills those in from the declaration the comment is
// attached to.
//
// The directive has the form
//
//	//fieldops:gen [selector ...] [ops:group,...] [new:Func]
//
// where a selector is a field name or an accessor method written Name().
func ParseDirective(text string) (Decl, bool, error) {
	rest, ok := strings.CutPrefix(text, "//"+directiveName)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return Decl{}, false, nil
	}
	fields := strings.Fields(rest)
	var d Decl
	seenOpt := map[string]bool{}
	for _, f := range fields {
		key, val, isOpt := strings.Cut(f, ":")
		if !isOpt {
			s, err := ParseSelector(f)
			if err != nil {
				return Decl{}, true, err
			}
			d.Selectors = append(d.Selectors, s)
			continue
		}
		if seenOpt[key] {
			return Decl{}, true, fmt.Errorf("option %q given twice", key)
		}
		seenOpt[key] = true
		switch key {
		case "ops":
			gs, err := parseGroups(val)
			if err != nil {
				return Decl{}, true, err
			}
			d.Groups = gs
		case "new":
			if !token.IsIdentifier(val) {
				return Decl{}, true, fmt.Errorf("bad constructor name %q", val)
			}
			d.New = val
		default:
			return Decl{}, true, fmt.Errorf("unknown option %q", key)
		}
	}
	return d, true, nil
}

// parseDirectives returns the decls attached to type declarations in
// file. A directive may sit in the doc comment of a single-spec type
// declaration or of a spec inside a grouped declaration, but not on the
// group itself.
func parseDirectives(fset *token.FileSet, file *ast.File) ([]Decl, error) {
	var decls []Decl
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		if len(gd.Specs) != 1 {
			if _, found, _ := directiveIn([]*ast.CommentGroup{gd.Doc}); found {
				return nil, fmt.Errorf("%s: %s directive on grouped type declaration; attach it to one type",
					fset.Position(gd.Pos()), directiveName)
			}
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			cgs := []*ast.CommentGroup{ts.Doc}
			if len(gd.Specs) == 1 {
				cgs = append(cgs, gd.Doc)
			}
			decl, found, err := directiveIn(cgs)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", fset.Position(ts.Pos()), err)
			}
			if !found {
				continue
			}
			decl.Type = ts.Name.Name
			decl.Pos = fset.Position(ts.Pos())
			decls = append(decls, decl)
		}
	}
	return decls, nil
}

func directiveIn(cgroups []*ast.CommentGroup) (Decl, bool, error) {
	var (
		found bool
		decl  Decl
	)
	for _, g := range cgroups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			d, ok, err := ParseDirective(c.Text)
			if err != nil {
				return Decl{}, true, err
			}
			if !ok {
				continue
			}
			if found {
				return Decl{}, true, fmt.Errorf("more than one %s directive", directiveName)
			}
			found, decl = true, d
		}
	}
	return decl, found, nil
}
