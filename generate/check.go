package generate

import (
	"fmt"
	"go/types"
	"slices"
	"strings"
)

type notStructError string

func (e notStructError) Error() string { return string(e) }

type selectorError string

func (e selectorError) Error() string { return string(e) }

type constructorError string

func (e constructorError) Error() string { return string(e) }

type operandError string

func (e operandError) Error() string { return string(e) }

type collisionError string

func (e collisionError) Error() string { return string(e) }

// A Plan is a checked Decl, ready for synthesis.
type Plan struct {
	Decl   Decl
	named  *types.Named
	values []value
	ctor   *types.Func // nil means a keyed composite literal
}

// value is one position of the projection.
type value struct {
	sel Selector
	typ types.Type
}

// Check validates decl against pkg and returns the plan for generating it.
// Errors are prefixed with the position of the declaration.
func Check(pkg *Package, decl Decl) (*Plan, error) {
	p, err := check(pkg, decl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", decl.Pos, err)
	}
	return p, nil
}

func check(pkg *Package, decl Decl) (*Plan, error) {
	obj := pkg.tpkg.Scope().Lookup(decl.Type)
	if obj == nil {
		return nil, notStructError(fmt.Sprintf("no type %s in package %s", decl.Type, pkg.Name))
	}
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil, notStructError(fmt.Sprintf("%s is not a defined type", decl.Type))
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, notStructError(fmt.Sprintf("%s is not a defined type", decl.Type))
	}
	if named.TypeParams().Len() > 0 {
		return nil, notStructError(fmt.Sprintf("%s has type parameters", decl.Type))
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, notStructError(fmt.Sprintf("%s is not a struct type", decl.Type))
	}
	if decl.Type == recvName || decl.Type == otherName {
		return nil, collisionError(fmt.Sprintf("type name %s is shadowed by the generated receiver", decl.Type))
	}

	sels := decl.Selectors
	if len(sels) == 0 {
		for i := 0; i < st.NumFields(); i++ {
			if name := st.Field(i).Name(); name != "_" {
				sels = append(sels, Selector{Name: name})
			}
		}
		decl.Selectors = sels
	}
	if len(sels) == 0 {
		return nil, selectorError(fmt.Sprintf("%s: at least one field selector must be supplied", decl.Type))
	}

	plan := &Plan{Decl: decl, named: named}
	seen := map[string]bool{}
	for _, s := range sels {
		if seen[s.Name] {
			return nil, selectorError(fmt.Sprintf("%s.%s selected twice", decl.Type, s.Name))
		}
		seen[s.Name] = true
		typ, err := selectorType(named, st, s, pkg.tpkg)
		if err != nil {
			return nil, err
		}
		if typ == types.Typ[types.Invalid] {
			return nil, selectorError(fmt.Sprintf("%s.%s has an invalid type", decl.Type, s))
		}
		plan.values = append(plan.values, value{sel: s, typ: typ})
	}

	if err := plan.checkReconstruction(st, pkg.tpkg); err != nil {
		return nil, err
	}
	if err := plan.checkOperands(); err != nil {
		return nil, err
	}
	if err := plan.checkCollisions(pkg.tpkg); err != nil {
		return nil, err
	}
	return plan, nil
}

// selectorType returns the type of the value s selects from named.
func selectorType(named *types.Named, st *types.Struct, s Selector, tpkg *types.Package) (types.Type, error) {
	if !s.Method {
		for i := 0; i < st.NumFields(); i++ {
			if f := st.Field(i); f.Name() == s.Name {
				if f.Name() == "_" {
					break
				}
				return f.Type(), nil
			}
		}
		return nil, selectorError(fmt.Sprintf("%s has no field %s", named.Obj().Name(), s.Name))
	}
	obj, _, _ := types.LookupFieldOrMethod(named, true, tpkg, s.Name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, selectorError(fmt.Sprintf("%s has no method %s", named.Obj().Name(), s.Name))
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, selectorError(fmt.Sprintf("accessor %s.%s must take no arguments and return one value, not %s",
			named.Obj().Name(), s, sig))
	}
	return sig.Results().At(0).Type(), nil
}

// checkReconstruction makes sure a value of the type can be built from
// the projection: either through the constructor or, for a list of every
// struct field, a keyed composite literal.
func (p *Plan) checkReconstruction(st *types.Struct, tpkg *types.Package) error {
	name := p.Decl.Type
	if p.Decl.New == "" {
		var missing []string
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Name() == "_" {
				// Blank fields cannot be named in a composite literal.
				continue
			}
			if !slices.ContainsFunc(p.values, func(v value) bool { return !v.sel.Method && v.sel.Name == f.Name() }) {
				missing = append(missing, f.Name())
			}
		}
		if len(missing) > 0 {
			return constructorError(fmt.Sprintf("%s: fields %s are not selected; name a constructor with new:",
				name, strings.Join(missing, ", ")))
		}
		for _, v := range p.values {
			if v.sel.Method {
				return constructorError(fmt.Sprintf("%s: accessor %s needs a constructor; name one with new:", name, v.sel))
			}
		}
		return nil
	}
	if p.Decl.New == "a" || p.Decl.New == "b" {
		return constructorError(fmt.Sprintf("%s: constructor name %s is shadowed by the generated receiver", name, p.Decl.New))
	}
	obj := tpkg.Scope().Lookup(p.Decl.New)
	fn, ok := obj.(*types.Func)
	if !ok {
		return constructorError(fmt.Sprintf("%s: no function %s in package", name, p.Decl.New))
	}
	sig := fn.Type().(*types.Signature)
	if sig.Variadic() || sig.Params().Len() != len(p.values) {
		return constructorError(fmt.Sprintf("%s: constructor %s must take exactly %d arguments, one per selector",
			name, p.Decl.New, len(p.values)))
	}
	for i, v := range p.values {
		param := sig.Params().At(i)
		if !types.AssignableTo(v.typ, param.Type()) {
			return constructorError(fmt.Sprintf("%s: %s has type %s, not assignable to parameter %d (%s) of %s",
				name, v.sel, v.typ, i, param.Type(), p.Decl.New))
		}
	}
	if sig.Results().Len() != 1 || !types.Identical(sig.Results().At(0).Type(), p.named) {
		return constructorError(fmt.Sprintf("%s: constructor %s must return %s", name, p.Decl.New, name))
	}
	p.ctor = fn
	return nil
}

func isBasic(t types.Type, info types.BasicInfo) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&info != 0
}

// checkOperands makes sure every selected value supports the operators
// of the requested groups.
func (p *Plan) checkOperands() error {
	d := &p.Decl
	for _, v := range p.values {
		var fail string
		switch {
		case d.Has(AddSub) && !isBasic(v.typ, types.IsNumeric):
			fail = "is not numeric, required by arithmetic methods"
		case d.Has(Eq) && !types.Comparable(v.typ):
			fail = "is not comparable, required by Equal"
		case d.Has(Ord) && !isBasic(v.typ, types.IsOrdered):
			fail = "is not ordered, required by Less"
		}
		if fail != "" {
			return operandError(fmt.Sprintf("%s.%s has type %s, which %s", d.Type, v.sel, v.typ, fail))
		}
	}
	return nil
}

// checkCollisions rejects a generated method name that the type already
// uses for a field or method.
func (p *Plan) checkCollisions(tpkg *types.Package) error {
	for _, name := range p.Decl.methodNames() {
		obj, _, _ := types.LookupFieldOrMethod(p.named, true, tpkg, name)
		if obj == nil {
			continue
		}
		kind := "method"
		if _, ok := obj.(*types.Var); ok {
			kind = "field"
		}
		return collisionError(fmt.Sprintf("%s already has a %s %s", p.Decl.Type, kind, name))
	}
	return nil
}
