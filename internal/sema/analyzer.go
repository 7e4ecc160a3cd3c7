// Package sema implements semantic analysis (spec §4.2): name resolution
// across nested lexical scopes, the forward-declaration and overload
// policy for functions, type checking of expressions and statements,
// reachability/return-type analysis, and constant folding for bounds and
// dead-branch reasoning.
//
// Grounded on the teacher's ir.ValidateTree / Node.validate recursive walk
// (ir/validate.go): a single recursive descent over the tree, looking up
// identifiers through a scope stack and reporting the first fatal error.
// The teacher's parallel-worker-pool variant of that walk is dropped: spec
// §5 mandates a synchronous, single-threaded compiler, so only the
// teacher's sequential branch survives here, generalized from flat
// int/float programs to nested procedures, forward declarations, arrays
// and by-reference parameters.
package sema

import (
	"fmt"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
	"edsger/internal/util"
)

// Analyzer carries the state threaded through one call to Analyze: the
// stack of functions currently being analyzed (spec §4.2 "ancestor
// stack") and a buffer of non-fatal warnings.
type Analyzer struct {
	ancestors util.Stack // *ast.FuncDef, innermost (currently analyzed) on top.
	Diag      util.Diagnostics
}

// New returns a ready-to-use Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze is the entry point (spec §4.2 "Entry point"): it installs the
// pre-populated library-function entries at depth 0, then recursively
// analyses root. Analyze mutates root's and its descendants' annotation
// fields and fails fast on the first fatal diagnostic (spec §7: "No local
// recovery").
func (a *Analyzer) Analyze(root *ast.FuncDef) error {
	rootScope := symtab.NewRoot()
	symtab.SeedLibrary(rootScope)

	return a.analyzeFuncDef(root, rootScope, nil, true)
}

// analyzeFuncDef analyzes one function definition in the given enclosing
// scope, following spec §4.2's numbered per-function analysis order.
func (a *Analyzer) analyzeFuncDef(fd *ast.FuncDef, enclosing *symtab.Scope, ancestorNames []string, isRoot bool) error {
	// 1. Record parent_func from the top of the ancestor stack.
	if top, ok := a.ancestors.Peek().(*ast.FuncDef); ok {
		fd.ParentFunc = top
	}

	// 2. Process the header: enters or matches the function entry in the
	// current (enclosing) scope.
	entry, err := a.processHeader(fd.Header, enclosing, true, isRoot)
	if err != nil {
		return err
	}
	fd.Entry = entry
	fd.Header.CompID = util.CompID(fd.Header.ID, ancestorNames)

	// 3. Open a new scope named after the function.
	fnScope := enclosing.OpenScope(fd.Header.ID)
	fd.Scope = fnScope

	// 4. Enter every parameter of the header into the new scope.
	for _, p := range fd.Header.Params {
		passing := symtab.ByValue
		if p.ByRef {
			passing = symtab.ByReference
		}
		e, err := fnScope.EnterParameter(p.Name, p.Type, passing)
		if err != nil {
			return fmt.Errorf("%w: parameter %q of %q", util.ErrDuplicateParam, p.Name, fd.Header.ID)
		}
		p.Entry = e
	}

	// 5. Push the current function onto the ancestor stack.
	a.ancestors.Push(fd)
	innerAncestors := append(append([]string{}, ancestorNames...), fd.Header.ID)

	// 6. Analyse the local-definitions list in order.
	if err := a.analyzeLocals(fd, fnScope, innerAncestors); err != nil {
		a.ancestors.Pop()
		return err
	}

	// 7. Pop the ancestor stack.
	a.ancestors.Pop()

	// 8. Validate parameter/local/variable collisions.
	if err := a.validateCollisions(fd, fnScope); err != nil {
		return err
	}

	// 9. If this is the root function, check for declared-but-undefined functions.
	if isRoot {
		if undef := fnScope.UndefinedFunctions(); len(undef) > 0 {
			return fmt.Errorf("%w: %v", util.ErrFuncUndefined, undef)
		}
	}

	// 10. Compute the block's return-producing type and compare to the
	// header's declared return type.
	retType, _, err := a.checkStmt(fd.Body, fnScope, fd.Header)
	if err != nil {
		return err
	}
	if !types.Equal(retType, fd.Header.RetType) {
		return fmt.Errorf("%w: function %q declares %s but its body produces %s",
			util.ErrFuncTypeMismatch, fd.Header.ID, fd.Header.RetType, retType)
	}

	// 11. Close the scope. fnScope itself is left reachable: the frame
	// planner and IR emitter still need to walk it.
	return nil
}

// analyzeLocals walks fd's local-definitions list in order, implementing
// the forward-declaration protocol (spec §4.2): a FuncDecl for f is
// matched against the first following FuncDef for f in the same list;
// additional FuncDecls for f are marked redundant (a warning); a
// FuncDecl with no following definition is fatal.
func (a *Analyzer) analyzeLocals(fd *ast.FuncDef, scope *symtab.Scope, ancestorNames []string) error {
	matched := make(map[string]bool)

	for i1, l1 := range fd.Locals {
		switch d := l1.(type) {
		case *ast.VarDef:
			if err := a.enterVarDef(fd, d, scope); err != nil {
				return err
			}
		case *ast.FuncDecl:
			if matched[d.Header.ID] {
				d.IsRedundant = true
				a.Diag.Warn(util.WarnRedundantFwd, "redundant forward declaration of %q", d.Header.ID)
				// A redundant declaration must still be processed so
				// that a signature mismatch against the first
				// declaration is still caught.
			}
			if _, err := a.processHeader(d.Header, scope, false, false); err != nil {
				return err
			}
			d.Header.CompID = util.CompID(d.Header.ID, ancestorNames)

			found := false
			for _, l2 := range fd.Locals[i1+1:] {
				if def, ok := l2.(*ast.FuncDef); ok && def.Header.ID == d.Header.ID {
					d.FuncDef = def
					found = true
					break
				}
			}
			if !found && !matched[d.Header.ID] {
				return fmt.Errorf("%w: %q declared but not defined", util.ErrFuncUndefined, d.Header.ID)
			}
			matched[d.Header.ID] = true
		case *ast.FuncDef:
			if err := a.analyzeFuncDef(d, scope, ancestorNames, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// enterVarDef declares every identifier of a local variable group. A name
// colliding with one of fd's own parameters is reported as
// util.ErrVarParamCollision, distinct from a name colliding with another
// local variable (util.ErrDuplicateLocal, spec §7.1) — checked before
// scope.EnterVariable ever runs, since the symbol table itself cannot
// distinguish the two cases (both already occupy the same scope).
func (a *Analyzer) enterVarDef(fd *ast.FuncDef, d *ast.VarDef, scope *symtab.Scope) error {
	if dims := d.Type.Dims(); len(dims) > 0 {
		for _, dim := range dims {
			if dim == 0 {
				return fmt.Errorf("%w: %s", util.ErrZeroDimension, d.Type)
			}
		}
	}
	d.Entries = make([]*symtab.Entry, len(d.Names))
	for i, name := range d.Names {
		for _, p := range fd.Header.Params {
			if p.Name == name {
				return fmt.Errorf("%w: %q in %q", util.ErrVarParamCollision, name, fd.Header.ID)
			}
		}
		e, err := scope.EnterVariable(name, d.Type)
		if err != nil {
			return fmt.Errorf("%w: local variable %q", util.ErrDuplicateLocal, name)
		}
		d.Entries[i] = e
	}
	return nil
}

// processHeader resolves or creates the function entry for header in
// scope (spec §4.2 "Header processing").
//
// isRoot is only meaningful when isDefinition is true (a FuncDecl can
// never be the root); it enforces the root-function constraints: return
// type None, no parameters.
func (a *Analyzer) processHeader(header *ast.Header, scope *symtab.Scope, isDefinition, isRoot bool) (*symtab.Entry, error) {
	if isRoot {
		if !types.Equal(header.RetType, types.NoneType) || len(header.ParamDefs) > 0 {
			return nil, util.ErrMainShape
		}
	}

	// Flatten the grouped parameter list into one Param per identifier,
	// in source order (spec §4.3 step 3 "post-expansion order").
	var params []*ast.Param
	var sigs []symtab.ParamSig
	for _, g := range header.ParamDefs {
		for _, name := range g.Names {
			params = append(params, &ast.Param{Name: name, Type: g.Type, ByRef: g.ByRef})
			passing := symtab.ByValue
			if g.ByRef {
				passing = symtab.ByReference
			}
			sigs = append(sigs, symtab.ParamSig{Type: g.Type, Passing: passing})
		}
	}
	header.Params = params

	existing := scope.LookupLocal(header.ID)
	if existing == nil {
		state := symtab.Declared
		if isDefinition {
			state = symtab.Defined
		}
		return scope.EnterFunction(header.ID, sigs, header.RetType, state)
	}

	if existing.Kind != symtab.KindFunction {
		return nil, fmt.Errorf("%w: %q", util.ErrFuncVarCollision, header.ID)
	}
	if len(existing.Params) != len(sigs) {
		return nil, fmt.Errorf("%w: %q expects %d parameters, got %d",
			util.ErrFuncOverloaded, header.ID, len(existing.Params), len(sigs))
	}
	for i, p := range sigs {
		ep := existing.Params[i]
		// Conjunction of type equality AND pass-mode equality (Design
		// Notes §9: the source's mixed &&/|| predicate is not
		// reproduced; this is a straight conjunction).
		if !types.Equal(ep.Type, p.Type) || ep.Passing != p.Passing {
			return nil, fmt.Errorf("%w: %q parameter %d", util.ErrFuncParamMismatch, header.ID, i+1)
		}
	}
	if !types.Equal(existing.RetType, header.RetType) {
		return nil, fmt.Errorf("%w: %q", util.ErrFuncTypeMismatch, header.ID)
	}
	if isDefinition {
		if existing.State == symtab.Defined {
			return nil, fmt.Errorf("%w: %q", util.ErrFuncRedefined, header.ID)
		}
		symtab.SetDefined(existing)
	}
	return existing, nil
}

// validateCollisions implements spec §4.2 step 8: no identifier appears
// twice in the parameter list, no local variable name collides with
// another local, no local variable name collides with a parameter.
func (a *Analyzer) validateCollisions(fd *ast.FuncDef, scope *symtab.Scope) error {
	seenParams := make(map[string]bool, len(fd.Header.Params))
	for _, p := range fd.Header.Params {
		if seenParams[p.Name] {
			return fmt.Errorf("%w: %q in %q", util.ErrDuplicateParam, p.Name, fd.Header.ID)
		}
		seenParams[p.Name] = true
	}

	seenLocals := make(map[string]bool)
	for _, l := range fd.Locals {
		vd, ok := l.(*ast.VarDef)
		if !ok {
			continue
		}
		for _, name := range vd.Names {
			if seenLocals[name] {
				return fmt.Errorf("%w: %q in %q", util.ErrDuplicateLocal, name, fd.Header.ID)
			}
			seenLocals[name] = true
			if seenParams[name] {
				return fmt.Errorf("%w: %q in %q", util.ErrVarParamCollision, name, fd.Header.ID)
			}
		}
	}
	return nil
}

// errInternal wraps util.ErrInternal with a formatted detail, for
// conditions that a semantically-clean AST should never hit.
func errInternal(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", util.ErrInternal, fmt.Sprintf(format, args...))
}
