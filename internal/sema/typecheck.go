package sema

import (
	"fmt"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
	"edsger/internal/util"
)

// typeOfExpr infers and returns the type of an expression, recording no
// annotation of its own (expressions other than lvalues and calls carry
// no mutable fields to fill).
func (a *Analyzer) typeOfExpr(e ast.Expr, scope *symtab.Scope) (*types.Type, error) {
	switch x := e.(type) {
	case *ast.IntLit:
		return types.IntType, nil
	case *ast.CharLit:
		return types.CharType, nil
	case *ast.ParenExpr:
		return a.typeOfExpr(x.X, scope)
	case *ast.SignedExpr:
		t, err := a.typeOfExpr(x.X, scope)
		if err != nil {
			return nil, err
		}
		if !types.Equal(t, types.IntType) {
			return nil, fmt.Errorf("%w: unary %s at line %d", util.ErrNotInteger, x.Op, x.Line)
		}
		return types.IntType, nil
	case *ast.BinaryExpr:
		lt, err := a.typeOfExpr(x.X, scope)
		if err != nil {
			return nil, err
		}
		rt, err := a.typeOfExpr(x.Y, scope)
		if err != nil {
			return nil, err
		}
		if !types.Equal(lt, types.IntType) || !types.Equal(rt, types.IntType) {
			return nil, fmt.Errorf("%w: binary %s at line %d", util.ErrNotInteger, x.Op, x.Line)
		}
		return types.IntType, nil
	case *ast.LValueExpr:
		return a.typeOfLValue(x.LValue, scope)
	case *ast.CallExpr:
		return a.typeOfCall(x, scope)
	default:
		return nil, errInternal("unexpected expression node %T", e)
	}
}

// typeOfLValue resolves and type-checks an lvalue (spec §4.2 "Lvalue"),
// filling in its Entry and Type annotations.
func (a *Analyzer) typeOfLValue(lv *ast.LValue, scope *symtab.Scope) (*types.Type, error) {
	switch k := lv.Kind.(type) {
	case *ast.IdLValue:
		e := scope.Lookup(k.Name)
		if e == nil {
			return nil, fmt.Errorf("%w: %q at line %d", util.ErrUndefinedIdent, k.Name, lv.Line)
		}
		if e.Kind == symtab.KindFunction {
			// Not reachable from a correctly-shaped AST: expression
			// lvalues never name a function (calls have their own node).
			return nil, errInternal("lvalue %q resolves to a function entry", k.Name)
		}
		lv.Entry = e
		lv.Type = e.Type
		return e.Type, nil

	case *ast.StringLValue:
		t := types.NewArray(types.CharType, len(k.Value)+1)
		lv.Type = t
		return t, nil

	case *ast.IndexLValue:
		subLV := &ast.LValue{Kind: k.Sub, Line: lv.Line, Column: lv.Column}
		subType, err := a.typeOfLValue(subLV, scope)
		if err != nil {
			return nil, err
		}
		lv.Entry = subLV.Entry
		if subType == nil || subType.Kind != types.Array {
			return nil, fmt.Errorf("%w: at line %d", util.ErrIndexNonArray, lv.Line)
		}
		idxType, err := a.typeOfExpr(k.Index, scope)
		if err != nil {
			return nil, err
		}
		if !types.Equal(idxType, types.IntType) {
			return nil, fmt.Errorf("%w: at line %d", util.ErrIndexNotInteger, lv.Line)
		}
		if subType.Size != types.OpenDim {
			if v, ok := a.constExprValue(k.Index); ok && (v < 0 || v >= int64(subType.Size)) {
				return nil, fmt.Errorf("%w: index %d not in [0, %d) at line %d",
					util.ErrOutOfBounds, v, subType.Size, lv.Line)
			}
		}
		lv.Type = subType.Elem
		return subType.Elem, nil

	default:
		return nil, errInternal("unexpected lvalue kind %T", lv.Kind)
	}
}

// typeOfCall resolves and type-checks a function call (spec §4.2
// "Function call"), filling in the CallExpr's Entry, CompID and RetType
// annotations.
func (a *Analyzer) typeOfCall(c *ast.CallExpr, scope *symtab.Scope) (*types.Type, error) {
	e := scope.Lookup(c.Name)
	if e == nil {
		return nil, fmt.Errorf("%w: function %q at line %d", util.ErrUndefinedIdent, c.Name, c.Line)
	}
	if e.Kind != symtab.KindFunction {
		return nil, fmt.Errorf("%w: %q is not a function, at line %d", util.ErrFuncVarCollision, c.Name, c.Line)
	}
	if len(c.Args) != len(e.Params) {
		return nil, fmt.Errorf("%w: %q expects %d arguments, got %d at line %d",
			util.ErrArgCount, c.Name, len(e.Params), len(c.Args), c.Line)
	}

	for i, arg := range c.Args {
		param := e.Params[i]
		argType, err := a.typeOfExpr(arg, scope)
		if err != nil {
			return nil, err
		}
		if !types.Equal(argType, param.Type) {
			return nil, fmt.Errorf("%w: %q argument %d expects %s, got %s at line %d",
				util.ErrAssignMismatch, c.Name, i+1, param.Type, argType, c.Line)
		}
		if param.Passing == symtab.ByReference {
			if !isLvalueExpr(arg) {
				return nil, fmt.Errorf("%w: %q argument %d at line %d", util.ErrNotLvalue, c.Name, i+1, c.Line)
			}
		}
	}

	c.Entry = e
	c.RetType = e.RetType
	// Record the call's comp_id by hashing the chain of scope names
	// walking up from the callee's scope (spec §4.2), or keep the raw
	// name for library routines.
	if e.IsLibrary {
		c.CompID = c.Name
	} else {
		c.CompID = util.CompID(c.Name, scopeNameChain(e.Scope))
	}
	return e.RetType, nil
}

// scopeNameChain returns the names of calleeScope and every scope enclosing
// it, outermost first, excluding the depth-0 root scope: the chain of
// function names a callee was declared under, matching the ancestor names
// analyzeFuncDef mangles the callee's own comp_id with.
func scopeNameChain(calleeScope *symtab.Scope) []string {
	var chain []*symtab.Scope
	for sc := calleeScope; sc != nil && sc.Depth > 0; sc = sc.Parent {
		chain = append(chain, sc)
	}
	names := make([]string, len(chain))
	for i, sc := range chain {
		names[len(chain)-1-i] = sc.Name
	}
	return names
}

// baseLValueKind drills through a chain of IndexLValue nodes to the
// underlying Id or String lvalue kind being indexed.
func baseLValueKind(k ast.LValueKind) ast.LValueKind {
	for {
		idx, ok := k.(*ast.IndexLValue)
		if !ok {
			return k
		}
		k = idx.Sub
	}
}

// isLvalueExpr reports whether e is an lvalue, possibly wrapped in
// parentheses (spec §4.2: "each argument corresponding to a by-reference
// parameter must itself be an lvalue (possibly under parentheses)").
func isLvalueExpr(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.LValueExpr:
		return true
	case *ast.ParenExpr:
		return isLvalueExpr(x.X)
	default:
		return false
	}
}

// checkCond type-checks a boolean condition (spec §4.2's "compare"
// relation and short-circuit and/or/not/paren forms).
func (a *Analyzer) checkCond(c ast.Cond, scope *symtab.Scope) error {
	switch x := c.(type) {
	case *ast.CompareCond:
		lt, err := a.typeOfExpr(x.X, scope)
		if err != nil {
			return err
		}
		rt, err := a.typeOfExpr(x.Y, scope)
		if err != nil {
			return err
		}
		if !types.Equal(lt, rt) {
			return fmt.Errorf("%w: %s %s %s at line %d", util.ErrCompareMismatch, lt, x.Op, rt, x.Line)
		}
		return nil
	case *ast.AndCond:
		if err := a.checkCond(x.X, scope); err != nil {
			return err
		}
		return a.checkCond(x.Y, scope)
	case *ast.OrCond:
		if err := a.checkCond(x.X, scope); err != nil {
			return err
		}
		return a.checkCond(x.Y, scope)
	case *ast.NotCond:
		return a.checkCond(x.X, scope)
	case *ast.ParenCond:
		return a.checkCond(x.X, scope)
	default:
		return errInternal("unexpected condition node %T", c)
	}
}

// checkAssign type-checks an assignment statement (spec §4.2
// "Assignment").
func (a *Analyzer) checkAssign(s *ast.AssignStmt, scope *symtab.Scope) error {
	lt, err := a.typeOfLValue(s.LValue, scope)
	if err != nil {
		return err
	}
	if !types.IsScalar(lt) {
		if lt != nil && lt.Kind == types.Array {
			return fmt.Errorf("%w: at line %d", util.ErrAssignArray, s.Line)
		}
		if lt != nil && lt.Kind == types.Func {
			return fmt.Errorf("%w: at line %d", util.ErrAssignFuncResult, s.Line)
		}
		return fmt.Errorf("%w: at line %d", util.ErrAssignMismatch, s.Line)
	}
	if _, ok := baseLValueKind(s.LValue.Kind).(*ast.StringLValue); ok {
		return fmt.Errorf("%w: at line %d", util.ErrAssignStringLit, s.Line)
	}
	rt, err := a.typeOfExpr(s.RHS, scope)
	if err != nil {
		return err
	}
	if !types.Equal(lt, rt) {
		return fmt.Errorf("%w: cannot assign %s to %s at line %d", util.ErrAssignMismatch, rt, lt, s.Line)
	}
	return nil
}
