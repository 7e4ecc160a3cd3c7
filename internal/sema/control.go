package sema

import (
	"fmt"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
	"edsger/internal/util"
)

// checkStmt type-checks one statement and computes its return-producing
// type (spec §4.2.4 "type_of_block"). It returns (type, true) when s
// provably returns on every control-flow path that reaches it, and
// (nil, false) otherwise, except that a Block with no return-producing
// statement yields (NoneType, false), so the body of a procedure that
// falls off its end matches a none return type. A Block delegates to itself recursively: the
// block's own return type is that of the first sub-statement that is
// itself return-producing, and every statement after it is unreachable
// (warned once per block). Grounded on the teacher's single recursive
// Node.validate switch (ir/validate.go), generalized to also compute
// reachability/return-type instead of only type errors, since spec §4.2.4
// requires both to be derived in the same walk.
func (a *Analyzer) checkStmt(s ast.Stmt, scope *symtab.Scope, header *ast.Header) (*types.Type, bool, error) {
	switch n := s.(type) {
	case *ast.Block:
		var result *types.Type
		found := false
		warned := false
		for _, sub := range n.Stmts {
			rt, definite, err := a.checkStmt(sub, scope, header)
			if err != nil {
				return nil, false, err
			}
			if !found {
				if definite {
					result = rt
					found = true
				}
			} else if !warned {
				a.Diag.Warn(util.WarnUnreachable, "unreachable code in %q", header.ID)
				warned = true
			}
		}
		if !found {
			return types.NoneType, false, nil
		}
		return result, true, nil

	case *ast.AssignStmt:
		return nil, false, a.checkAssign(n, scope)

	case *ast.CallStmt:
		rt, err := a.typeOfCall(n.Call, scope)
		if err != nil {
			return nil, false, err
		}
		if !types.Equal(rt, types.NoneType) {
			a.Diag.Warn(util.WarnUnusedResult, "unused return value of %q", n.Call.Name)
		}
		return nil, false, nil

	case *ast.IfStmt:
		if err := a.checkCond(n.Cond, scope); err != nil {
			return nil, false, err
		}
		thenType, thenDef, err := a.checkStmt(n.Then, scope, header)
		if err != nil {
			return nil, false, err
		}
		if n.Else != nil {
			elseType, elseDef, err := a.checkStmt(n.Else, scope, header)
			if err != nil {
				return nil, false, err
			}
			if thenDef && elseDef {
				if !types.Equal(thenType, elseType) {
					return nil, false, fmt.Errorf("%w: if/else branches return %s and %s at line %d",
						util.ErrFuncTypeMismatch, thenType, elseType, n.Line)
				}
				return thenType, true, nil
			}
			return nil, false, nil
		}
		// No else: propagate a return type only when the guard is a
		// compile-time constant true and the body returns (spec §4.2.4).
		if v, ok := a.constCondValue(n.Cond); ok && v && thenDef {
			return thenType, true, nil
		}
		return nil, false, nil

	case *ast.WhileStmt:
		if err := a.checkCond(n.Cond, scope); err != nil {
			return nil, false, err
		}
		bodyType, bodyDef, err := a.checkStmt(n.Body, scope, header)
		if err != nil {
			return nil, false, err
		}
		if v, ok := a.constCondValue(n.Cond); ok && v {
			if !bodyDef {
				a.Diag.Warn(util.WarnInfiniteLoop, "infinite loop in %q", header.ID)
				return nil, false, nil
			}
			return bodyType, true, nil
		}
		return nil, false, nil

	case *ast.ReturnStmt:
		if n.Value != nil {
			t, err := a.typeOfExpr(n.Value, scope)
			if err != nil {
				return nil, false, err
			}
			return t, true, nil
		}
		return types.NoneType, true, nil

	case *ast.EmptyStmt:
		return nil, false, nil

	default:
		return nil, false, errInternal("unexpected statement node %T", s)
	}
}
