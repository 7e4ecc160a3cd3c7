package sema

import "edsger/internal/ast"

// constExprValue folds an integer constant expression (spec §4.2
// "Constant evaluation"). It is undefined (returns ok == false) for
// anything involving identifiers or calls, mirroring the teacher's
// constant-folding switch in ir/optimise.go, generalized from the
// teacher's four operators to the full arithmetic set and to characters.
func (a *Analyzer) constExprValue(e ast.Expr) (int64, bool) {
	switch x := e.(type) {
	case *ast.IntLit:
		return x.Value, true
	case *ast.CharLit:
		return int64(x.Value), true
	case *ast.ParenExpr:
		return a.constExprValue(x.X)
	case *ast.SignedExpr:
		v, ok := a.constExprValue(x.X)
		if !ok {
			return 0, false
		}
		if x.Op == "-" {
			return -v, true
		}
		return v, true
	case *ast.BinaryExpr:
		l, ok := a.constExprValue(x.X)
		if !ok {
			return 0, false
		}
		r, ok := a.constExprValue(x.Y)
		if !ok {
			return 0, false
		}
		switch x.Op {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "/":
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case "%":
			if r == 0 {
				return 0, false
			}
			return l % r, true
		default:
			return 0, false
		}
	default:
		// Identifiers, calls: not foldable.
		return 0, false
	}
}

// constCondValue folds a constant boolean condition (spec §4.2 "Constant
// evaluation", used for dead-branch reasoning in checkStmt). Undefined for
// anything involving identifiers or calls.
func (a *Analyzer) constCondValue(c ast.Cond) (bool, bool) {
	switch x := c.(type) {
	case *ast.CompareCond:
		l, ok := a.constExprValue(x.X)
		if !ok {
			return false, false
		}
		r, ok := a.constExprValue(x.Y)
		if !ok {
			return false, false
		}
		switch x.Op {
		case "=":
			return l == r, true
		case "<>":
			return l != r, true
		case "<":
			return l < r, true
		case ">":
			return l > r, true
		case "<=":
			return l <= r, true
		case ">=":
			return l >= r, true
		default:
			return false, false
		}
	case *ast.AndCond:
		l, ok := a.constCondValue(x.X)
		if !ok {
			return false, false
		}
		if !l {
			return false, true
		}
		r, ok := a.constCondValue(x.Y)
		if !ok {
			return false, false
		}
		return r, true
	case *ast.OrCond:
		l, ok := a.constCondValue(x.X)
		if !ok {
			return false, false
		}
		if l {
			return true, true
		}
		r, ok := a.constCondValue(x.Y)
		if !ok {
			return false, false
		}
		return r, true
	case *ast.NotCond:
		v, ok := a.constCondValue(x.X)
		if !ok {
			return false, false
		}
		return !v, true
	case *ast.ParenCond:
		return a.constCondValue(x.X)
	default:
		return false, false
	}
}
