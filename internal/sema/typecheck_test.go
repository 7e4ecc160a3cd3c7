package sema

import (
	"errors"
	"testing"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
	"edsger/internal/util"
)

func scopeWithInt(name string) *symtab.Scope {
	s := symtab.NewRoot()
	if _, err := s.EnterVariable(name, types.IntType); err != nil {
		panic(err)
	}
	return s
}

func TestTypeOfExprLiteralsAndArithmetic(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	bin := &ast.BinaryExpr{X: &ast.IntLit{Value: 1}, Y: &ast.IntLit{Value: 2}, Op: "+"}
	got, err := a.typeOfExpr(bin, s)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !types.Equal(got, types.IntType) {
		t.Errorf("type = %s, want int", got)
	}
}

func TestTypeOfExprRejectsCharArithmetic(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	bin := &ast.BinaryExpr{X: &ast.CharLit{Value: 'a'}, Y: &ast.IntLit{Value: 1}, Op: "+"}
	_, err := a.typeOfExpr(bin, s)
	if !errors.Is(err, util.ErrNotInteger) {
		t.Fatalf("expected ErrNotInteger, got %v", err)
	}
}

func TestTypeOfLValueIdentFillsEntryAndType(t *testing.T) {
	a := New()
	s := scopeWithInt("x")

	lv := &ast.LValue{Kind: &ast.IdLValue{Name: "x"}}
	got, err := a.typeOfLValue(lv, s)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !types.Equal(got, types.IntType) || lv.Entry == nil {
		t.Errorf("expected lvalue to resolve to int with Entry filled, got %s entry=%v", got, lv.Entry)
	}
}

func TestTypeOfLValueUndefinedIdent(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	lv := &ast.LValue{Kind: &ast.IdLValue{Name: "missing"}}
	_, err := a.typeOfLValue(lv, s)
	if !errors.Is(err, util.ErrUndefinedIdent) {
		t.Fatalf("expected ErrUndefinedIdent, got %v", err)
	}
}

func TestTypeOfLValueIndexOutOfBoundsConstant(t *testing.T) {
	a := New()
	s := symtab.NewRoot()
	if _, err := s.EnterVariable("a", types.NewArray(types.IntType, 3)); err != nil {
		t.Fatal(err)
	}

	lv := &ast.LValue{Kind: &ast.IndexLValue{
		Sub:   &ast.IdLValue{Name: "a"},
		Index: &ast.IntLit{Value: 5},
	}}
	_, err := a.typeOfLValue(lv, s)
	if !errors.Is(err, util.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestTypeOfLValueIndexNonArray(t *testing.T) {
	a := New()
	s := scopeWithInt("x")

	lv := &ast.LValue{Kind: &ast.IndexLValue{
		Sub:   &ast.IdLValue{Name: "x"},
		Index: &ast.IntLit{Value: 0},
	}}
	_, err := a.typeOfLValue(lv, s)
	if !errors.Is(err, util.ErrIndexNonArray) {
		t.Fatalf("expected ErrIndexNonArray, got %v", err)
	}
}

func TestTypeOfCallChecksArityAndArgTypes(t *testing.T) {
	a := New()
	s := symtab.NewRoot()
	if _, err := s.EnterFunction("f", []symtab.ParamSig{{Type: types.IntType, Passing: symtab.ByValue}}, types.IntType, symtab.Defined); err != nil {
		t.Fatal(err)
	}

	call := &ast.CallExpr{Name: "f", Args: []ast.Expr{&ast.IntLit{Value: 1}}}
	got, err := a.typeOfCall(call, s)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !types.Equal(got, types.IntType) || call.Entry == nil {
		t.Errorf("expected call to resolve to int with Entry filled, got %s entry=%v", got, call.Entry)
	}
}

func TestTypeOfCallRejectsWrongArgCount(t *testing.T) {
	a := New()
	s := symtab.NewRoot()
	if _, err := s.EnterFunction("f", []symtab.ParamSig{{Type: types.IntType, Passing: symtab.ByValue}}, types.IntType, symtab.Defined); err != nil {
		t.Fatal(err)
	}

	call := &ast.CallExpr{Name: "f"}
	_, err := a.typeOfCall(call, s)
	if !errors.Is(err, util.ErrArgCount) {
		t.Fatalf("expected ErrArgCount, got %v", err)
	}
}

func TestTypeOfCallRejectsNonLvalueByRefArgument(t *testing.T) {
	a := New()
	s := symtab.NewRoot()
	params := []symtab.ParamSig{{Type: types.IntType, Passing: symtab.ByReference}}
	if _, err := s.EnterFunction("f", params, types.NoneType, symtab.Defined); err != nil {
		t.Fatal(err)
	}

	call := &ast.CallExpr{Name: "f", Args: []ast.Expr{&ast.IntLit{Value: 1}}}
	_, err := a.typeOfCall(call, s)
	if !errors.Is(err, util.ErrNotLvalue) {
		t.Fatalf("expected ErrNotLvalue, got %v", err)
	}
}

func TestCheckCondRejectsTypeMismatch(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	cond := &ast.CompareCond{X: &ast.IntLit{Value: 1}, Y: &ast.CharLit{Value: 'a'}, Op: "="}
	err := a.checkCond(cond, s)
	if !errors.Is(err, util.ErrCompareMismatch) {
		t.Fatalf("expected ErrCompareMismatch, got %v", err)
	}
}

func TestCheckCondAcceptsAndOrNot(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	cmp := func() ast.Cond {
		return &ast.CompareCond{X: &ast.IntLit{Value: 1}, Y: &ast.IntLit{Value: 1}, Op: "="}
	}
	cond := &ast.NotCond{X: &ast.AndCond{X: cmp(), Y: &ast.OrCond{X: cmp(), Y: cmp()}}}
	if err := a.checkCond(cond, s); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestCheckAssignRejectsArrayTarget(t *testing.T) {
	a := New()
	s := symtab.NewRoot()
	if _, err := s.EnterVariable("a", types.NewArray(types.IntType, 3)); err != nil {
		t.Fatal(err)
	}

	stmt := &ast.AssignStmt{
		LValue: &ast.LValue{Kind: &ast.IdLValue{Name: "a"}},
		RHS:    &ast.IntLit{Value: 1},
	}
	err := a.checkAssign(stmt, s)
	if !errors.Is(err, util.ErrAssignArray) {
		t.Fatalf("expected ErrAssignArray, got %v", err)
	}
}

func TestCheckAssignRejectsStringLiteralTarget(t *testing.T) {
	a := New()
	s := symtab.NewRoot()

	// "hi"[0] := 'x': the target is an element of a string literal.
	stmt := &ast.AssignStmt{
		LValue: &ast.LValue{Kind: &ast.IndexLValue{
			Sub:   &ast.StringLValue{Value: "hi"},
			Index: &ast.IntLit{Value: 0},
		}},
		RHS: &ast.CharLit{Value: 'x'},
	}
	err := a.checkAssign(stmt, s)
	if !errors.Is(err, util.ErrAssignStringLit) {
		t.Fatalf("expected ErrAssignStringLit, got %v", err)
	}
}

func TestCheckAssignAcceptsMatchingScalar(t *testing.T) {
	a := New()
	s := scopeWithInt("x")

	stmt := &ast.AssignStmt{
		LValue: &ast.LValue{Kind: &ast.IdLValue{Name: "x"}},
		RHS:    &ast.IntLit{Value: 42},
	}
	if err := a.checkAssign(stmt, s); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestCheckAssignRejectsTypeMismatch(t *testing.T) {
	a := New()
	s := scopeWithInt("x")

	stmt := &ast.AssignStmt{
		LValue: &ast.LValue{Kind: &ast.IdLValue{Name: "x"}},
		RHS:    &ast.CharLit{Value: 'z'},
	}
	err := a.checkAssign(stmt, s)
	if !errors.Is(err, util.ErrAssignMismatch) {
		t.Fatalf("expected ErrAssignMismatch, got %v", err)
	}
}
