package sema

import (
	"errors"
	"testing"

	"edsger/internal/ast"
	"edsger/internal/types"
	"edsger/internal/util"
)

func emptyMain() *ast.FuncDef {
	return &ast.FuncDef{
		Header: &ast.Header{ID: "main", RetType: types.NoneType},
		Body:   &ast.Block{},
	}
}

func TestAnalyzeAcceptsEmptyMain(t *testing.T) {
	root := emptyMain()
	if err := New().Analyze(root); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if root.Header.CompID != "main" {
		t.Errorf("CompID = %q, want %q", root.Header.CompID, "main")
	}
	if root.Scope == nil {
		t.Error("expected Scope to be filled in by analysis")
	}
}

func TestAnalyzeRejectsMainWithParams(t *testing.T) {
	root := emptyMain()
	root.Header.ParamDefs = []*ast.ParamGroup{{Names: []string{"x"}, Type: types.IntType}}

	err := New().Analyze(root)
	if !errors.Is(err, util.ErrMainShape) {
		t.Fatalf("expected ErrMainShape, got %v", err)
	}
}

func TestAnalyzeRejectsLocalVariableCollidingWithParam(t *testing.T) {
	nested := &ast.FuncDef{
		Header: &ast.Header{
			ID:      "f",
			RetType: types.NoneType,
			ParamDefs: []*ast.ParamGroup{
				{Names: []string{"x"}, Type: types.IntType},
			},
		},
		Locals: []ast.LocalDef{
			&ast.VarDef{VarGroup: &ast.VarGroup{Names: []string{"x"}, Type: types.IntType}},
		},
		Body: &ast.Block{},
	}
	root := emptyMain()
	root.Locals = []ast.LocalDef{nested}

	err := New().Analyze(root)
	if !errors.Is(err, util.ErrVarParamCollision) {
		t.Fatalf("expected ErrVarParamCollision, got %v", err)
	}
}

func TestAnalyzeRejectsDuplicateParamName(t *testing.T) {
	nested := &ast.FuncDef{
		Header: &ast.Header{
			ID:      "f",
			RetType: types.NoneType,
			ParamDefs: []*ast.ParamGroup{
				{Names: []string{"x", "x"}, Type: types.IntType},
			},
		},
		Body: &ast.Block{},
	}
	root := emptyMain()
	root.Locals = []ast.LocalDef{nested}

	err := New().Analyze(root)
	if !errors.Is(err, util.ErrDuplicateParam) {
		t.Fatalf("expected ErrDuplicateParam, got %v", err)
	}
}

func TestAnalyzeNestedFunctionGetsParentFuncAndMangledCompID(t *testing.T) {
	nested := &ast.FuncDef{
		Header: &ast.Header{ID: "helper", RetType: types.NoneType},
		Body:   &ast.Block{},
	}
	root := emptyMain()
	root.Locals = []ast.LocalDef{nested}

	if err := New().Analyze(root); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if nested.ParentFunc != root {
		t.Error("expected nested.ParentFunc == root")
	}
	if nested.Header.CompID == "helper" || nested.Header.CompID == "" {
		t.Errorf("expected a mangled comp_id distinct from the bare name, got %q", nested.Header.CompID)
	}
	if nested.Scope.Depth != root.Scope.Depth+1 {
		t.Errorf("nested.Scope.Depth = %d, want %d", nested.Scope.Depth, root.Scope.Depth+1)
	}
}

func TestAnalyzeRejectsUndefinedForwardDeclaration(t *testing.T) {
	root := emptyMain()
	root.Locals = []ast.LocalDef{
		&ast.FuncDecl{Header: &ast.Header{ID: "g", RetType: types.NoneType}},
	}

	err := New().Analyze(root)
	if !errors.Is(err, util.ErrFuncUndefined) {
		t.Fatalf("expected ErrFuncUndefined, got %v", err)
	}
}

func TestAnalyzeMatchesForwardDeclarationToDefinition(t *testing.T) {
	root := emptyMain()
	def := &ast.FuncDef{
		Header: &ast.Header{ID: "g", RetType: types.NoneType},
		Body:   &ast.Block{},
	}
	decl := &ast.FuncDecl{Header: &ast.Header{ID: "g", RetType: types.NoneType}}
	root.Locals = []ast.LocalDef{decl, def}

	if err := New().Analyze(root); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if decl.FuncDef != def {
		t.Error("expected the forward declaration to resolve to its matching definition")
	}
}

func TestAnalyzeRejectsZeroArrayDimension(t *testing.T) {
	root := emptyMain()
	root.Locals = []ast.LocalDef{
		&ast.VarDef{VarGroup: &ast.VarGroup{Names: []string{"a"}, Type: types.NewArray(types.IntType, 0)}},
	}

	err := New().Analyze(root)
	if !errors.Is(err, util.ErrZeroDimension) {
		t.Fatalf("expected ErrZeroDimension, got %v", err)
	}
}
