package symtab

import (
	"testing"

	"edsger/internal/types"
)

func TestOpenScopeDepthAndParentLink(t *testing.T) {
	root := NewRoot()
	if root.Depth != 0 {
		t.Fatalf("root depth = %d, want 0", root.Depth)
	}
	child := root.OpenScope("f")
	if child.Depth != 1 || child.Parent != root {
		t.Fatalf("child = %+v, want Depth=1 Parent=root", child)
	}
	if child.CloseScope() != root {
		t.Error("CloseScope() should return the parent")
	}
}

func TestLookupWalksAncestorsNotSiblings(t *testing.T) {
	root := NewRoot()
	if _, err := root.EnterVariable("x", types.IntType); err != nil {
		t.Fatal(err)
	}
	child := root.OpenScope("f")
	if got := child.Lookup("x"); got == nil {
		t.Error("expected child scope to find x declared in its parent")
	}
	if got := child.LookupLocal("x"); got != nil {
		t.Error("LookupLocal must not see the parent's entries")
	}
	if got := root.Lookup("y"); got != nil {
		t.Error("expected an undeclared identifier to resolve to nil")
	}
}

func TestEnterVariableRejectsDuplicateInSameScope(t *testing.T) {
	s := NewRoot()
	if _, err := s.EnterVariable("x", types.IntType); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EnterVariable("x", types.IntType); err == nil {
		t.Error("expected a duplicate declaration in the same scope to fail")
	}
}

func TestUndefinedFunctionsReportsOnlyDeclaredState(t *testing.T) {
	s := NewRoot()
	if _, err := s.EnterFunction("declared_only", nil, types.NoneType, Declared); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EnterFunction("defined", nil, types.NoneType, Defined); err != nil {
		t.Fatal(err)
	}
	got := s.UndefinedFunctions()
	if len(got) != 1 || got[0] != "declared_only" {
		t.Errorf("UndefinedFunctions() = %v, want [declared_only]", got)
	}
}

func TestSeedLibraryMarksEntriesAsLibraryAndDefined(t *testing.T) {
	root := NewRoot()
	SeedLibrary(root)

	e := root.LookupLocal("writeInteger")
	if e == nil {
		t.Fatal("expected writeInteger to be seeded")
	}
	if !e.IsLibrary {
		t.Error("expected IsLibrary to be true for a seeded library function")
	}
	if e.State != Defined {
		t.Error("expected a seeded library function to be Defined, not merely Declared")
	}
	if len(e.Params) != 1 || e.Params[0].Type != types.IntType {
		t.Errorf("writeInteger params = %+v, want one Int parameter", e.Params)
	}
}

func TestLibraryMatchesSeedLibraryCount(t *testing.T) {
	root := NewRoot()
	SeedLibrary(root)
	for _, l := range Library() {
		if root.LookupLocal(l.Name) == nil {
			t.Errorf("Library() named %q but SeedLibrary did not install it", l.Name)
		}
	}
}
