// Package irgen lowers an analyzed, frame-planned AST into LLVM IR (spec
// §4.4 "IR emitter (core lowering)"). It assumes internal/sema.Analyze and
// internal/frame.Plan have already run to completion on the tree: every
// lvalue, call and function header annotation is read-only here, and any
// inconsistency found is an internal error (spec §4.4 "Failure semantics").
//
// Grounded on the teacher's ir/llvm/transform.go: genFuncHeader/genFuncBody
// (prologue shape), genExpression/genRelation (expression lowering via
// llvm.Builder), genIf/genWhile (branch-and-merge block shape), genAssign
// (lvalue-address-then-store) and genLoad/genStore (scope-stack addressing)
// all keep their builder-driven, one-function-at-a-time shape; generalized
// from the teacher's flat symbol-table scope stack to the frame-struct and
// access-link walk this spec's nested functions require, and from the
// teacher's implicit (no-prologue) function entry to the explicit
// frame-allocate / store-params / dedicated-return-block prologue spec
// §4.4 specifies. Uses the same tinygo.org/x/go-llvm binding the teacher
// uses: this is the one module of the compiler where a third-party
// ecosystem dependency is irreplaceable, since emitting real machine code
// without an LLVM (or equivalent) backend is not a reasonable stdlib-only
// undertaking.
package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/symtab"
)

// Generator holds the process-wide state threaded through one call to
// Generate: the LLVM context/module/builder triple, and the lookup tables
// that let a call site or an lvalue reference find the LLVM artifacts of
// another function defined elsewhere in the tree.
type Generator struct {
	ctx     llvm.Context
	module  llvm.Module
	builder llvm.Builder

	// frameTypes maps a function's comp_id to its LLVM frame struct type.
	frameTypes map[string]llvm.Type

	// funcValues maps a function's comp_id to its declared LLVM function.
	funcValues map[string]llvm.Value

	// funcDefs maps a function's comp_id to its ast.FuncDef, so a call
	// site can find the callee's ParentFunc for the access-link walk.
	funcDefs map[string]*ast.FuncDef

	// funcDefByEntry is the same lookup keyed by symtab.Entry, the handle
	// a CallExpr actually carries.
	funcDefByEntry map[*symtab.Entry]*ast.FuncDef

	linkType llvm.Type // i8*, the universal access-link pointer type.

	// genericHeader is the cached {i8*} struct type used to read slot 0 out
	// of an arbitrarily-typed frame pointer during an access-link walk.
	genericHeader llvm.Type

	// strings caches one global constant per distinct string literal value,
	// keyed by the literal's text, so repeated uses of the same literal
	// share one backing global (spec §4.4 string lvalues).
	strings map[string]llvm.Value
}

// New returns a ready-to-use Generator backed by a fresh LLVM context and
// module named moduleName (conventionally the source file's base name,
// per the teacher's "Set module name equal file name without file
// extension").
func New(moduleName string) *Generator {
	ctx := llvm.NewContext()
	g := &Generator{
		ctx:            ctx,
		module:         ctx.NewModule(moduleName),
		builder:        ctx.NewBuilder(),
		frameTypes:     make(map[string]llvm.Type),
		funcValues:     make(map[string]llvm.Value),
		funcDefs:       make(map[string]*ast.FuncDef),
		funcDefByEntry: make(map[*symtab.Entry]*ast.FuncDef),
		strings:        make(map[string]llvm.Value),
	}
	g.linkType = llvm.PointerType(ctx.Int8Type(), 0)
	return g
}

// Module returns the generated LLVM module. Valid only after Generate
// returns successfully.
func (g *Generator) Module() llvm.Module {
	return g.module
}

// Dispose releases the underlying LLVM context, module and builder.
func (g *Generator) Dispose() {
	g.builder.Dispose()
	g.module.Dispose()
	g.ctx.Dispose()
}

// Generate lowers root and every function nested within it into the
// generator's module, in three passes mirroring spec §4.4: first record
// every function definition and build its frame struct type (so a call to
// a function defined later in the source, or an outer function's access
// link type, is always already known); then declare every function's LLVM
// signature; then emit every function's body.
func (g *Generator) Generate(root *ast.FuncDef) error {
	g.declareLibrary()

	var funcDefs []*ast.FuncDef
	g.collectFuncDefs(root, &funcDefs)

	for _, fd := range funcDefs {
		g.buildFrameType(fd)
	}
	for _, fd := range funcDefs {
		if err := g.declareFunction(fd); err != nil {
			return err
		}
	}
	for _, fd := range funcDefs {
		if err := g.genFuncBody(fd); err != nil {
			return fmt.Errorf("function %q: %w", fd.Header.ID, err)
		}
	}
	return nil
}

// collectFuncDefs flattens root and every nested FuncDef into a single
// list, outer-to-inner, depth-first, matching the frame planner's walk
// order (spec §4.3 invariant).
func (g *Generator) collectFuncDefs(fd *ast.FuncDef, out *[]*ast.FuncDef) {
	*out = append(*out, fd)
	g.funcDefs[fd.Header.CompID] = fd
	g.funcDefByEntry[fd.Entry] = fd
	for _, l := range fd.Locals {
		if nested, ok := l.(*ast.FuncDef); ok {
			g.collectFuncDefs(nested, out)
		}
	}
}
