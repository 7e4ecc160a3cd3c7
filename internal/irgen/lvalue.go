package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
)

// headerType returns the generic one-field {i8*} struct type used to read
// slot 0 (the access link) out of an arbitrarily-typed ancestor frame
// pointer during a static-link walk, without needing that ancestor's full
// frame struct type at the call site doing the walking.
func (g *Generator) headerType() llvm.Type {
	if g.genericHeader.IsNil() {
		g.genericHeader = g.ctx.StructType([]llvm.Type{g.linkType}, false)
	}
	return g.genericHeader
}

// framePointerAt returns target's frame pointer, reached by walking
// levels access links up from the function currently being lowered
// (spec §4.4 "If not found in this frame, load slot 0 (the access link)
// and repeat in the parent frame"). levels == 0 returns the current
// function's own frame pointer unchanged.
func (g *Generator) framePointerAt(ctx *funcCtx, target *ast.FuncDef, levels int) llvm.Value {
	if levels == 0 {
		return ctx.framePtr
	}
	cur := g.builder.CreateBitCast(ctx.framePtr, g.linkType, "")
	headerPtrType := llvm.PointerType(g.headerType(), 0)
	for i := 0; i < levels; i++ {
		hdr := g.builder.CreateBitCast(cur, headerPtrType, "")
		field := g.builder.CreateStructGEP(hdr, 0, "")
		cur = g.builder.CreateLoad(field, "")
	}
	targetType := llvm.PointerType(g.frameTypes[target.Header.CompID], 0)
	return g.builder.CreateBitCast(cur, targetType, "")
}

// identAddr resolves a variable or parameter reference to its lvalue
// address (scalar slots) or array base pointer (array slots), walking
// the static-link chain as needed (spec §4.4 "Lvalue addressing").
func (g *Generator) identAddr(ctx *funcCtx, entry *symtab.Entry) (llvm.Value, error) {
	levels := ctx.fd.Scope.Depth - entry.Scope.Depth
	target := ctx.fd
	for i := 0; i < levels; i++ {
		if target.ParentFunc == nil {
			return llvm.Value{}, fmt.Errorf("irgen: access-link walk ran past the root function for %q", entry.ID)
		}
		target = target.ParentFunc
	}
	slot, ok := target.StackFrame.Find(entry.ID)
	if !ok {
		return llvm.Value{}, fmt.Errorf("irgen: %q not found in its recorded frame", entry.ID)
	}
	framePtr := g.framePointerAt(ctx, target, levels)
	field := g.builder.CreateStructGEP(framePtr, slot.Index, "")
	if slot.IsRef || slot.IsArray {
		return g.builder.CreateLoad(field, ""), nil
	}
	return field, nil
}

// flattenIndexChain walks a chain of nested IndexLValue nodes down to its
// base (an Id or String lvalue) and returns the index expressions applied
// along the way, outermost (first-supplied) first.
func flattenIndexChain(k ast.LValueKind) (ast.LValueKind, []ast.Expr) {
	var indices []ast.Expr
	for {
		idx, ok := k.(*ast.IndexLValue)
		if !ok {
			return k, indices
		}
		indices = append([]ast.Expr{idx.Index}, indices...)
		k = idx.Sub
	}
}

// genLValueAddr resolves lv to an llvm.Value per spec §4.4 "Lvalue
// addressing": a memory address for a scalar-typed lvalue (suitable for
// load/store), or the array's base element pointer for an (possibly
// partially indexed) array-typed lvalue — the same pointer representation
// used for array-typed slots, so no further indirection is needed when
// that pointer is itself passed on as a by-reference argument.
func (g *Generator) genLValueAddr(ctx *funcCtx, lv *ast.LValue) (llvm.Value, error) {
	switch k := lv.Kind.(type) {
	case *ast.IdLValue:
		return g.identAddr(ctx, lv.Entry)
	case *ast.StringLValue:
		return g.globalString(k.Value), nil
	case *ast.IndexLValue:
		return g.genIndexAddr(ctx, lv)
	default:
		return llvm.Value{}, fmt.Errorf("irgen: unexpected lvalue kind %T", lv.Kind)
	}
}

// genIndexAddr lowers an Index(sub, e) lvalue chain: it flattens every
// index supplied along the chain and computes the single linear offset
// spec §4.4 describes, then returns base + linear_index (spec §4.4
// "For Index(sub, e) ... The resulting address is base + linear_index").
func (g *Generator) genIndexAddr(ctx *funcCtx, lv *ast.LValue) (llvm.Value, error) {
	baseKind, indexExprs := flattenIndexChain(lv.Kind)

	var basePtr llvm.Value
	var baseType *types.Type
	switch bk := baseKind.(type) {
	case *ast.IdLValue:
		addr, err := g.identAddr(ctx, lv.Entry)
		if err != nil {
			return llvm.Value{}, err
		}
		basePtr = addr
		baseType = lv.Entry.Type
	case *ast.StringLValue:
		basePtr = g.globalString(bk.Value)
		baseType = types.NewArray(types.CharType, len(bk.Value)+1)
	default:
		return llvm.Value{}, fmt.Errorf("irgen: unexpected index base kind %T", baseKind)
	}

	dims := baseType.Dims()
	indices := make([]llvm.Value, len(indexExprs))
	for i, e := range indexExprs {
		v, err := g.genExpr(ctx, e)
		if err != nil {
			return llvm.Value{}, err
		}
		indices[i] = v
	}

	i64 := g.ctx.Int64Type()
	offset := indices[0]
	for t := 1; t < len(indices); t++ {
		offset = g.builder.CreateMul(offset, llvm.ConstInt(i64, uint64(dims[t]), false), "")
		offset = g.builder.CreateAdd(offset, indices[t], "")
	}
	trailing := 1
	for _, d := range dims[len(indices):] {
		trailing *= d
	}
	if trailing != 1 {
		offset = g.builder.CreateMul(offset, llvm.ConstInt(i64, uint64(trailing), false), "")
	}

	return g.builder.CreateGEP(basePtr, []llvm.Value{offset}, ""), nil
}
