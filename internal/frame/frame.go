// Package frame implements the stack-frame planner (spec §4.3): for every
// function, from the root downward, it builds a StackFrame descriptor
// listing the access-link slot (if any), one slot per parameter in
// source order, and one slot per local variable in source order, and
// attaches it to the ast.FuncDef.
//
// Grounded on the teacher's per-function local symbol table allocation in
// ir/llvm/transform.go's genFuncBody, which allocates one LLVM alloca per
// parameter into a flat map — the planner generalizes that into the
// deterministic, nesting-aware slot list this spec requires, since the
// teacher's own language has no nested functions and so never needed an
// access link.
package frame

import (
	"fmt"

	"edsger/internal/ast"
	"edsger/internal/types"
)

// Plan attaches a StackFrame descriptor to root and every function nested
// within it, recursively, matching the deterministic walk order the IR
// emitter (internal/irgen) relies on (spec §4.3 invariant).
func Plan(root *ast.FuncDef) {
	planOne(root)
}

func planOne(fd *ast.FuncDef) {
	f := &ast.StackFrame{
		FrameType:     fmt.Sprintf("frame_%s", fd.Header.CompID),
		HasAccessLink: fd.ParentFunc != nil,
	}

	idx := 0
	if f.HasAccessLink {
		// Slot 0 is the access link: a pointer to the parent's frame struct.
		f.Slots = append(f.Slots, ast.SlotRecord{
			Name:  ast.AccessLinkSlotName,
			Index: idx,
			IsRef: true,
		})
		idx++
	}

	// One slot per parameter, in post-expansion order (spec §4.3 step 3).
	for _, p := range fd.Header.Params {
		isArray := p.Type.Kind == types.Array
		f.Slots = append(f.Slots, ast.SlotRecord{
			Name:  p.Name,
			Index: idx,
			// Array parameters are always by-reference (spec §4.3 step 3).
			IsRef:   p.ByRef || isArray,
			IsArray: isArray,
			Type:    p.Type,
		})
		idx++
	}

	// One slot per local variable, each id in a var_def its own slot
	// (spec §4.3 step 4); a fixed-array local occupies a pointer slot.
	for _, l := range fd.Locals {
		vd, ok := l.(*ast.VarDef)
		if !ok {
			continue
		}
		isArray := vd.Type.Kind == types.Array
		for _, name := range vd.Names {
			f.Slots = append(f.Slots, ast.SlotRecord{
				Name:    name,
				Index:   idx,
				IsArray: isArray,
				Type:    vd.Type,
			})
			idx++
		}
	}

	fd.StackFrame = f

	// Recurse into nested function definitions.
	for _, l := range fd.Locals {
		if nested, ok := l.(*ast.FuncDef); ok {
			planOne(nested)
		}
	}
}
