package irgen

import (
	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
)

// buildFrameType constructs fd's LLVM frame struct type and registers it
// under its comp_id. Must run before declareFunction or genFuncBody
// touches fd, and must run on every function before any of their bodies
// are emitted: a nested function's access-link field only ever needs the
// generic i8* pointer type (see headerType in lvalue.go), so
// there is no ordering dependency between a parent's and a child's frame
// type beyond "both exist before bodies are generated".
func (g *Generator) buildFrameType(fd *ast.FuncDef) {
	st := g.ctx.StructCreateNamed(fd.StackFrame.FrameType)
	fields := make([]llvm.Type, len(fd.StackFrame.Slots))
	for i, slot := range fd.StackFrame.Slots {
		fields[i] = g.slotType(slot)
	}
	st.StructSetBody(fields, false)
	g.frameTypes[fd.Header.CompID] = st
}

// paramSlots returns the sub-slice of fd's frame slots that correspond to
// its declared parameters, in order (excluding the access-link slot and
// every local-variable slot).
func paramSlots(fd *ast.FuncDef) []ast.SlotRecord {
	offset := 0
	if fd.StackFrame.HasAccessLink {
		offset = 1
	}
	return fd.StackFrame.Slots[offset : offset+len(fd.Header.Params)]
}

// localSlots returns the sub-slice of fd's frame slots holding its local
// variables, in order.
func localSlots(fd *ast.FuncDef) []ast.SlotRecord {
	offset := len(fd.Header.Params)
	if fd.StackFrame.HasAccessLink {
		offset++
	}
	return fd.StackFrame.Slots[offset:]
}

// slotType returns the LLVM type of one frame slot's storage, per spec
// §4.3/§4.4: a by-value scalar slot holds the value directly; a
// by-reference or array slot holds a pointer (to the referenced scalar,
// or to the array's base element, respectively); the access-link slot
// always holds a generic i8*.
func (g *Generator) slotType(slot ast.SlotRecord) llvm.Type {
	if slot.Name == ast.AccessLinkSlotName {
		return g.linkType
	}
	if slot.IsArray {
		return llvm.PointerType(g.llvmType(slot.Type.InnermostElem()), 0)
	}
	if slot.IsRef {
		return llvm.PointerType(g.llvmType(slot.Type), 0)
	}
	return g.llvmType(slot.Type)
}
