package irgen

import (
	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/symtab"
)

// declareFunction declares fd's LLVM function signature: an optional
// leading i8* access-link parameter, followed by one parameter per
// declared parameter slot, matching the frame's parameter sub-slice
// exactly (spec §4.4 prologue: "if the function is nested, the first
// incoming argument is the access link").
func (g *Generator) declareFunction(fd *ast.FuncDef) error {
	var paramTypes []llvm.Type
	if fd.StackFrame.HasAccessLink {
		paramTypes = append(paramTypes, g.linkType)
	}
	slots := paramSlots(fd)
	for _, slot := range slots {
		paramTypes = append(paramTypes, g.slotType(slot))
	}

	fnType := llvm.FunctionType(g.retType(fd.Header.RetType), paramTypes, false)
	fn := llvm.AddFunction(g.module, fd.Header.CompID, fnType)

	i := 0
	if fd.StackFrame.HasAccessLink {
		fn.Param(0).SetName(ast.AccessLinkSlotName)
		i = 1
	}
	for _, slot := range slots {
		fn.Param(i).SetName(slot.Name)
		i++
	}

	g.funcValues[fd.Header.CompID] = fn
	return nil
}

// declareLibrary declares every built-in routine of spec §6 as an external
// LLVM function with C linkage, taking plain by-value/by-reference
// arguments and no access link (library functions are not nested in the
// source program).
func (g *Generator) declareLibrary() {
	for _, lib := range symtab.Library() {
		var paramTypes []llvm.Type
		for _, p := range lib.Params {
			if p.Passing == symtab.ByReference {
				paramTypes = append(paramTypes, llvm.PointerType(g.llvmType(p.Type.InnermostElem()), 0))
			} else {
				paramTypes = append(paramTypes, g.llvmType(p.Type))
			}
		}
		fnType := llvm.FunctionType(g.retType(lib.Ret), paramTypes, false)
		g.funcValues[lib.Name] = llvm.AddFunction(g.module, lib.Name, fnType)
	}
}
