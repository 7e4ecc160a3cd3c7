package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/types"
)

// funcCtx carries the state local to lowering one function's body: the
// FuncDef being lowered, its own frame pointer, its return-value slot (nil
// for a None-returning function) and its dedicated return block (spec
// §4.4 "reserve a distinct return_<id> block").
type funcCtx struct {
	fd       *ast.FuncDef
	fn       llvm.Value
	framePtr llvm.Value
	retSlot  llvm.Value
	retBlock llvm.BasicBlock
}

// genFuncBody emits fd's prologue, body and epilogue (spec §4.4
// "Per-function prologue" through "return_<id> block"). Grounded on the
// teacher's genFuncBody, generalized from a flat parameter-to-alloca map
// to the frame-struct-with-access-link prologue this spec requires.
func (g *Generator) genFuncBody(fd *ast.FuncDef) error {
	fn := g.funcValues[fd.Header.CompID]

	entryBlk := llvm.AddBasicBlock(fn, fmt.Sprintf("entry_%s", fd.Header.CompID))
	retBlk := llvm.AddBasicBlock(fn, fmt.Sprintf("return_%s", fd.Header.CompID))
	g.builder.SetInsertPointAtEnd(entryBlk)

	frameType := g.frameTypes[fd.Header.CompID]
	framePtr := g.builder.CreateAlloca(frameType, "frame")

	idx := 0
	if fd.StackFrame.HasAccessLink {
		field := g.builder.CreateStructGEP(framePtr, 0, "")
		g.builder.CreateStore(fn.Param(0), field)
		idx = 1
	}
	for i := range paramSlots(fd) {
		field := g.builder.CreateStructGEP(framePtr, idx+i, "")
		g.builder.CreateStore(fn.Param(idx+i), field)
	}

	// Allocate backing storage for every fixed-size array local and store
	// its base pointer into its frame slot (spec §4.4 "allocate the
	// backing storage once ... store its base pointer into the
	// variable's frame slot").
	for _, slot := range localSlots(fd) {
		if !slot.IsArray {
			continue
		}
		dims := slot.Type.Dims()
		count := 1
		for _, d := range dims {
			count *= d
		}
		elemType := g.llvmType(slot.Type.InnermostElem())
		backing := g.builder.CreateAlloca(llvm.ArrayType(elemType, count), "")
		zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
		base := g.builder.CreateGEP(backing, []llvm.Value{zero, zero}, "")
		field := g.builder.CreateStructGEP(framePtr, slot.Index, "")
		g.builder.CreateStore(base, field)
	}

	ctx := &funcCtx{fd: fd, fn: fn, framePtr: framePtr, retBlock: retBlk}
	if fd.Header.RetType.Kind != types.None {
		ctx.retSlot = g.builder.CreateAlloca(g.llvmType(fd.Header.RetType), "retval")
	}

	terminated, err := g.genStmt(ctx, fd.Body)
	if err != nil {
		return err
	}
	if !terminated {
		// Falls off the end of the body: implicit branch to the return
		// block (spec §4.4).
		g.builder.CreateBr(retBlk)
	}

	g.builder.SetInsertPointAtEnd(retBlk)
	if ctx.retSlot.IsNil() {
		g.builder.CreateRetVoid()
	} else {
		g.builder.CreateRet(g.builder.CreateLoad(ctx.retSlot, ""))
	}
	return nil
}
