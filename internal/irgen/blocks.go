package irgen

import (
	"tinygo.org/x/go-llvm"

	"edsger/internal/util"
)

// llvmAddBlock appends a freshly labeled basic block of the given
// util.Label kind to fn.
func llvmAddBlock(g *Generator, fn llvm.Value, labelKind int) llvm.BasicBlock {
	return llvm.AddBasicBlock(fn, util.NewLabel(labelKind))
}
