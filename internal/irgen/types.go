package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/types"
)

// llvmType maps a source-language scalar type to its LLVM representation.
// Int is a signed 64-bit word, Char an 8-bit byte, None the void type.
// Array and Func are never lowered directly: arrays are always addressed
// through a pointer to their innermost element type (see slotType), and
// function values never appear as data in this language.
func (g *Generator) llvmType(t *types.Type) llvm.Type {
	switch t.Kind {
	case types.Int:
		return g.ctx.Int64Type()
	case types.Char:
		return g.ctx.Int8Type()
	case types.None:
		return g.ctx.VoidType()
	default:
		panic(fmt.Sprintf("irgen: llvmType called on non-scalar kind %d", t.Kind))
	}
}

// retType maps a declared return type to its LLVM function-return type.
func (g *Generator) retType(t *types.Type) llvm.Type {
	if t.Kind == types.None {
		return g.ctx.VoidType()
	}
	return g.llvmType(t)
}
