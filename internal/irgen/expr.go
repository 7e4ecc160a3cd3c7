package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/types"
)

// genExpr lowers an arithmetic expression to its loaded value (spec §4.4
// "Expression lowering").
func (g *Generator) genExpr(ctx *funcCtx, e ast.Expr) (llvm.Value, error) {
	switch x := e.(type) {
	case *ast.IntLit:
		return llvm.ConstInt(g.ctx.Int64Type(), uint64(x.Value), true), nil
	case *ast.CharLit:
		return llvm.ConstInt(g.ctx.Int8Type(), uint64(x.Value), false), nil
	case *ast.LValueExpr:
		return g.genLValueValue(ctx, x.LValue)
	case *ast.CallExpr:
		return g.genCall(ctx, x)
	case *ast.SignedExpr:
		v, err := g.genExpr(ctx, x.X)
		if err != nil {
			return llvm.Value{}, err
		}
		if x.Op == "-" {
			return g.builder.CreateNeg(v, ""), nil
		}
		return v, nil
	case *ast.BinaryExpr:
		return g.genBinary(ctx, x)
	case *ast.ParenExpr:
		return g.genExpr(ctx, x.X)
	default:
		return llvm.Value{}, fmt.Errorf("irgen: unexpected expr kind %T", e)
	}
}

// genLValueValue resolves lv's address/base pointer via genLValueAddr and,
// for a scalar-typed lvalue, loads through it; an array-typed lvalue is
// already a base pointer value and is returned as-is (it only ever appears
// in value position as a by-reference call argument, spec §4.4 "Calls").
func (g *Generator) genLValueValue(ctx *funcCtx, lv *ast.LValue) (llvm.Value, error) {
	addr, err := g.genLValueAddr(ctx, lv)
	if err != nil {
		return llvm.Value{}, err
	}
	if types.IsScalar(lv.Type) {
		return g.builder.CreateLoad(addr, ""), nil
	}
	return addr, nil
}

// genBinary lowers x op y. Division and modulo use signed LLVM ops per
// spec §7 ("Integer division truncates toward zero").
func (g *Generator) genBinary(ctx *funcCtx, x *ast.BinaryExpr) (llvm.Value, error) {
	lhs, err := g.genExpr(ctx, x.X)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := g.genExpr(ctx, x.Y)
	if err != nil {
		return llvm.Value{}, err
	}
	switch x.Op {
	case "+":
		return g.builder.CreateAdd(lhs, rhs, ""), nil
	case "-":
		return g.builder.CreateSub(lhs, rhs, ""), nil
	case "*":
		return g.builder.CreateMul(lhs, rhs, ""), nil
	case "/":
		return g.builder.CreateSDiv(lhs, rhs, ""), nil
	case "%":
		return g.builder.CreateSRem(lhs, rhs, ""), nil
	default:
		return llvm.Value{}, fmt.Errorf("irgen: unexpected binary operator %q", x.Op)
	}
}
