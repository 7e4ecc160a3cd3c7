package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/util"
)

// genCond lowers a boolean condition to an i1 value (spec §4.4 "Condition
// lowering"). AndCond/OrCond go through genShortCircuit so that the right
// operand is only evaluated when it can affect the result.
func (g *Generator) genCond(ctx *funcCtx, c ast.Cond) (llvm.Value, error) {
	switch x := c.(type) {
	case *ast.CompareCond:
		return g.genCompare(ctx, x)
	case *ast.AndCond:
		return g.genShortCircuit(ctx, x.X, x.Y, true)
	case *ast.OrCond:
		return g.genShortCircuit(ctx, x.X, x.Y, false)
	case *ast.NotCond:
		v, err := g.genCond(ctx, x.X)
		if err != nil {
			return llvm.Value{}, err
		}
		return g.builder.CreateNot(v, ""), nil
	case *ast.ParenCond:
		return g.genCond(ctx, x.X)
	default:
		return llvm.Value{}, fmt.Errorf("irgen: unexpected cond kind %T", c)
	}
}

func compareOp(op string) (llvm.IntPredicate, error) {
	switch op {
	case "=":
		return llvm.IntEQ, nil
	case "<>":
		return llvm.IntNE, nil
	case "<":
		return llvm.IntSLT, nil
	case ">":
		return llvm.IntSGT, nil
	case "<=":
		return llvm.IntSLE, nil
	case ">=":
		return llvm.IntSGE, nil
	default:
		return 0, fmt.Errorf("irgen: unexpected comparison operator %q", op)
	}
}

func (g *Generator) genCompare(ctx *funcCtx, c *ast.CompareCond) (llvm.Value, error) {
	pred, err := compareOp(c.Op)
	if err != nil {
		return llvm.Value{}, err
	}
	lhs, err := g.genExpr(ctx, c.X)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := g.genExpr(ctx, c.Y)
	if err != nil {
		return llvm.Value{}, err
	}
	return g.builder.CreateICmp(pred, lhs, rhs, ""), nil
}

// genShortCircuit lowers `x and y` (isAnd true) or `x or y` (isAnd false)
// without evaluating y unless its value can change the result (spec §4.4
// "Short-circuit boolean evaluation"): x is always evaluated; when x
// already settles the result (false for and, true for or) control goes to
// a block that stores that constant and branches to the merge block, otherwise y is evaluated
// in a continuation block and its value flows into the merge.
func (g *Generator) genShortCircuit(ctx *funcCtx, x, y ast.Cond, isAnd bool) (llvm.Value, error) {
	lhs, err := g.genCond(ctx, x)
	if err != nil {
		return llvm.Value{}, err
	}

	fn := ctx.fn
	contBlk := llvm.AddBasicBlock(fn, util.NewLabel(util.LabelCondGood))
	shortBlk := llvm.AddBasicBlock(fn, util.NewLabel(util.LabelCondBad))
	mergeBlk := llvm.AddBasicBlock(fn, util.NewLabel(util.LabelCondMerge))

	i1 := g.ctx.Int1Type()
	slot := g.builder.CreateAlloca(i1, "")

	if isAnd {
		g.builder.CreateCondBr(lhs, contBlk, shortBlk)
	} else {
		g.builder.CreateCondBr(lhs, shortBlk, contBlk)
	}

	g.builder.SetInsertPointAtEnd(contBlk)
	rhs, err := g.genCond(ctx, y)
	if err != nil {
		return llvm.Value{}, err
	}
	g.builder.CreateStore(rhs, slot)
	g.builder.CreateBr(mergeBlk)

	g.builder.SetInsertPointAtEnd(shortBlk)
	short := uint64(0)
	if !isAnd {
		short = 1
	}
	g.builder.CreateStore(llvm.ConstInt(i1, short, false), slot)
	g.builder.CreateBr(mergeBlk)

	g.builder.SetInsertPointAtEnd(mergeBlk)
	return g.builder.CreateLoad(slot, ""), nil
}
