package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/util"
)

// genStmt lowers s, returning true when every path through s ends in a
// branch (so the caller must not also emit a fallthrough branch of its
// own) — mirroring the reachability analysis the semantic analyzer
// already performed, but expressed here purely in terms of emitted
// terminators (spec §4.4 "Statement lowering").
func (g *Generator) genStmt(ctx *funcCtx, s ast.Stmt) (bool, error) {
	switch x := s.(type) {
	case *ast.Block:
		for _, inner := range x.Stmts {
			terminated, err := g.genStmt(ctx, inner)
			if err != nil {
				return false, err
			}
			if terminated {
				return true, nil
			}
		}
		return false, nil

	case *ast.AssignStmt:
		addr, err := g.genLValueAddr(ctx, x.LValue)
		if err != nil {
			return false, err
		}
		v, err := g.genExpr(ctx, x.RHS)
		if err != nil {
			return false, err
		}
		g.builder.CreateStore(v, addr)
		return false, nil

	case *ast.CallStmt:
		_, err := g.genCall(ctx, x.Call)
		return false, err

	case *ast.IfStmt:
		return g.genIf(ctx, x)

	case *ast.WhileStmt:
		return g.genWhile(ctx, x)

	case *ast.ReturnStmt:
		if x.Value != nil {
			v, err := g.genExpr(ctx, x.Value)
			if err != nil {
				return false, err
			}
			g.builder.CreateStore(v, ctx.retSlot)
		}
		g.builder.CreateBr(ctx.retBlock)
		return true, nil

	case *ast.EmptyStmt:
		return false, nil

	default:
		return false, fmt.Errorf("irgen: unexpected statement kind %T", s)
	}
}

// genIf lowers an if/else statement as a then/else/cont diamond (spec
// §4.4 "Control-flow lowering"). It reports that control falls through
// (not terminated) unless both branches definitely return/break out via
// an explicit terminator of their own.
//
// The convergence block is allocated lazily, exactly like the teacher's
// genIf (ir/llvm/transform.go): when every branch that can reach it
// definitely returns, no block falls through to it, so creating it
// unconditionally would leave a block with no predecessor and no
// terminator in the function, which the LLVM verifier rejects.
func (g *Generator) genIf(ctx *funcCtx, s *ast.IfStmt) (bool, error) {
	cond, err := g.genCond(ctx, s.Cond)
	if err != nil {
		return false, err
	}

	fn := ctx.fn
	thenBlk := llvmAddBlock(g, fn, util.LabelThen)

	if s.Else == nil {
		// The false edge always needs somewhere to go, so the convergence
		// block is never optional here.
		contBlk := llvmAddBlock(g, fn, util.LabelCont)
		g.builder.CreateCondBr(cond, thenBlk, contBlk)

		g.builder.SetInsertPointAtEnd(thenBlk)
		thenTerm, err := g.genStmt(ctx, s.Then)
		if err != nil {
			return false, err
		}
		if !thenTerm {
			g.builder.CreateBr(contBlk)
		}

		g.builder.SetInsertPointAtEnd(contBlk)
		return false, nil
	}

	elseBlk := llvmAddBlock(g, fn, util.LabelElse)
	g.builder.CreateCondBr(cond, thenBlk, elseBlk)

	g.builder.SetInsertPointAtEnd(thenBlk)
	thenTerm, err := g.genStmt(ctx, s.Then)
	if err != nil {
		return false, err
	}

	var contBlk llvm.BasicBlock
	if !thenTerm {
		contBlk = llvmAddBlock(g, fn, util.LabelCont)
		g.builder.CreateBr(contBlk)
	}

	g.builder.SetInsertPointAtEnd(elseBlk)
	elseTerm, err := g.genStmt(ctx, s.Else)
	if err != nil {
		return false, err
	}

	if !elseTerm {
		if contBlk.IsNil() {
			contBlk = llvmAddBlock(g, fn, util.LabelCont)
		}
		g.builder.CreateBr(contBlk)
	}

	if contBlk.IsNil() {
		// Both branches definitely return: there is no fallthrough edge,
		// so no convergence block exists and control never reaches here.
		return true, nil
	}
	g.builder.SetInsertPointAtEnd(contBlk)
	return false, nil
}

// genWhile lowers a while statement as head/body/end blocks, re-evaluating
// the condition at the top of every iteration (spec §4.4 "Control-flow
// lowering"). A while loop never reports itself as terminated: the loop
// condition can always be false on entry, so control always reaches the
// end block through a real edge.
func (g *Generator) genWhile(ctx *funcCtx, s *ast.WhileStmt) (bool, error) {
	fn := ctx.fn
	headBlk := llvmAddBlock(g, fn, util.LabelWhileHead)
	bodyBlk := llvmAddBlock(g, fn, util.LabelWhileBody)
	endBlk := llvmAddBlock(g, fn, util.LabelWhileEnd)

	g.builder.CreateBr(headBlk)
	g.builder.SetInsertPointAtEnd(headBlk)
	cond, err := g.genCond(ctx, s.Cond)
	if err != nil {
		return false, err
	}
	g.builder.CreateCondBr(cond, bodyBlk, endBlk)

	g.builder.SetInsertPointAtEnd(bodyBlk)
	bodyTerm, err := g.genStmt(ctx, s.Body)
	if err != nil {
		return false, err
	}
	if !bodyTerm {
		g.builder.CreateBr(headBlk)
	}

	g.builder.SetInsertPointAtEnd(endBlk)
	return false, nil
}
