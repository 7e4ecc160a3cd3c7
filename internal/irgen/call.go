package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"edsger/internal/ast"
	"edsger/internal/symtab"
	"edsger/internal/types"
)

// underlyingLValueExpr unwraps e through any chain of parentheses to find
// the LValueExpr beneath, used when a call argument must be passed by
// reference: an Array-typed argument or a `ref` parameter's argument is
// always an lvalue in this language (there are no array or reference
// literals), so this unwrap never fails for a well-typed program.
func underlyingLValueExpr(e ast.Expr) (*ast.LValueExpr, bool) {
	for {
		switch x := e.(type) {
		case *ast.LValueExpr:
			return x, true
		case *ast.ParenExpr:
			e = x.X
		default:
			return nil, false
		}
	}
}

// genCall lowers a call expression: the access link (if the callee is
// nested) is prepended, then each argument is passed by address (ref
// parameters and every array argument) or by value (spec §4.4 "Calls").
func (g *Generator) genCall(ctx *funcCtx, call *ast.CallExpr) (llvm.Value, error) {
	var fn llvm.Value
	var args []llvm.Value

	if call.Entry.IsLibrary {
		fn = g.funcValues[call.Name]
	} else {
		calleeFD, ok := g.funcDefByEntry[call.Entry]
		if !ok {
			return llvm.Value{}, fmt.Errorf("irgen: no function definition recorded for call to %q", call.Name)
		}
		fn = g.funcValues[calleeFD.Header.CompID]
		if calleeFD.StackFrame.HasAccessLink {
			levels := ctx.fd.Scope.Depth - calleeFD.ParentFunc.Scope.Depth
			link := g.framePointerAt(ctx, calleeFD.ParentFunc, levels)
			args = append(args, g.builder.CreateBitCast(link, g.linkType, ""))
		}
	}

	params := call.Entry.Params
	for i, argExpr := range call.Args {
		isRef := params[i].Passing == symtab.ByReference || params[i].Type.Kind == types.Array
		if isRef {
			lvExpr, ok := underlyingLValueExpr(argExpr)
			if !ok {
				return llvm.Value{}, fmt.Errorf("irgen: by-reference argument %d to %q is not an lvalue", i, call.Name)
			}
			addr, err := g.genLValueAddr(ctx, lvExpr.LValue)
			if err != nil {
				return llvm.Value{}, err
			}
			args = append(args, addr)
			continue
		}
		v, err := g.genExpr(ctx, argExpr)
		if err != nil {
			return llvm.Value{}, err
		}
		args = append(args, v)
	}

	return g.builder.CreateCall(fn, args, ""), nil
}
