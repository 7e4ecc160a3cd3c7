package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print recursively prints fd and its nested function definitions,
// indenting one level per nesting depth. Grounded on the teacher's
// Node.Print(depth int, showDepth bool) (ir/nodetype.go), generalized from
// a generic Children walk to this package's typed tree.
func (fd *FuncDef) Print(w io.Writer, depth int) {
	pad := strings.Repeat("  ", depth)
	link := ""
	if fd.StackFrame != nil && fd.StackFrame.HasAccessLink {
		link = " [access-link]"
	}
	fmt.Fprintf(w, "%sFUNCTION %s (comp_id=%s) -> %s%s\n", pad, fd.Header.ID, fd.Header.CompID, fd.Header.RetType, link)
	for _, p := range fd.Header.Params {
		ref := ""
		if p.ByRef {
			ref = " ref"
		}
		fmt.Fprintf(w, "%s  PARAM %s : %s%s\n", pad, p.Name, p.Type, ref)
	}
	for _, l := range fd.Locals {
		switch d := l.(type) {
		case *VarDef:
			fmt.Fprintf(w, "%s  VAR %s : %s\n", pad, strings.Join(d.Names, ", "), d.Type)
		case *FuncDecl:
			fmt.Fprintf(w, "%s  DECLARE %s (redundant=%t)\n", pad, d.Header.ID, d.IsRedundant)
		case *FuncDef:
			d.Print(w, depth+1)
		}
	}
	if fd.StackFrame != nil {
		fmt.Fprintf(w, "%s  FRAME %s\n", pad, fd.StackFrame.FrameType)
		for _, s := range fd.StackFrame.Slots {
			fmt.Fprintf(w, "%s    slot %d: %s ref=%t array=%t\n", pad, s.Index, s.Name, s.IsRef, s.IsArray)
		}
	}
}
