// Package frontend is the boundary between source text and the AST
// contract of internal/ast. Lexical and syntactic grammar are out of
// scope here (the language's token and grammar rules are not specified
// beyond the tree shape internal/ast already encodes); Parse exists so
// cmd/edsc has a single, stable seam to call once a lexer/parser for the
// concrete grammar is wired in, the way the teacher's frontend.Parse
// builds vslc's own ir.Root from source text.
package frontend

import (
	"fmt"

	"edsger/internal/ast"
	"edsger/internal/util"
)

// Parse always returns a nil FuncDef and a util.ErrInternal error: this
// package contains no lexer or parser, the grammar being out of scope for
// this component (spec §6 "Lexical and syntactic grammar are the purview
// of the parser").
func Parse(src []byte) (*ast.FuncDef, error) {
	return nil, fmt.Errorf("%w: source parsing is not implemented by this component", util.ErrInternal)
}
