package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// globalString returns the pointer to value's NUL-terminated global
// constant, creating it the first time value is seen. Repeated string
// lvalues with identical contents share one backing global.
func (g *Generator) globalString(value string) llvm.Value {
	if v, ok := g.strings[value]; ok {
		return v
	}
	name := fmt.Sprintf("str.%03d", len(g.strings))
	ptr := g.builder.CreateGlobalStringPtr(value, name)
	g.strings[value] = ptr
	return ptr
}
