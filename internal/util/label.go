// label.go generates unique basic-block labels for the IR emitter and the
// mangled comp_id suffix the semantic analyzer attaches to nested function
// headers (spec §4.2 "Header processing"). Grounded on the teacher's
// util.NewLabel/labelPrefixes idiom, with the channel-based thread-safety
// dropped (spec §5: the compiler is single-threaded) in favor of a plain
// package-level counter.

package util

import (
	"fmt"
	"hash/fnv"
)

// Label kinds, named after their role in the control-flow lowering of §4.4.
const (
	LabelThen = iota
	LabelElse
	LabelCont
	LabelWhileHead
	LabelWhileBody
	LabelWhileEnd
	LabelCondGood
	LabelCondBad
	LabelCondMerge
	labelKindCount
)

var labelPrefixes = [labelKindCount]string{
	"then",
	"else",
	"cont",
	"while.head",
	"while.body",
	"while.end",
	"cond.good",
	"cond.bad",
	"cond.merge",
}

var labelIndices [labelKindCount]int

// NewLabel returns a fresh, human-readable basic block label of the given
// kind, e.g. "then.003".
func NewLabel(kind int) string {
	if kind < 0 || kind >= labelKindCount {
		return "label.invalid"
	}
	n := labelIndices[kind]
	labelIndices[kind]++
	return fmt.Sprintf("%s.%03d", labelPrefixes[kind], n)
}

// ResetLabels clears every label counter. Exposed for tests that compile
// more than one program in the same process.
func ResetLabels() {
	labelIndices = [labelKindCount]int{}
}

// MangleSuffix returns the short, stable hash suffix used to build a
// nested function's comp_id: a hash of the concatenation of every
// enclosing function's identifier, from outermost to innermost ancestor.
// Per Design Notes §9, this is a convenience for uniqueness within a
// single compilation, not a collision-free scheme.
func MangleSuffix(ancestorNames []string) string {
	h := fnv.New32a()
	for _, n := range ancestorNames {
		_, _ = h.Write([]byte(n))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%08x", h.Sum32())
}

// CompID returns the mangled external identifier for a function named
// name declared under the given chain of ancestor function names
// (outermost first, not including name itself). Library functions should
// bypass CompID and keep their raw name (spec §4.2).
func CompID(name string, ancestorNames []string) string {
	if len(ancestorNames) == 0 {
		return name
	}
	return fmt.Sprintf("%s.%s", name, MangleSuffix(ancestorNames))
}
