package symtab

import (
	"fmt"

	"edsger/internal/types"
)

// libSig describes one built-in library routine's signature (spec §6).
// Encoded as a static table consulted once at startup, per Design Notes §9,
// rather than constructed ad-hoc.
type libSig struct {
	name   string
	params []ParamSig
	ret    *types.Type
}

var openCharArray = types.NewArray(types.CharType, types.OpenDim)

var library = []libSig{
	{name: "writeInteger", params: []ParamSig{{Type: types.IntType, Passing: ByValue}}, ret: types.NoneType},
	{name: "writeChar", params: []ParamSig{{Type: types.CharType, Passing: ByValue}}, ret: types.NoneType},
	{name: "writeString", params: []ParamSig{{Type: openCharArray, Passing: ByReference}}, ret: types.NoneType},
	{name: "readInteger", params: nil, ret: types.IntType},
	{name: "readChar", params: nil, ret: types.CharType},
	{
		// The Int parameter is the maximum number of characters to read
		// into the buffer (a bounded fgets-style read); spec.md names the
		// signature but not this parameter's role (see SPEC_FULL.md).
		name: "readString",
		params: []ParamSig{
			{Type: types.IntType, Passing: ByValue},
			{Type: openCharArray, Passing: ByReference},
		},
		ret: types.NoneType,
	},
	{name: "ascii", params: []ParamSig{{Type: types.CharType, Passing: ByValue}}, ret: types.IntType},
	{name: "chr", params: []ParamSig{{Type: types.IntType, Passing: ByValue}}, ret: types.CharType},
	{name: "strlen", params: []ParamSig{{Type: openCharArray, Passing: ByReference}}, ret: types.IntType},
	{
		name: "strcmp",
		params: []ParamSig{
			{Type: openCharArray, Passing: ByReference},
			{Type: openCharArray, Passing: ByReference},
		},
		ret: types.IntType,
	},
	{
		name: "strcpy",
		params: []ParamSig{
			{Type: openCharArray, Passing: ByReference},
			{Type: openCharArray, Passing: ByReference},
		},
		ret: types.NoneType,
	},
	{
		name: "strcat",
		params: []ParamSig{
			{Type: openCharArray, Passing: ByReference},
			{Type: openCharArray, Passing: ByReference},
		},
		ret: types.NoneType,
	},
}

// LibSig is the exported view of one built-in routine's signature, used by
// the IR emitter to declare matching external functions (spec §4.4, §6).
type LibSig struct {
	Name   string
	Params []ParamSig
	Ret    *types.Type
}

// Library returns every built-in routine's signature, in declaration order.
func Library() []LibSig {
	out := make([]LibSig, len(library))
	for i, l := range library {
		out[i] = LibSig{Name: l.name, Params: l.params, Ret: l.ret}
	}
	return out
}

// SeedLibrary installs every built-in library routine into root at depth
// 0 (spec §4.1, §4.2 "installs the pre-populated library-function
// entries at depth 0"). Library functions receive no access link: they
// are not nested in the source program (spec §6).
func SeedLibrary(root *Scope) {
	for _, l := range library {
		// Library functions are pre-defined, not forward-declared.
		e, err := root.EnterFunction(l.name, l.params, l.ret, Defined)
		if err != nil {
			panic(fmt.Sprintf("compiler error: duplicate library function %q", l.name))
		}
		e.IsLibrary = true
	}
}
