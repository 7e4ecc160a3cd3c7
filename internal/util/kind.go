// kind.go names the stable diagnostic kinds of spec §7 as sentinel errors,
// so callers can classify a failure with errors.Is instead of matching
// message text.

package util

import "errors"

// Diagnostic kinds. Each is fatal unless noted; wrap with fmt.Errorf("%w: ...", Kind)
// to attach the offending identifier, type or position.
var (
	// Name errors.
	ErrUndefinedIdent     = errors.New("undefined identifier")
	ErrDuplicateParam     = errors.New("duplicate parameter name")
	ErrDuplicateLocal     = errors.New("duplicate local variable")
	ErrVarParamCollision  = errors.New("variable/parameter name collision")
	ErrFuncVarCollision   = errors.New("function/variable name collision")
	ErrFuncUndefined      = errors.New("function declared but not defined")
	ErrFuncRedefined      = errors.New("function redefined")
	ErrFuncOverloaded     = errors.New("function redeclared with different signature")
	ErrFuncParamMismatch  = errors.New("function parameter mismatch")
	ErrFuncTypeMismatch   = errors.New("function return type mismatch")

	// Shape errors.
	ErrArgCount  = errors.New("wrong argument count")
	ErrMainShape = errors.New("main function must return none and take no parameters")

	// Type errors.
	ErrNotInteger       = errors.New("operand is not an integer")
	ErrCompareMismatch  = errors.New("comparison operands have different types")
	ErrAssignMismatch   = errors.New("assignment between mismatched types")
	ErrAssignArray      = errors.New("cannot assign to an array")
	ErrAssignFuncResult = errors.New("cannot assign to a function result")
	ErrAssignStringLit  = errors.New("cannot assign to a string literal element")
	ErrIndexNotInteger  = errors.New("array index is not an integer")
	ErrIndexNonArray    = errors.New("indexing a non-array value")

	// Parameter-passing errors.
	ErrPassModeMismatch = errors.New("parameter passing mode mismatch")
	ErrNotLvalue        = errors.New("non-lvalue passed for a by-reference parameter")

	// Value errors.
	ErrZeroDimension = errors.New("array dimension declared as zero")
	ErrOutOfBounds   = errors.New("statically detectable out-of-bounds array index")

	// Internal errors: never reachable from a semantically-clean AST.
	ErrInternal = errors.New("internal compiler error")
)

// Warning kinds (§7.6): reported once per occurrence, never fatal.
var (
	WarnUnreachable    = errors.New("unreachable code")
	WarnUnusedResult   = errors.New("unused return value")
	WarnRedundantFwd   = errors.New("redundant forward declaration")
	WarnInfiniteLoop   = errors.New("infinite loop without return")
)
