// Package ast defines the syntax tree contract produced by the (external)
// parser and consumed by the semantic analyzer, the stack-frame planner
// and the IR emitter (spec §3 "AST").
//
// The tree itself never changes shape after parsing: semantic analysis
// only fills in the annotation fields marked below (ParentFunc, Scope,
// Entry, Entries, Params, Type, RetType, CompID, FuncDef, IsRedundant) and the frame planner
// only fills in StackFrame. The IR emitter treats every field as
// read-only. Grounded on the teacher's ir.Node, which plays the same role
// with a generic NodeType tag and a mutable Entry field filled in by a
// later pass (ir/nodetype.go) — this package gives every node its own Go
// type instead of one generic Node, since spec §3 spells out a typed
// contract (FuncDef, LValue, Expr, Cond, Stmt) rather than a generic tree.
package ast

import (
	"edsger/internal/symtab"
	"edsger/internal/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Param is one identifier of a parameter group ("x, y : int" declares two
// Params sharing a ParamGroup).
type Param struct {
	Name   string
	Type   *types.Type // Declared parameter type (array types carry OpenDim where written "[]").
	ByRef  bool
	Entry  *symtab.Entry // Filled during semantic analysis.
	Line   int
	Column int
}

// ParamGroup is one "names : type [ref]" clause of a function header.
type ParamGroup struct {
	Names []string
	Type  *types.Type
	ByRef bool
}

// Header is a function's signature: its name, its parameter list, its
// return type and (after analysis) its mangled external identifier.
type Header struct {
	ID         string
	ParamDefs  []*ParamGroup
	Params     []*Param // Flattened one-per-identifier view, filled during analysis.
	RetType    *types.Type
	CompID     string // Mangled external identifier; filled during analysis (spec §4.2).
	Line       int
	Column     int
}

// VarGroup is one "names : type" local variable declaration.
type VarGroup struct {
	Names []string
	Type  *types.Type
	Line  int
	Column int
}

// LocalDef is one entry of a function's local-definitions list: a
// variable group, a forward declaration, or a nested function definition.
type LocalDef interface {
	isLocalDef()
}

// VarDef is a LocalDef introducing one or more local variables.
type VarDef struct {
	*VarGroup
	Entries []*symtab.Entry // One per name, filled during analysis.
}

// FuncDecl is a forward declaration ("declare f(...)") within a local
// definitions list.
type FuncDecl struct {
	Header      *Header
	IsRedundant bool     // Set true for every FuncDecl beyond the first matched one (warning, not error).
	FuncDef     *FuncDef // Back-link to the matching definition in the same scope; nil until resolved.
	Line        int
	Column      int
}

// FuncDef is a function (or procedure) definition: a header, its local
// definitions and its body block. The outermost FuncDef of a program has
// no ParentFunc and is the root function (spec §4.2 "root function").
type FuncDef struct {
	Header     *Header
	Locals     []LocalDef
	Body       *Block
	ParentFunc *FuncDef      // Filled during semantic analysis; nil for the root function.
	Scope      *symtab.Scope // The scope opened for this function's own body; filled during analysis.
	StackFrame *StackFrame   // Filled during stack-frame planning.
	Entry      *symtab.Entry
	Line       int
	Column     int
}

func (*VarDef) isLocalDef()  {}
func (*FuncDecl) isLocalDef() {}
func (*FuncDef) isLocalDef()  {}

// ----------------------
// ----- LValues --------
// ----------------------

// LValueKind differentiates the cases of LValue.
type LValueKind interface {
	isLValueKind()
}

// IdLValue names a variable, parameter or (as a call target, elsewhere)
// function by identifier.
type IdLValue struct {
	Name string
}

// StringLValue is a string literal used as an lvalue of array-of-char
// type; assigning into one of its elements is rejected (spec §4.2).
type StringLValue struct {
	Value string // Literal contents, not including quotes or the trailing NUL.
}

// IndexLValue is `sub[index]`: sub may itself be an IndexLValue for
// multi-dimensional indexing.
type IndexLValue struct {
	Sub   LValueKind
	Index Expr
}

func (*IdLValue) isLValueKind()     {}
func (*StringLValue) isLValueKind() {}
func (*IndexLValue) isLValueKind()  {}

// LValue wraps an LValueKind together with its semantic-analysis
// annotations.
type LValue struct {
	Kind LValueKind

	// Type is the resolved type of the value denoted by this lvalue (spec
	// §3's "lv_type.elem_type"): always non-nil after analysis (spec §8),
	// and itself an Array type when the lvalue still denotes a
	// (partially indexed, or un-indexed) array. Spec §3 models this as
	// two fields, "elem_type" plus an optional "array_type"; since the
	// latter is always recoverable as Type when Type.Kind == types.Array,
	// the two collapse into this one field without losing information.
	Type *types.Type

	// Entry is the resolved symbol table entry this lvalue's base
	// identifier refers to. Filled during semantic analysis.
	Entry *symtab.Entry

	Line   int
	Column int
}

// ----------------------
// ----- Expressions ----
// ----------------------

// Expr is an arithmetic expression.
type Expr interface {
	isExpr()
}

type IntLit struct {
	Value  int64
	Line   int
	Column int
}

type CharLit struct {
	Value  byte
	Line   int
	Column int
}

// LValueExpr is an lvalue used in value position.
type LValueExpr struct {
	LValue *LValue
}

// CallExpr is a function call used in value position, or as a standalone
// call statement (see CallStmt).
type CallExpr struct {
	Name    string
	Args    []Expr
	Entry   *symtab.Entry // Resolved function entry; filled during analysis.
	CompID  string        // Resolved callee comp_id; filled during analysis (spec §4.2 "record the call's comp_id").
	RetType *types.Type   // Filled during analysis; equals Entry's return type.
	Line    int
	Column  int
}

// SignedExpr is unary plus/minus applied to an integer expression.
type SignedExpr struct {
	Op     string // "+" or "-"
	X      Expr
	Line   int
	Column int
}

// BinaryExpr is `x op y` arithmetic.
type BinaryExpr struct {
	Op     string // "+", "-", "*", "/", "%"
	X, Y   Expr
	Line   int
	Column int
}

// ParenExpr is a parenthesized expression; its type is its inner
// expression's type.
type ParenExpr struct {
	X Expr
}

func (*IntLit) isExpr()     {}
func (*CharLit) isExpr()    {}
func (*LValueExpr) isExpr() {}
func (*CallExpr) isExpr()   {}
func (*SignedExpr) isExpr() {}
func (*BinaryExpr) isExpr() {}
func (*ParenExpr) isExpr()  {}

// ----------------------
// ----- Conditions -----
// ----------------------

// Cond is a boolean condition.
type Cond interface {
	isCond()
}

// CompareCond is `x op y` where op is one of "=", "<", ">", "<=", ">=", "<>".
type CompareCond struct {
	Op     string
	X, Y   Expr
	Line   int
	Column int
}

type AndCond struct {
	X, Y Cond
}

type OrCond struct {
	X, Y Cond
}

type NotCond struct {
	X Cond
}

type ParenCond struct {
	X Cond
}

func (*CompareCond) isCond() {}
func (*AndCond) isCond()     {}
func (*OrCond) isCond()      {}
func (*NotCond) isCond()     {}
func (*ParenCond) isCond()   {}

// ----------------------
// ----- Statements -----
// ----------------------

// Stmt is a statement.
type Stmt interface {
	isStmt()
}

type AssignStmt struct {
	LValue *LValue
	RHS    Expr
	Line   int
	Column int
}

// CallStmt is a function (or procedure) call used as a standalone
// statement. Spec §7.6 flags an unused, non-none return value here.
type CallStmt struct {
	Call *CallExpr
}

// Block is a statement sequence. It does not open a scope of its own: its
// statements are checked in the enclosing function's scope, and no pass
// fills in or reads Entry.
type Block struct {
	Stmts []Stmt
	Entry *symtab.Entry
}

type IfStmt struct {
	Cond   Cond
	Then   Stmt
	Else   Stmt // nil when there is no else branch.
	Line   int
	Column int
}

type WhileStmt struct {
	Cond   Cond
	Body   Stmt
	Line   int
	Column int
}

// ReturnStmt is `return` (Value == nil) or `return expr`.
type ReturnStmt struct {
	Value  Expr
	Line   int
	Column int
}

type EmptyStmt struct{}

func (*AssignStmt) isStmt() {}
func (*CallStmt) isStmt()   {}
func (*Block) isStmt()      {}
func (*IfStmt) isStmt()     {}
func (*WhileStmt) isStmt()  {}
func (*ReturnStmt) isStmt() {}
func (*EmptyStmt) isStmt()  {}
