package ast

import "edsger/internal/types"

// AccessLinkSlotName is the reserved identifier of slot 0 in any frame with
// HasAccessLink set; it can never collide with a source identifier because
// the language's identifiers cannot contain '$'.
const AccessLinkSlotName = "$link"

// StackFrame is the frame descriptor the planner (internal/frame) attaches
// to a FuncDef (spec §3 "StackFrame descriptor", §4.3). It lives in this
// package, rather than in internal/frame, because it is itself one of the
// AST's mutable semantic annotations: the IR emitter reads it straight off
// the FuncDef it was attached to.
type StackFrame struct {
	// FrameType names the opaque LLVM struct type identifier for this
	// frame, e.g. "frame_f" for a function with comp_id "f".
	FrameType string

	// HasAccessLink is true for every function with a parent (spec §3:
	// "access_link is absent for the top-level (root) function").
	HasAccessLink bool

	// Slots lists every slot in this frame in declaration order. Slot 0,
	// when HasAccessLink is true, is the access link; the invariant
	// "slot indices are contiguous from 0" (spec §8) always holds.
	Slots []SlotRecord
}

// SlotRecord is one (name, slot_index, is_ref, is_array) quadruple used by
// lvalue lowering (spec §4.3 "var_records").
type SlotRecord struct {
	Name    string
	Index   int
	IsRef   bool        // True for by-reference parameters: the slot holds a pointer to the caller's storage.
	IsArray bool        // True for array locals and array parameters: the slot holds the array's base pointer.
	Type    *types.Type // The slot's declared (unlowered) value type.
}

// AccessLinkIndex returns the slot index of the access link. Only valid
// when HasAccessLink is true.
func (f *StackFrame) AccessLinkIndex() int {
	return 0
}

// Find returns the slot recording name, and whether it was found in this
// frame (as opposed to needing an access-link walk into a parent frame).
func (f *StackFrame) Find(name string) (SlotRecord, bool) {
	for _, s := range f.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return SlotRecord{}, false
}
