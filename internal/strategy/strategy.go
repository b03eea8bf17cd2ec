// Package strategy implements the four allocator strategies (scratch,
// linear, stack, pool) that the arena façade dispatches to. Every
// strategy shares the same block-chain growth and bump-alignment
// discipline from package block; what differs is how each handles
// exhaustion, reset, and (for stack) rollback.
package strategy

import "unsafe"

// Strategy is the common shape every allocator variant satisfies: an
// interface over concrete strategy types stands in for a tagged union
// dispatched by a strategy tag.
type Strategy interface {
	// Alloc carves size bytes off the strategy's block chain. Only
	// the scratch strategy can fail here; every other strategy grows
	// the chain instead and Alloc never returns false for them.
	Alloc(size uint32) (unsafe.Pointer, bool)
	// Verify performs Alloc's fit check without mutating state.
	Verify(size uint32) bool
	// Reset invalidates (without necessarily returning) the head
	// block's memory and releases every successor block.
	Reset()
	// Free releases every block the strategy owns, including the
	// head, and any strategy-private state (e.g. the stack's
	// snapshot array).
	Free()
}

// Stacker is implemented only by the Stack strategy. The façade type
// -asserts for it when dispatching Record/Unwind, which must be fatal
// on any arena whose strategy isn't Stack.
type Stacker interface {
	Strategy
	Record()
	Unwind()
}
