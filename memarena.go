// Package memarena is a region-based memory allocation library: many
// allocations, one bulk release. It offers four interchangeable
// allocation strategies (scratch, linear, stack, pool) behind one
// arena façade that dispatches to whichever strategy the arena was
// created with.
//
// The library is single-threaded and provides no internal
// synchronization — callers sharing an Arena across goroutines must
// serialize access themselves. Every precondition violation (nil
// handles, invalid alignment, an out-of-range strategy, calling
// Record/Unwind on a non-stack arena, unwinding with nothing recorded)
// terminates the process via a diagnostic record; see internal/diag.
// The sole exception is Scratch-strategy allocation, which reports
// exhaustion to the caller as (nil, false) instead of crashing.
package memarena

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/align"
	"github.com/nmxmxh/memarena/internal/diag"
	"github.com/nmxmxh/memarena/internal/strategy"
)

// StrategyKind selects which allocator strategy an Arena uses.
type StrategyKind int

const (
	Scratch StrategyKind = iota
	Linear
	Stack
	Pool
	count // out-of-band sentinel; never pass this to New
)

func (k StrategyKind) String() string {
	switch k {
	case Scratch:
		return "scratch"
	case Linear:
		return "linear"
	case Stack:
		return "stack"
	case Pool:
		return "pool"
	default:
		return "invalid"
	}
}

// fundamentalAlignment is the platform's minimum guaranteed alignment
// for any scalar type (the max_align_t equivalent). 8 bytes is the
// largest alignment any Go scalar type requires on the targets this
// module builds for.
const fundamentalAlignment = 8

// Arena owns a block chain, an alignment, and a strategy-specific
// allocation discipline. It dispatches every public operation to the
// strategy selected at New.
type Arena struct {
	kind      StrategyKind
	alignment uint32
	impl      strategy.Strategy
}

// New creates an arena with the given strategy, alignment, and initial
// block capacity. alignment must be a power of two no smaller than the
// platform's fundamental alignment and no larger than 1<<16; capacity
// must be nonzero; kind must not be the count sentinel. Every
// violation is fatal.
func New(kind StrategyKind, alignment, capacity uint32) *Arena {
	diag.Invariant(kind >= Scratch && kind < count, "kind in [Scratch, count)",
		"memarena.New: invalid strategy kind %d", kind)
	diag.Invariant(align.IsPowerOfTwo(alignment), "isPowerOfTwo(alignment)",
		"memarena.New: alignment %d is not a power of two", alignment)
	diag.Invariant(alignment >= fundamentalAlignment, "alignment >= fundamentalAlignment",
		"memarena.New: alignment %d is below the fundamental platform alignment %d", alignment, fundamentalAlignment)
	diag.Invariant(capacity > 0, "capacity > 0", "memarena.New: capacity must be nonzero")

	rounded := align.Up32(capacity, alignment)

	var impl strategy.Strategy
	switch kind {
	case Scratch:
		impl = strategy.NewScratch(rounded, alignment)
	case Linear:
		impl = strategy.NewLinear(rounded, alignment)
	case Stack:
		impl = strategy.NewStack(rounded, alignment)
	case Pool:
		impl = strategy.NewPool(rounded, alignment)
	default:
		diag.Fatalf("kind in [Scratch, count)", "memarena.New: unreachable strategy kind %d", kind)
	}

	return &Arena{kind: kind, alignment: alignment, impl: impl}
}

// Destroy releases every block in the arena's chain and its strategy
// state, then clears the caller's handle. Mirrors the source library's
// double-pointer destroy convention so use-after-destroy is caught at
// the call site rather than silently reading freed memory.
func Destroy(arena **Arena) {
	diag.Invariant(arena != nil && *arena != nil, "arena != nil && *arena != nil",
		"memarena.Destroy: nil arena handle")
	(*arena).impl.Free()
	*arena = nil
}

// Reset invalidates (without necessarily returning) the head block's
// memory and releases every successor block. The handle remains valid;
// any pointer previously returned by Alloc/Copy/Move is tainted.
func (a *Arena) Reset() {
	diag.Invariant(a != nil, "a != nil", "memarena.Reset: nil arena handle")
	a.impl.Reset()
}

// Alloc carves size bytes out of the arena, aligned to the arena's
// alignment. It returns (nil, false) only for a Scratch arena that
// cannot fit the request; every other strategy grows instead and never
// returns false.
func (a *Arena) Alloc(size uint32) (unsafe.Pointer, bool) {
	diag.Invariant(a != nil, "a != nil", "memarena.Alloc: nil arena handle")
	return a.impl.Alloc(size)
}

// Verify reports whether Alloc(size) would currently succeed, without
// mutating the arena.
func (a *Arena) Verify(size uint32) bool {
	diag.Invariant(a != nil, "a != nil", "memarena.Verify: nil arena handle")
	return a.impl.Verify(size)
}

// Copy bump-allocates len(src) bytes and copies src into it. src is
// left unmodified. The (nil, false) result is reachable only when the
// arena is a Scratch strategy that cannot fit the request.
func (a *Arena) Copy(src []byte) (unsafe.Pointer, bool) {
	diag.Invariant(a != nil, "a != nil", "memarena.Copy: nil arena handle")
	if len(src) == 0 {
		diag.Fatalf("len(src) > 0", "memarena.Copy: src must be nonempty")
	}
	ptr, ok := a.impl.Alloc(uint32(len(src)))
	if !ok {
		return nil, false
	}
	dst := unsafe.Slice((*byte)(ptr), len(src))
	copy(dst, src)
	return ptr, true
}

// Move bump-allocates len(*src) bytes, copies from *src into it, invokes
// releaser(*src) exactly once, and clears *src to nil. Like Copy, a
// (nil, false) result is only reachable for an exhausted Scratch arena
// — in that case releaser is not invoked and *src is left untouched.
func (a *Arena) Move(src *[]byte, releaser func([]byte)) (unsafe.Pointer, bool) {
	diag.Invariant(a != nil, "a != nil", "memarena.Move: nil arena handle")
	diag.Invariant(src != nil, "src != nil", "memarena.Move: nil src pointer")

	original := *src
	ptr, ok := a.Copy(original)
	if !ok {
		return nil, false
	}
	releaser(original)
	*src = nil
	return ptr, true
}

// Record captures the current top-of-stack state so a later Unwind can
// roll back to it. Fatal unless the arena's strategy is Stack.
func (a *Arena) Record() {
	diag.Invariant(a != nil, "a != nil", "memarena.Record: nil arena handle")
	stacker, ok := a.impl.(strategy.Stacker)
	diag.Invariant(ok, "strategy == Stack", "memarena.Record: arena strategy is %s, not stack", a.kind)
	stacker.Record()
}

// Unwind rolls back to the most recent Record, releasing every
// allocation and block made since. Fatal unless the arena's strategy
// is Stack, and fatal if no Record is outstanding.
func (a *Arena) Unwind() {
	diag.Invariant(a != nil, "a != nil", "memarena.Unwind: nil arena handle")
	stacker, ok := a.impl.(strategy.Stacker)
	diag.Invariant(ok, "strategy == Stack", "memarena.Unwind: arena strategy is %s, not stack", a.kind)
	stacker.Unwind()
}

// Strategy returns the arena's strategy kind.
func (a *Arena) Strategy() StrategyKind { return a.kind }

// Alignment returns the arena's alignment.
func (a *Arena) Alignment() uint32 { return a.alignment }
