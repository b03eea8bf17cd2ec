package strategy

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/block"
	"github.com/nmxmxh/memarena/internal/diag"
	"github.com/nmxmxh/memarena/internal/obslog"
)

// Linear is a growing bump allocator: it walks the chain for the first
// block that fits, and appends a doubled-capacity block on exhaustion.
// Alloc never fails for this strategy.
type Linear struct {
	head      *block.Block
	alignment uint32
	logger    *obslog.Logger
}

// NewLinear creates a linear strategy over a single initial block.
func NewLinear(capacity, alignment uint32) *Linear {
	return &Linear{head: block.New(capacity, alignment), alignment: alignment, logger: obslog.Default("linear")}
}

func (l *Linear) Alloc(size uint32) (unsafe.Pointer, bool) {
	diag.Invariant(size > 0, "size > 0", "linear.Alloc: size must be nonzero")

	tail := l.head
	for {
		if ptr, ok := tail.Bump(size, l.alignment); ok {
			return ptr, true
		}
		if tail.Next == nil {
			break
		}
		tail = tail.Next
	}

	// tail is now the true chain tail; grow until the request fits.
	// Growth always doubles the prior capacity — a single allocation
	// larger than one doubling just forces another doubling, never a
	// smaller retry.
	for {
		next := block.Grow(tail, l.alignment)
		l.logger.Debug("block chain grew", obslog.Uint32("capacity", next.Capacity))
		if ptr, ok := next.Bump(size, l.alignment); ok {
			return ptr, true
		}
		tail = next
	}
}

func (l *Linear) Verify(size uint32) bool {
	diag.Invariant(size > 0, "size > 0", "linear.Verify: size must be nonzero")
	return true
}

// Reset zeros the head block's used counter and releases every
// successor block.
func (l *Linear) Reset() {
	block.ReleaseChain(l.head, false)
	l.head.Used = 0
}

// Free releases the entire chain, including the head.
func (l *Linear) Free() {
	block.ReleaseChain(l.head, true)
}
