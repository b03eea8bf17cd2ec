package strategy

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/block"
	"github.com/nmxmxh/memarena/internal/diag"
)

// Scratch is a fixed, non-growing bump allocator: the only strategy
// that reports out-of-space to the caller instead of growing or
// crashing.
type Scratch struct {
	head      *block.Block
	alignment uint32
}

// NewScratch creates a scratch strategy over a single block of the
// given capacity.
func NewScratch(capacity, alignment uint32) *Scratch {
	return &Scratch{head: block.New(capacity, alignment), alignment: alignment}
}

func (s *Scratch) Alloc(size uint32) (unsafe.Pointer, bool) {
	diag.Invariant(size > 0, "size > 0", "scratch.Alloc: size must be nonzero")
	return s.head.Bump(size, s.alignment)
}

func (s *Scratch) Verify(size uint32) bool {
	diag.Invariant(size > 0, "size > 0", "scratch.Verify: size must be nonzero")
	return s.head.Fits(size, s.alignment)
}

// Reset zeros the head block's used counter and releases any
// successors (there should never be any, since scratch never grows).
func (s *Scratch) Reset() {
	block.ReleaseChain(s.head, false)
	s.head.Used = 0
}

// Free releases the entire chain, including the head.
func (s *Scratch) Free() {
	block.ReleaseChain(s.head, true)
}
