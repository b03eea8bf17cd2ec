// Package block implements the memory block and block chain: one
// contiguous backing region with a bump cursor, linked in a singly
// forward chain. It owns the align/pad/fit bump arithmetic shared by
// every allocator strategy and the doubling growth policy used to
// extend a chain.
package block

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/align"
	"github.com/nmxmxh/memarena/internal/backing"
	"github.com/nmxmxh/memarena/internal/diag"
)

// Block is one contiguous backing region with a bump cursor.
type Block struct {
	Base     unsafe.Pointer // aligned pointer returned by backing.Acquire
	Capacity uint32
	Used     uint32
	Next     *Block
}

// New acquires a backing region of capacity bytes (rounded up to
// alignment) and returns a fresh, empty block.
func New(capacity, alignment uint32) *Block {
	diag.Invariant(capacity > 0, "capacity > 0", "block.New: capacity must be nonzero")
	rounded := align.Up32(capacity, alignment)
	return &Block{
		Base:     backing.Acquire(rounded, alignment),
		Capacity: rounded,
	}
}

// Bump attempts to carve size bytes, aligned to alignment, off the
// front of the block's remaining space. It returns the aligned pointer
// and true on success; on failure it returns (nil, false) and leaves
// the block untouched.
func (b *Block) Bump(size, alignment uint32) (unsafe.Pointer, bool) {
	base := uintptr(b.Base)
	cursor := base + uintptr(b.Used)
	aligned := align.Up(cursor, uintptr(alignment))
	pad := uint32(aligned - cursor)
	total := size + pad

	if total > b.Capacity-b.Used {
		return nil, false
	}

	b.Used += total
	return unsafe.Pointer(aligned), true
}

// Fits reports whether Bump(size, alignment) would succeed, without
// mutating the block.
func (b *Block) Fits(size, alignment uint32) bool {
	base := uintptr(b.Base)
	cursor := base + uintptr(b.Used)
	aligned := align.Up(cursor, uintptr(alignment))
	pad := uint32(aligned - cursor)
	total := size + pad
	return total <= b.Capacity-b.Used
}

// Release returns the block's backing region to the host. It does not
// touch Next; callers walk the chain themselves.
func (b *Block) Release() {
	backing.Release(b.Base)
}

// Grow appends a new block to chain as last.Next, with capacity equal
// to last.Capacity doubled. It returns the new block, which becomes
// the new tail.
func Grow(last *Block, alignment uint32) *Block {
	next := New(last.Capacity*2, alignment)
	last.Next = next
	return next
}

// ReleaseChain walks forward from head, releasing each block's backing
// region and detaching it. If releaseHead is false, head itself is
// left intact (its Used is reset to 0 by the caller) but everything
// after it is released and head.Next is cleared.
func ReleaseChain(head *Block, releaseHead bool) {
	if head == nil {
		return
	}
	if releaseHead {
		walkReleaseFrom(head)
		return
	}
	walkReleaseFrom(head.Next)
	head.Next = nil
}

func walkReleaseFrom(start *Block) {
	for b := start; b != nil; {
		next := b.Next
		b.Release()
		b = next
	}
}
