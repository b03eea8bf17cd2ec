package strategy

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/block"
	"github.com/nmxmxh/memarena/internal/diag"
	"github.com/nmxmxh/memarena/internal/obslog"
)

// Stack is a LIFO bump allocator: Record captures the current top
// block's state, and Unwind rolls back to the most recent Record,
// releasing anything allocated (and any blocks created) since.
type Stack struct {
	head      *block.Block
	top       *block.Block
	alignment uint32
	snapshots *snapshotStack
	logger    *obslog.Logger
}

// NewStack creates a stack strategy over a single initial block.
func NewStack(capacity, alignment uint32) *Stack {
	head := block.New(capacity, alignment)
	return &Stack{head: head, top: head, alignment: alignment, snapshots: newSnapshotStack(), logger: obslog.Default("stack")}
}

func (s *Stack) Alloc(size uint32) (unsafe.Pointer, bool) {
	diag.Invariant(size > 0, "size > 0", "stack.Alloc: size must be nonzero")
	diag.Invariant(s.top.Next == nil, "top.Next == nil",
		"stack.Alloc: allocation must occur at the top of the stack")

	for {
		if ptr, ok := s.top.Bump(size, s.alignment); ok {
			return ptr, true
		}
		s.top = block.Grow(s.top, s.alignment)
		s.logger.Debug("block chain grew", obslog.Uint32("capacity", s.top.Capacity))
	}
}

func (s *Stack) Verify(size uint32) bool {
	diag.Invariant(size > 0, "size > 0", "stack.Verify: size must be nonzero")
	return true
}

// Reset releases every successor of head, zeros head's used counter,
// restores top to head, and drops every snapshot (the backing array's
// capacity is preserved).
func (s *Stack) Reset() {
	block.ReleaseChain(s.head, false)
	s.head.Used = 0
	s.top = s.head
	s.snapshots.resetCount()
}

// Free releases the snapshot array, then the entire chain.
func (s *Stack) Free() {
	s.snapshots = nil
	block.ReleaseChain(s.head, true)
}

// Record pushes a snapshot of the current top block's state, growing
// the snapshot array first if it's at capacity.
func (s *Stack) Record() {
	before := s.snapshots.arrayCapacity()
	s.snapshots.push(snapshot{
		topBlock:          s.top,
		usedAtCapture:     s.top.Used,
		capacityAtCapture: s.top.Capacity,
	})
	if after := s.snapshots.arrayCapacity(); after != before {
		s.logger.Debug("snapshot array grew", obslog.Int("capacity", after))
	}
}

// Unwind rolls back to the most recent Record: every block allocated
// since (i.e. beyond the captured top) is released, and the captured
// top's used/capacity counters are restored.
func (s *Stack) Unwind() {
	diag.Invariant(s.snapshots.count() > 0, "snapshots.count() > 0",
		"stack.Unwind: no snapshot recorded")

	before := s.snapshots.arrayCapacity()
	sn := s.snapshots.pop()
	if after := s.snapshots.arrayCapacity(); after != before {
		s.logger.Debug("snapshot array shrank", obslog.Int("capacity", after))
	}
	block.ReleaseChain(sn.topBlock, false)
	sn.topBlock.Used = sn.usedAtCapture
	sn.topBlock.Capacity = sn.capacityAtCapture
	s.top = sn.topBlock
}
