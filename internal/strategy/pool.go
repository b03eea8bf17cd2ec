package strategy

import (
	"unsafe"

	"github.com/nmxmxh/memarena/internal/diag"
)

// Pool is a Linear strategy whose effective allocation size is first
// rounded up to a fixed unit, fixed at creation to the arena's initial
// capacity. The coupling between pool unit and initial capacity is
// intentional — see DESIGN.md.
type Pool struct {
	linear   *Linear
	poolUnit uint32
}

// NewPool creates a pool strategy; poolUnit is the quantum every
// allocation request is rounded up to.
func NewPool(capacity, alignment uint32) *Pool {
	return &Pool{linear: NewLinear(capacity, alignment), poolUnit: capacity}
}

func (p *Pool) Alloc(size uint32) (unsafe.Pointer, bool) {
	diag.Invariant(size > 0, "size > 0", "pool.Alloc: size must be nonzero")
	effective := ceilToUnit(size, p.poolUnit)
	return p.linear.Alloc(effective)
}

func (p *Pool) Verify(size uint32) bool {
	diag.Invariant(size > 0, "size > 0", "pool.Verify: size must be nonzero")
	return true
}

func (p *Pool) Reset() { p.linear.Reset() }
func (p *Pool) Free()  { p.linear.Free() }

func ceilToUnit(size, unit uint32) uint32 {
	return ((size + unit - 1) / unit) * unit
}
