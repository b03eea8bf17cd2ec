package memarena

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/memarena/internal/diag"
)

func TestNew_DispatchesToRequestedStrategy(t *testing.T) {
	for _, kind := range []StrategyKind{Scratch, Linear, Stack, Pool} {
		a := New(kind, 16, 64)
		require.Equal(t, kind, a.Strategy())
		require.Equal(t, uint32(16), a.Alignment())
		Destroy(&a)
		require.Nil(t, a)
	}
}

func TestAlloc_ReturnsAlignedNonOverlappingPointers(t *testing.T) {
	a := New(Linear, 16, 64)
	defer Destroy(&a)

	p1, ok := a.Alloc(32)
	require.True(t, ok)
	require.Zero(t, uintptr(p1)%16)

	p2, ok := a.Alloc(32)
	require.True(t, ok)
	require.NotEqual(t, p1, p2)
	require.True(t, uintptr(p2) >= uintptr(p1)+32 || uintptr(p1) >= uintptr(p2)+32)
}

func TestVerify_MatchesAllocOutcomeForScratch(t *testing.T) {
	a := New(Scratch, 8, 32)
	defer Destroy(&a)

	require.True(t, a.Verify(20))
	_, ok := a.Alloc(20)
	require.True(t, ok)

	require.False(t, a.Verify(16))
	_, ok = a.Alloc(16)
	require.False(t, ok)
}

func TestCopy_RoundTripsBytesWithoutMutatingSource(t *testing.T) {
	a := New(Linear, 16, 64)
	defer Destroy(&a)

	src := []byte("region allocators are simple")
	original := append([]byte(nil), src...)

	ptr, ok := a.Copy(src)
	require.True(t, ok)

	copied := unsafe.Slice((*byte)(ptr), len(src))
	require.Equal(t, original, copied)
	require.Equal(t, original, src)
}

func TestMove_InvalidatesSourceAndInvokesReleaserOnce(t *testing.T) {
	a := New(Linear, 16, 64)
	defer Destroy(&a)

	src := []byte("moved data")
	original := append([]byte(nil), src...)

	released := 0
	var releasedWith []byte
	releaser := func(b []byte) {
		released++
		releasedWith = b
	}

	ptr, ok := a.Move(&src, releaser)
	require.True(t, ok)
	require.Nil(t, src)
	require.Equal(t, 1, released)
	require.Equal(t, original, releasedWith)

	copied := unsafe.Slice((*byte)(ptr), len(original))
	require.Equal(t, original, copied)
}

func TestRecordUnwind_FatalOnNonStackArena(t *testing.T) {
	a := New(Linear, 16, 64)
	defer Destroy(&a)

	var buf bytes.Buffer
	diag.SetSink(&buf)
	defer diag.SetSink(nil)

	fired := diag.AssertFatal(func() { a.Record() })
	require.True(t, fired)
	require.Contains(t, buf.String(), "strategy == Stack")

	buf.Reset()
	fired = diag.AssertFatal(func() { a.Unwind() })
	require.True(t, fired)
	require.Contains(t, buf.String(), "strategy == Stack")
}

func TestNew_FatalOnInvalidAlignment(t *testing.T) {
	var buf bytes.Buffer
	diag.SetSink(&buf)
	defer diag.SetSink(nil)

	fired := diag.AssertFatal(func() { New(Scratch, 17, 64) })
	require.True(t, fired)
	require.Contains(t, buf.String(), "not a power of two")
}

func TestStackArena_RecordAllocUnwind(t *testing.T) {
	a := New(Stack, 16, 128)
	defer Destroy(&a)

	a.Record()
	p1, ok := a.Alloc(32)
	require.True(t, ok)
	_, ok = a.Alloc(32)
	require.True(t, ok)

	a.Unwind()
	p3, ok := a.Alloc(48)
	require.True(t, ok)
	require.Equal(t, p1, p3)
}
