package backing

import (
	"unsafe"

	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquire_ReturnsAlignedPointer(t *testing.T) {
	for _, alignment := range []uint32{8, 16, 64, 4096} {
		ptr := Acquire(256, alignment)
		require.NotNil(t, ptr)
		require.Zero(t, uintptr(ptr)%uintptr(alignment))
		Release(ptr)
	}
}

func TestAcquire_RegionIsWritable(t *testing.T) {
	ptr := Acquire(128, 16)
	defer Release(ptr)

	region := unsafe.Slice((*byte)(ptr), 128)
	for i := range region {
		region[i] = byte(i)
	}
	for i := range region {
		require.Equal(t, byte(i), region[i])
	}
}

func TestAcquire_SidecarSurvivesRoundTrip(t *testing.T) {
	ptr := Acquire(64, 16)
	defer Release(ptr)

	sc := readSidecar(ptr)
	require.NotZero(t, sc.base)
	require.GreaterOrEqual(t, sc.total, uint32(64))
}

func TestAcquire_DistinctRegionsDoNotOverlap(t *testing.T) {
	a := Acquire(64, 16)
	b := Acquire(64, 16)
	defer Release(a)
	defer Release(b)

	aStart, aEnd := uintptr(a), uintptr(a)+64
	bStart, bEnd := uintptr(b), uintptr(b)+64
	overlap := aStart < bEnd && bStart < aEnd
	require.False(t, overlap)
}
