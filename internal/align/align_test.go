package align

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[uint32]bool{
		0:   false,
		1:   true,
		2:   true,
		3:   false,
		4:   true,
		15:  false,
		16:  true,
		1023: false,
		1024: true,
	}
	for n, want := range cases {
		if got := IsPowerOfTwo(n); got != want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestUp(t *testing.T) {
	cases := []struct{ addr, alignment, want uintptr }{
		{0, 16, 0},
		{1, 16, 16},
		{15, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{100, 8, 104},
	}
	for _, c := range cases {
		if got := Up(c.addr, c.alignment); got != c.want {
			t.Errorf("Up(%d, %d) = %d, want %d", c.addr, c.alignment, got, c.want)
		}
	}
}

func TestUp32(t *testing.T) {
	if got := Up32(48, 64); got != 64 {
		t.Errorf("Up32(48, 64) = %d, want 64", got)
	}
	if got := Up32(64, 64); got != 64 {
		t.Errorf("Up32(64, 64) = %d, want 64", got)
	}
	if got := Up32(65, 64); got != 128 {
		t.Errorf("Up32(65, 64) = %d, want 128", got)
	}
}
