//go:build memarena_debug

package backing

// Debug builds poison memory to surface use-after-reset and
// use-after-destroy bugs: fresh mappings read back as 0xCC, released
// mappings as the 0xDEADC0DE pattern. Neither pattern is part of the
// contract; they exist to make stale reads crash loudly in tests.

func poisonFresh(region []byte) {
	for i := range region {
		region[i] = 0xCC
	}
}

func poisonReleased(region []byte) {
	pattern := [4]byte{0xDE, 0xAD, 0xC0, 0xDE}
	for i := range region {
		region[i] = pattern[i%4]
	}
}
