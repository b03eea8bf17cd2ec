//go:build !memarena_debug

package backing

// Release builds zero released memory instead of poisoning it; fresh
// mappings are already zeroed by the OS (or by the heap fallback), so
// there is nothing to do on acquire.

func poisonFresh(region []byte) {}

func poisonReleased(region []byte) {
	clear(region)
}
