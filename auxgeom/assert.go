package auxgeom

import "fmt"

// debugAssert panics on caller contract violations in builds tagged auxgeom_debug.
// Release builds skip the check; callers drop input that would corrupt buffers.
func debugAssert(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(fmt.Sprintf("auxgeom: "+format, args...))
	}
}
