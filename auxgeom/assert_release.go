//go:build !auxgeom_debug

package auxgeom

const debugChecks = false
