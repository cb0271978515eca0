//go:build !auxgeom_index16

package auxgeom

import "math"

// Index addresses a vertex inside a single snapshot.
type Index = uint32

const MaxIndex = math.MaxUint32
