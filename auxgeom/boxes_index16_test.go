//go:build auxgeom_index16 && !auxgeom_debug

package auxgeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawAABBs_DropsBatchPastIndexWidth(t *testing.T) {
	fits := (MaxIndex + 1) / 24
	cb := NewCommandBuffer(nil, Options{})

	boxes := make([]AABB, fits+1)
	for i := range boxes {
		boxes[i] = unitBox
	}
	cb.DrawAABBs(boxes, true, White, BoxShaded)
	d := cb.Current()
	assert.Empty(t, d.PushBuffer)
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Indices)

	cb.DrawAABBs(boxes[:fits], true, White, BoxShaded)
	require.Len(t, d.PushBuffer, 1)
	assert.Equal(t, uint32(fits*24), d.PushBuffer[0].NumVertices)
	assert.Equal(t, Index(fits*24-24), d.Indices[len(d.Indices)-36], "last box rebases without wrapping")
}
