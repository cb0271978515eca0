//go:build auxgeom_debug

package auxgeom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDebugAssertions(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})

	assert.Panics(t, func() { cb.DrawLines([]mgl32.Vec3{{}, {}, {}}, White, 1) })
	assert.Panics(t, func() { cb.DrawPolyline([]mgl32.Vec3{{}, {}}, true, White, 1) })
	assert.Panics(t, func() { cb.DrawTriangles([]mgl32.Vec3{{}, {}}, White) })
	assert.Panics(t, func() { cb.SetRenderFlags(Default3DRenderFlags | 1) })
	assert.Panics(t, func() { cb.Current().SortedPushBuffer(0, 0) })
	assert.Panics(t, func() { cb.DrawPoint(mgl32.Vec3{}, White, 0) })
}
