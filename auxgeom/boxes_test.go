package auxgeom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}

func TestDrawAABBs_ShadedSolidRebasesPerBox(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	boxes := []AABB{
		unitBox,
		{Min: mgl32.Vec3{2, 0, 0}, Max: mgl32.Vec3{3, 1, 1}},
		{Min: mgl32.Vec3{4, 0, 0}, Max: mgl32.Vec3{5, 1, 1}},
	}
	cb.DrawAABBs(boxes, true, White, BoxShaded)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 1)
	assert.Equal(t, PrimTrianglesIndexed, d.PushBuffer[0].PrimType())
	require.Len(t, d.Vertices, 72)
	require.Len(t, d.Indices, 108)

	literal := [36]Index{}
	for f := 0; f < 6; f++ {
		for k, q := range []Index{0, 1, 2, 0, 2, 3} {
			literal[6*f+k] = Index(4*f) + q
		}
	}
	for n := 0; n < 3; n++ {
		nv := Index(n * 24)
		for k := 0; k < 36; k++ {
			assert.Equal(t, nv+literal[k], d.Indices[n*36+k], "box %d index %d", n, k)
		}
	}
	assert.Equal(t, float32(4), d.Vertices[48].Pos.X(), "third box starts at its own min corner")
}

func TestDrawAABBs_WireAndEncodedRebaseBy8(t *testing.T) {
	for _, solid := range []bool{false, true} {
		cb := NewCommandBuffer(nil, Options{})
		cb.DrawAABBs([]AABB{unitBox, unitBox}, solid, White, BoxColorEncoded)

		d := cb.Current()
		require.Len(t, d.Vertices, 16)
		ni := 24
		src := boxWireIndices[:]
		if solid {
			ni = 36
			src = boxSolidIndices[:]
		}
		require.Len(t, d.Indices, 2*ni)
		for k := 0; k < ni; k++ {
			assert.Equal(t, src[k], d.Indices[k])
			assert.Equal(t, 8+src[k], d.Indices[ni+k])
		}
	}
}

func TestDrawAABB_ColorEncodedCorners(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	col := RGBA(200, 100, 50, 255)
	cb.DrawAABB(unitBox, false, col, BoxColorEncoded)

	d := cb.Current()
	require.Len(t, d.Vertices, 8)
	require.Len(t, d.Indices, 24)
	assert.Equal(t, PrimLinesIndexed, d.PushBuffer[0].PrimType())
	assert.Equal(t, PackColor(RGBA(15, 15, 15, 255)), d.Vertices[0].Color)
	assert.Equal(t, PackColor(RGBA(255, 255, 255, 255)), d.Vertices[6].Color)
	for _, i := range []int{1, 2, 3, 4, 5, 7} {
		assert.Equal(t, PackColor(col), d.Vertices[i].Color)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, d.Vertices[0].Pos)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, d.Vertices[1].Pos)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, d.Vertices[6].Pos)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, d.Vertices[7].Pos)
}

func TestDrawAABB_ShadedFaces(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	col := RGBA(200, 200, 200, 255)
	cb.DrawAABB(unitBox, true, col, BoxShaded)

	d := cb.Current()
	require.Len(t, d.Vertices, 24)
	require.Len(t, d.Indices, 36)

	scales := []float32{0.5, 1.0, 0.6, 0.9, 0.7, 0.8}
	for f, s := range scales {
		want := PackColor(ScaleColor(col, s))
		for k := 0; k < 4; k++ {
			assert.Equal(t, want, d.Vertices[4*f+k].Color, "face %d", f)
		}
	}
	// top face lies at z max
	for k := 4; k < 8; k++ {
		assert.Equal(t, float32(1), d.Vertices[k].Pos.Z())
	}
}

func TestDrawAABB_ShadedWireUsesCallColor(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	cb.DrawAABB(unitBox, false, Red, BoxShaded)

	d := cb.Current()
	require.Len(t, d.Vertices, 8)
	for _, v := range d.Vertices {
		assert.Equal(t, PackColor(Red), v.Color)
	}
}

func TestDrawOBB_Variants(t *testing.T) {
	rot := mgl32.Rotate3DZ(mgl32.DegToRad(90))
	obb := OBBFromAABB(rot, AABB{Min: mgl32.Vec3{-1, -2, -3}, Max: mgl32.Vec3{1, 2, 3}})

	cb := NewCommandBuffer(nil, Options{})
	cb.DrawOBB(obb, mgl32.Vec3{10, 0, 0}, false, White, BoxShaded)
	d := cb.Current()
	require.Len(t, d.Vertices, 8)

	// corner 0 is (-1,-2,-3); rotated 90 degrees about z gives (2,-1,-3)
	assertVec3InDelta(t, mgl32.Vec3{12, -1, -3}, d.Vertices[0].Pos, 1e-5)

	cb = NewCommandBuffer(nil, Options{})
	cb.DrawOBBTransformed(obb, mgl32.Translate3D(0, 5, 0), false, White, BoxShaded)
	d = cb.Current()
	assertVec3InDelta(t, mgl32.Vec3{2, 4, -3}, d.Vertices[0].Pos, 1e-5)

	cb = NewCommandBuffer(nil, Options{})
	cb.DrawAABBTransformed(unitBox, mgl32.Translate3D(1, 1, 1), true, White, BoxColorEncoded)
	d = cb.Current()
	require.Len(t, d.Vertices, 8)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, d.Vertices[6].Pos)
}

func TestDrawAABB_TranslucentSetsBlend(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	cb.DrawAABB(unitBox, true, RGBA(255, 0, 0, 64), BoxShaded)
	assert.Equal(t, AlphaBlended, cb.Current().PushBuffer[0].Flags.AlphaBlend())
}
