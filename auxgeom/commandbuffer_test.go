package auxgeom

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBuffer_MergesSameStyleLines(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	const n = 10

	var want []mgl32.Vec3
	for i := 0; i < n; i++ {
		a := mgl32.Vec3{float32(i), 0, 0}
		b := mgl32.Vec3{float32(i), 1, 0}
		cb.DrawLine(a, White, b, White, 1)
		want = append(want, a, b)
	}

	d := cb.Current()
	require.Len(t, d.PushBuffer, 1)
	assert.Equal(t, uint32(2*n), d.PushBuffer[0].NumVertices)
	assert.Equal(t, uint32(0), d.PushBuffer[0].NumIndices)
	require.Len(t, d.Vertices, 2*n)
	for i, v := range d.Vertices {
		assert.Equal(t, want[i], v.Pos)
	}
}

func TestCommandBuffer_MergeNonInterference(t *testing.T) {
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}

	cb := NewCommandBuffer(nil, Options{})
	cb.DrawLine(a, White, b, White, 1)
	cb.SetRenderFlags(Default3DRenderFlags.WithDepthTest(DepthTestOff))
	cb.DrawLine(a, White, b, White, 1)
	cb.SetRenderFlags(Default3DRenderFlags)
	cb.DrawLine(a, White, b, White, 1)
	assert.Len(t, cb.Current().PushBuffer, 3, "different flags must split entries")

	cb = NewCommandBuffer(nil, Options{})
	cb.DrawLine(a, White, b, White, 1)
	cb.SetOrthoMode(true, mgl32.Ident4())
	cb.DrawLine(a, White, b, White, 1)
	cb.SetOrthoMode(false, mgl32.Mat4{})
	cb.DrawLine(a, White, b, White, 1)
	assert.Len(t, cb.Current().PushBuffer, 3, "different transforms must split entries")
}

func TestCommandBuffer_IndexedAndObjectsNeverMerge(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	pts := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}

	cb.DrawPolyline(pts, true, White, 1)
	cb.DrawPolyline(pts, true, White, 1)
	cb.DrawSphere(mgl32.Vec3{}, 1, White, false)
	cb.DrawSphere(mgl32.Vec3{}, 1, White, false)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 4)
	assert.Equal(t, uint32(3), d.PushBuffer[1].VertexOffs)
	assert.Equal(t, uint32(6), d.PushBuffer[1].IndexOffs)
	assert.Equal(t, uint32(1), d.PushBuffer[3].DrawParamOffs)
	assert.Equal(t, []Index{0, 1, 1, 2, 2, 0}, d.Indices[:6])
}

func TestCommandBuffer_LineThenTriangle(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	c := RGBA(10, 20, 30, 255)

	cb.DrawLine(mgl32.Vec3{0, 0, 0}, c, mgl32.Vec3{1, 0, 0}, c, 1)
	cb.DrawTriangle(mgl32.Vec3{0, 0, 0}, c, mgl32.Vec3{1, 0, 0}, c, mgl32.Vec3{0, 1, 0}, c)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 2)
	assert.Equal(t, PrimLines, d.PushBuffer[0].PrimType())
	assert.Equal(t, PrimTriangles, d.PushBuffer[1].PrimType())
	assert.Len(t, d.Vertices, 5)
	assert.Empty(t, d.Indices)
}

func TestCommandBuffer_RangeInvariant(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{InitialVertices: 4})
	rng := rand.New(rand.NewSource(7))
	vec := func() mgl32.Vec3 { return mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()} }

	calls := []func(){
		func() { cb.DrawPoint(vec(), White, 2) },
		func() { cb.DrawLine(vec(), White, vec(), Red, 1) },
		func() { cb.DrawLine(vec(), White, vec(), Red, 4) },
		func() { cb.DrawLines([]mgl32.Vec3{vec(), vec(), vec(), vec()}, Green, 1) },
		func() { cb.DrawPolyline([]mgl32.Vec3{vec(), vec(), vec()}, rng.Intn(2) == 0, Blue, 1) },
		func() { cb.DrawTriangles([]mgl32.Vec3{vec(), vec(), vec()}, Yellow) },
		func() { cb.DrawTrianglesIndexed([]mgl32.Vec3{vec(), vec(), vec()}, []Index{0, 1, 2}, Yellow) },
		func() { cb.DrawAABB(AABB{Min: vec(), Max: vec().Add(mgl32.Vec3{1, 1, 1})}, rng.Intn(2) == 0, Red, BoxStyle(rng.Intn(2))) },
		func() { cb.DrawSphere(vec(), 1, RGBA(1, 2, 3, 128), true) },
		func() { cb.SetRenderFlags(Default3DRenderFlags.WithFillMode(FillWireframe)) },
		func() { cb.SetRenderFlags(Default3DRenderFlags) },
	}

	for i := 0; i < 500; i++ {
		calls[rng.Intn(len(calls))]()
		require.NoError(t, cb.Current().checkRanges(), "after call %d", i)
	}
}

func TestCommandBuffer_Reset(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	cb.SetRenderFlags(Default2DRenderFlags)
	cb.SetOrthoMode(true, mgl32.Ident4())
	cb.DrawLine(mgl32.Vec3{}, White, mgl32.Vec3{1, 1, 1}, White, 3)
	cb.DrawPolyline([]mgl32.Vec3{{}, {1, 0, 0}}, false, White, 1)
	cb.DrawSphere(mgl32.Vec3{}, 1, White, false)
	cb.Draw2DLabel(10, 10, 1, White, false, "fps %d", 60)

	d := cb.Current()
	d.SetUsed(true)
	vcap := cap(d.Vertices)
	d.Reset()

	assert.Empty(t, d.PushBuffer)
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Indices)
	assert.Empty(t, d.Objects)
	assert.Empty(t, d.ThickLines)
	assert.Empty(t, d.OrthoMatrices)
	assert.True(t, d.TextMessages.Empty())
	assert.Equal(t, Default3DRenderFlags, d.CurRenderFlags)
	assert.Equal(t, -1, d.CurTransMatIdx)
	assert.Equal(t, vcap, cap(d.Vertices), "capacity is retained")
	assert.True(t, d.IsUsed(), "reset leaves the in-use flag alone")

	d.Reset()
	assert.Empty(t, d.PushBuffer)
}

func TestCommandBuffer_IncrementalFlushCoverage(t *testing.T) {
	rec := &recordingBackend{}
	cb := NewCommandBuffer(rec, Options{})
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}

	cb.DrawPolyline([]mgl32.Vec3{a, b}, false, White, 1)
	cb.DrawPolyline([]mgl32.Vec3{a, b}, false, White, 1)
	cb.Flush()
	cb.Flush() // nothing new
	cb.DrawSphere(a, 1, White, false)
	cb.Flush()
	cb.DrawPolyline([]mgl32.Vec3{a, b}, false, White, 1)
	cb.DrawPolyline([]mgl32.Vec3{a, b}, false, White, 1)
	cb.DrawPolyline([]mgl32.Vec3{a, b}, false, White, 1)
	cb.Flush()

	require.Len(t, rec.flushes, 3)
	next := 0
	for _, f := range rec.flushes {
		assert.Equal(t, next, f.begin, "ranges are contiguous")
		assert.Less(t, f.begin, f.end)
		next = f.end
	}
	assert.Equal(t, len(cb.Current().PushBuffer), next)
	assert.Equal(t, next, cb.LastFlushPos())
}

func TestCommandBuffer_NoMergeIntoFlushedEntry(t *testing.T) {
	rec := &recordingBackend{}
	cb := NewCommandBuffer(rec, Options{})
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}

	cb.DrawLine(a, White, b, White, 1)
	cb.Flush()
	cb.DrawLine(b, White, a, White, 1)
	cb.DrawLine(a, White, b, White, 1)
	cb.Flush()

	require.Len(t, rec.flushes, 2)
	received := 0
	for _, f := range rec.flushes {
		for _, e := range f.entries {
			received += int(e.NumVertices)
		}
	}
	assert.Equal(t, len(cb.Current().Vertices), received, "every recorded vertex reaches the backend")
	require.Len(t, cb.Current().PushBuffer, 2)
	assert.Equal(t, uint32(4), cb.Current().PushBuffer[1].NumVertices, "lines after the flush still merge with each other")
}

func TestCommandBuffer_ResetFlushForcesCall(t *testing.T) {
	rec := &recordingBackend{}
	cb := NewCommandBuffer(rec, Options{})

	cb.FlushRange(true)
	require.Len(t, rec.flushes, 1)
	assert.True(t, rec.flushes[0].reset)
	assert.Equal(t, 0, rec.flushes[0].begin)
	assert.Equal(t, 0, rec.flushes[0].end)
}

type stereo struct{ firstEye bool }

func (s *stereo) StereoEnabled() bool     { return true }
func (s *stereo) RenderingFirstEye() bool { return s.firstEye }

func TestCommandBuffer_StereoFirstEyeResubmits(t *testing.T) {
	rec := &recordingBackend{}
	st := &stereo{firstEye: true}
	cb := NewCommandBuffer(rec, Options{Stereo: st})

	cb.DrawSphere(mgl32.Vec3{}, 1, White, false)
	cb.Flush()
	assert.Equal(t, 0, cb.LastFlushPos(), "first eye holds the flush position")

	st.firstEye = false
	cb.Flush()
	assert.Equal(t, 1, cb.LastFlushPos())

	require.Len(t, rec.flushes, 2)
	assert.Equal(t, [2]int{0, 1}, [2]int{rec.flushes[0].begin, rec.flushes[0].end})
	assert.Equal(t, [2]int{0, 1}, [2]int{rec.flushes[1].begin, rec.flushes[1].end})
}

func TestCommandBuffer_SortedPushBuffer(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	line := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}}

	cb.SetOrthoMode(true, mgl32.Ident4())
	cb.DrawPolyline(line, false, White, 1) // 0: lines idx, trans 0
	cb.SetOrthoMode(false, mgl32.Mat4{})
	cb.DrawSphere(mgl32.Vec3{}, 1, White, false) // 1: object
	cb.DrawPolyline(line, false, White, 1)       // 2: lines idx, trans -1
	cb.DrawPolyline(line, false, White, 1)       // 3: lines idx, trans -1
	cb.SetRenderFlags(Default2DRenderFlags)
	cb.DrawPolyline(line, false, White, 1) // 4: 2D lines idx

	d := cb.Current()
	sorted := d.SortedPushBuffer(0, len(d.PushBuffer))
	require.Len(t, sorted, len(d.PushBuffer))

	want := []*PushBufferEntry{&d.PushBuffer[2], &d.PushBuffer[3], &d.PushBuffer[0], &d.PushBuffer[1], &d.PushBuffer[4]}
	for i := range want {
		assert.Same(t, want[i], sorted[i], "position %d", i)
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		assert.True(t, prev.Flags < cur.Flags || (prev.Flags == cur.Flags && prev.TransMatrixIdx <= cur.TransMatrixIdx))
	}

	sub := d.SortedPushBuffer(1, 3)
	require.Len(t, sub, 2)
	assert.Same(t, &d.PushBuffer[2], sub[0])
	assert.Same(t, &d.PushBuffer[1], sub[1])
}

func TestCommandBuffer_ThickLinesUseSideChannel(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	p0, p1 := mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6}

	cb.DrawLine(p0, Red, p1, Blue, 2.5)
	cb.DrawLines([]mgl32.Vec3{p0, p1, p1, p0}, Green, 4)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 1, "colours do not affect flags, all segments merge")
	e := d.PushBuffer[0]
	assert.True(t, e.Flags.IsThickLine())
	assert.Equal(t, LineThick, e.Line.Kind)
	assert.Equal(t, uint32(0), e.Line.ThicknessOffs)
	assert.Equal(t, uint32(3), e.Line.NumThick)
	assert.Equal(t, uint32(18), e.NumVertices)
	assert.Equal(t, []float32{2.5, 4, 4}, d.ThickLines)

	cb.DrawLine(p0, RGBA(0, 0, 0, 100), p1, Blue, 2)
	require.Len(t, d.PushBuffer, 2)
	e2 := d.PushBuffer[1]
	assert.Equal(t, uint32(3), e2.Line.ThicknessOffs)
	assert.Equal(t, uint32(1), e2.Line.NumThick)

	assert.Equal(t, p0, d.Vertices[0].Pos)
	assert.Equal(t, PackColor(Red), d.Vertices[0].Color)
	assert.Equal(t, p1, d.Vertices[1].Pos)
	assert.Equal(t, PackColor(Blue), d.Vertices[1].Color)
	assert.NotEqual(t, mgl32.Vec3{2.5, 0, 0}, d.Vertices[2].Pos, "thickness is not stored in a vertex")
}

func TestCommandBuffer_AlphaFlags(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	a, b := mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}

	cb.DrawLine(a, RGBA(255, 0, 0, 255), b, RGBA(255, 0, 0, 255), 1)
	cb.DrawLine(a, RGBA(255, 0, 0, 0), b, RGBA(255, 0, 0, 0), 1)
	cb.DrawLine(a, RGBA(255, 0, 0, 128), b, RGBA(255, 0, 0, 128), 1)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 2, "opaque and invisible share the cheap path")
	assert.Equal(t, AlphaNone, d.PushBuffer[0].Flags.AlphaBlend())
	assert.Equal(t, AlphaBlended, d.PushBuffer[1].Flags.AlphaBlend())
}

func TestCommandBuffer_SetRenderFlagsKeepsPublicBits(t *testing.T) {
	if debugChecks {
		t.Skip("private bits panic in debug builds")
	}
	cb := NewCommandBuffer(nil, Options{})
	cb.SetRenderFlags(Default3DRenderFlags | RenderFlags(PrimObject)<<primTypeShift | 7)
	assert.Equal(t, Default3DRenderFlags, cb.RenderFlags())
}

func TestCommandBuffer_DropsMalformedInput(t *testing.T) {
	if debugChecks {
		t.Skip("malformed input panics in debug builds")
	}
	cb := NewCommandBuffer(nil, Options{})
	cb.DrawLines([]mgl32.Vec3{{}, {}, {}}, White, 1)
	cb.DrawPolyline([]mgl32.Vec3{{}}, false, White, 1)
	cb.DrawPolyline([]mgl32.Vec3{{}, {}}, true, White, 1)
	cb.DrawTriangles([]mgl32.Vec3{{}, {}}, White)
	cb.DrawTrianglesIndexed([]mgl32.Vec3{{}, {}, {}}, []Index{0, 1}, White)

	assert.Empty(t, cb.Current().PushBuffer)
	assert.Empty(t, cb.Current().Vertices)
}

func TestCommandBuffer_PointSizeTag(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{})
	cb.DrawPoints([]mgl32.Vec3{{}, {1, 1, 1}}, White, 4)
	cb.DrawPoint(mgl32.Vec3{2, 2, 2}, White, 4)
	cb.DrawPoint(mgl32.Vec3{3, 3, 3}, White, 8)

	d := cb.Current()
	require.Len(t, d.PushBuffer, 2)
	assert.Equal(t, uint8(4), d.PushBuffer[0].Flags.PointSize())
	assert.Equal(t, uint32(3), d.PushBuffer[0].NumVertices)
	assert.Equal(t, uint8(8), d.PushBuffer[1].Flags.PointSize())
}

func TestCommandBuffer_FreeMemory(t *testing.T) {
	cb := NewCommandBuffer(nil, Options{InitialVertices: 1024})
	cb.DrawPolyline([]mgl32.Vec3{{}, {1, 0, 0}}, false, White, 1)
	assert.Positive(t, cb.MemoryUsage().Total())

	cb.FreeMemory()
	assert.Zero(t, cb.MemoryUsage().Total())
	assert.Empty(t, cb.Current().PushBuffer)

	cb.DrawSphere(mgl32.Vec3{}, 1, White, false)
	assert.Len(t, cb.Current().PushBuffer, 1)
}
