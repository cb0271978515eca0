package capture

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/debugdraw/auxgeom"
)

func TestRecorder_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	stats := auxgeom.NewStatsBackend(nil)
	rec, err := NewRecorder(&buf, stats)
	require.NoError(t, err)

	cb := auxgeom.NewCommandBuffer(rec, auxgeom.Options{})
	cb.DrawLine(mgl32.Vec3{}, auxgeom.Red, mgl32.Vec3{1, 0, 0}, auxgeom.Red, 1)
	cb.DrawTriangle(mgl32.Vec3{}, auxgeom.Green, mgl32.Vec3{1, 0, 0}, auxgeom.Green, mgl32.Vec3{0, 1, 0}, auxgeom.Green)
	cb.Flush()
	cb.DrawLine(mgl32.Vec3{}, auxgeom.Blue, mgl32.Vec3{0, 0, 1}, auxgeom.Blue, 4)
	cb.DrawSphere(mgl32.Vec3{1, 2, 3}, 0.5, auxgeom.White, true)
	cb.DrawText(mgl32.Vec3{}, auxgeom.TextOptions{Color: auxgeom.White}, "hello")
	cb.Flush()
	cb.Process()

	require.NoError(t, rec.Err())
	assert.Equal(t, uint64(3), rec.Frames())
	require.NoError(t, rec.Close())
	assert.Equal(t, 2, stats.Stats().Flushes, "flushes are forwarded")

	r, err := NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()
	frames, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, frames, 3)

	first := frames[0]
	assert.Equal(t, KindGeometry, first.Kind)
	assert.Equal(t, 0, first.Begin)
	assert.Equal(t, 2, first.End)
	require.Len(t, first.Entries, 2)
	assert.Len(t, first.Entries[0].Vertices, 2)
	assert.Equal(t, auxgeom.PackColor(auxgeom.Red), first.Entries[0].Vertices[0].Color)
	assert.Equal(t, auxgeom.PrimTriangles, first.Entries[1].RenderFlags().PrimType())

	second := frames[1]
	assert.Equal(t, uint64(1), second.Seq)
	assert.Equal(t, 2, second.Begin)
	assert.Equal(t, 4, second.End)
	require.Len(t, second.Entries, 2)
	assert.Equal(t, []float32{4}, second.Entries[0].Thickness)
	require.NotNil(t, second.Entries[1].Object)
	assert.True(t, second.Entries[1].Object.Shaded)
	assert.Equal(t, first.Snapshot, second.Snapshot)

	text := frames[2]
	assert.Equal(t, KindText, text.Kind)
	require.Len(t, text.Text, 1)
	assert.Equal(t, "hello", text.Text[0].Text)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRecorder_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.auxgeom.msgpack.zst")
	rec, err := Create(path, nil)
	require.NoError(t, err)

	cb := auxgeom.NewCommandBuffer(rec, auxgeom.Options{})
	cb.DrawPoint(mgl32.Vec3{1, 1, 1}, auxgeom.Yellow, 3)
	cb.Flush()
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close(), "close is idempotent")

	cb.DrawPoint(mgl32.Vec3{}, auxgeom.Yellow, 3)
	cb.Flush()
	assert.ErrorIs(t, rec.Err(), ErrClosed)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	frames, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Entries, 1)
	assert.Equal(t, [3]float32{1, 1, 1}, frames[0].Entries[0].Vertices[0].Pos)
}

func TestToMat4(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	assert.Equal(t, m, ToMat4(m[:]))
}
