package auxgeom

import (
	"cmp"
	"fmt"
	"slices"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

// RawData holds one frame of recorded commands. It is owned by exactly one side
// at a time: the producer while recording, the consumer after a commit.
type RawData struct {
	ID uuid.UUID

	Vertices      []Vertex
	Indices       []Index
	Objects       []DrawObjectParams
	PushBuffer    []PushBufferEntry
	ThickLines    []float32
	OrthoMatrices []mgl32.Mat4
	TextMessages  *textmsg.Buffer

	CurRenderFlags RenderFlags
	CurTransMatIdx int

	used  atomic.Bool
	reads atomic.Int32
}

func newRawData(opts Options) *RawData {
	d := &RawData{
		ID:             uuid.New(),
		Vertices:       make([]Vertex, 0, opts.InitialVertices),
		Indices:        make([]Index, 0, opts.InitialIndices),
		TextMessages:   textmsg.NewBuffer(opts.TextBudget),
		CurRenderFlags: Default3DRenderFlags,
		CurTransMatIdx: -1,
	}
	return d
}

// Reset truncates all buffers, keeping their capacity, and restores the
// default render state. The in-use flag is left alone.
func (d *RawData) Reset() {
	d.Vertices = d.Vertices[:0]
	d.Indices = d.Indices[:0]
	d.Objects = d.Objects[:0]
	d.PushBuffer = d.PushBuffer[:0]
	d.ThickLines = d.ThickLines[:0]
	d.OrthoMatrices = d.OrthoMatrices[:0]
	d.TextMessages.Clear(true)
	d.CurRenderFlags = Default3DRenderFlags
	d.CurTransMatIdx = -1
}

func (d *RawData) freeMemory() {
	d.Vertices = nil
	d.Indices = nil
	d.Objects = nil
	d.PushBuffer = nil
	d.ThickLines = nil
	d.OrthoMatrices = nil
	d.TextMessages.Clear(false)
	d.CurRenderFlags = Default3DRenderFlags
	d.CurTransMatIdx = -1
}

func (d *RawData) IsEmpty() bool { return len(d.PushBuffer) == 0 }

func (d *RawData) SetUsed(used bool) { d.used.Store(used) }
func (d *RawData) IsUsed() bool      { return d.used.Load() }

// Retain sets how many consumer passes will read this snapshot before it can
// be recycled.
func (d *RawData) Retain(frames int) {
	d.reads.Store(int32(max(frames, 1)))
}

// Release records one consumer pass and returns the passes still outstanding.
func (d *RawData) Release() int {
	n := d.reads.Add(-1)
	if n < 0 {
		d.reads.Store(0)
		return 0
	}
	return int(n)
}

func (d *RawData) ReadsLeft() int { return int(d.reads.Load()) }

// SortedPushBuffer returns pointers to the entries in [begin, end) ordered by
// render flags, then transform index. Equal entries keep their append order.
func (d *RawData) SortedPushBuffer(begin, end int) []*PushBufferEntry {
	debugAssert(begin < end && end <= len(d.PushBuffer), "invalid push buffer range [%d, %d) of %d", begin, end, len(d.PushBuffer))
	if begin >= end || end > len(d.PushBuffer) {
		return nil
	}
	out := make([]*PushBufferEntry, 0, end-begin)
	for i := begin; i < end; i++ {
		out = append(out, &d.PushBuffer[i])
	}
	slices.SortStableFunc(out, func(a, b *PushBufferEntry) int {
		if c := cmp.Compare(a.Flags, b.Flags); c != 0 {
			return c
		}
		return cmp.Compare(a.TransMatrixIdx, b.TransMatrixIdx)
	})
	return out
}

// checkRanges verifies every entry stays inside the snapshot's buffers.
func (d *RawData) checkRanges() error {
	for i, e := range d.PushBuffer {
		if e.PrimType() == PrimObject {
			if int(e.DrawParamOffs) >= len(d.Objects) {
				return fmt.Errorf("entry %d: object %d out of range %d", i, e.DrawParamOffs, len(d.Objects))
			}
			continue
		}
		if int(e.VertexOffs+e.NumVertices) > len(d.Vertices) {
			return fmt.Errorf("entry %d: vertices [%d+%d) out of range %d", i, e.VertexOffs, e.NumVertices, len(d.Vertices))
		}
		if int(e.IndexOffs+e.NumIndices) > len(d.Indices) {
			return fmt.Errorf("entry %d: indices [%d+%d) out of range %d", i, e.IndexOffs, e.NumIndices, len(d.Indices))
		}
		if e.Line.Kind == LineThick && int(e.Line.ThicknessOffs+e.Line.NumThick) > len(d.ThickLines) {
			return fmt.Errorf("entry %d: thick lines [%d+%d) out of range %d", i, e.Line.ThicknessOffs, e.Line.NumThick, len(d.ThickLines))
		}
	}
	return nil
}

// MemoryUsage reports retained capacity in bytes.
type MemoryUsage struct {
	Vertices   int
	Indices    int
	Objects    int
	PushBuffer int
	ThickLines int
	Ortho      int
	Text       int
}

func (m MemoryUsage) Total() int {
	return m.Vertices + m.Indices + m.Objects + m.PushBuffer + m.ThickLines + m.Ortho + m.Text
}

func (m *MemoryUsage) Merge(o MemoryUsage) {
	m.Vertices += o.Vertices
	m.Indices += o.Indices
	m.Objects += o.Objects
	m.PushBuffer += o.PushBuffer
	m.ThickLines += o.ThickLines
	m.Ortho += o.Ortho
	m.Text += o.Text
}

func (d *RawData) MemoryUsage() MemoryUsage {
	return MemoryUsage{
		Vertices:   cap(d.Vertices) * int(unsafe.Sizeof(Vertex{})),
		Indices:    cap(d.Indices) * int(unsafe.Sizeof(Index(0))),
		Objects:    cap(d.Objects) * int(unsafe.Sizeof(DrawObjectParams{})),
		PushBuffer: cap(d.PushBuffer) * int(unsafe.Sizeof(PushBufferEntry{})),
		ThickLines: cap(d.ThickLines) * 4,
		Ortho:      cap(d.OrthoMatrices) * int(unsafe.Sizeof(mgl32.Mat4{})),
		Text:       d.TextMessages.Capacity(),
	}
}

// growVertices extends the vertex buffer by n and returns the new region.
// The slice is capacity clipped and valid until the next growing call.
func (d *RawData) growVertices(n int) []Vertex {
	start := len(d.Vertices)
	d.Vertices = slices.Grow(d.Vertices, n)[:start+n]
	return d.Vertices[start : start+n : start+n]
}

func (d *RawData) growIndices(n int) []Index {
	start := len(d.Indices)
	d.Indices = slices.Grow(d.Indices, n)[:start+n]
	return d.Indices[start : start+n : start+n]
}
