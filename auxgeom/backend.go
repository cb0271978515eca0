package auxgeom

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

// Backend rasterises flushed geometry. Flush receives the half open entry range
// [begin, end) of data and must not keep data past the call.
type Backend interface {
	Flush(data Packaged, begin, end int, reset bool)
	FlushTextMessages(tm *textmsg.Buffer, reset bool)
}

// Packaged is a read only view of a snapshot handed to a Backend.
// The returned slices alias the snapshot and must not be modified.
type Packaged struct {
	d *RawData
}

func (p Packaged) ID() uuid.UUID                 { return p.d.ID }
func (p Packaged) Vertices() []Vertex            { return p.d.Vertices }
func (p Packaged) Indices() []Index              { return p.d.Indices }
func (p Packaged) Objects() []DrawObjectParams   { return p.d.Objects }
func (p Packaged) PushBuffer() []PushBufferEntry { return p.d.PushBuffer }
func (p Packaged) OrthoMatrices() []mgl32.Mat4   { return p.d.OrthoMatrices }
func (p Packaged) TextMessages() *textmsg.Buffer { return p.d.TextMessages }
func (p Packaged) Len() int                      { return len(p.d.PushBuffer) }
func (p Packaged) SortedPushBuffer(begin, end int) []*PushBufferEntry {
	return p.d.SortedPushBuffer(begin, end)
}

// EntryVertices returns the vertex range of a geometry entry.
func (p Packaged) EntryVertices(e *PushBufferEntry) []Vertex {
	return p.d.Vertices[e.VertexOffs : e.VertexOffs+e.NumVertices]
}

func (p Packaged) EntryIndices(e *PushBufferEntry) []Index {
	return p.d.Indices[e.IndexOffs : e.IndexOffs+e.NumIndices]
}

// Thickness returns the per segment thickness of a thick line entry.
func (p Packaged) Thickness(e *PushBufferEntry) []float32 {
	if e.Line.Kind != LineThick {
		return nil
	}
	return p.d.ThickLines[e.Line.ThicknessOffs : e.Line.ThicknessOffs+e.Line.NumThick]
}

func (p Packaged) Object(e *PushBufferEntry) *DrawObjectParams {
	return &p.d.Objects[e.DrawParamOffs]
}

// OrthoMatrix returns the override projection of an entry, if any.
func (p Packaged) OrthoMatrix(e *PushBufferEntry) (mgl32.Mat4, bool) {
	if e.TransMatrixIdx < 0 || e.TransMatrixIdx >= len(p.d.OrthoMatrices) {
		return mgl32.Mat4{}, false
	}
	return p.d.OrthoMatrices[e.TransMatrixIdx], true
}

// Batch is a run of sorted entries sharing render flags and transform.
type Batch struct {
	Flags          RenderFlags
	TransMatrixIdx int
	Entries        []*PushBufferEntry
}

// Batches groups the sorted entries of [begin, end) into runs a backend can
// draw with a single state setup.
func Batches(data Packaged, begin, end int) []Batch {
	if begin >= end {
		return nil
	}
	sorted := data.SortedPushBuffer(begin, end)
	var out []Batch
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].Flags == sorted[i].Flags && sorted[j].TransMatrixIdx == sorted[i].TransMatrixIdx {
			j++
		}
		out = append(out, Batch{
			Flags:          sorted[i].Flags,
			TransMatrixIdx: sorted[i].TransMatrixIdx,
			Entries:        sorted[i:j:j],
		})
		i = j
	}
	return out
}

// NullBackend drops geometry and clears text messages as a real backend would
// after drawing them.
type NullBackend struct{}

func (NullBackend) Flush(Packaged, int, int, bool) {}

func (NullBackend) FlushTextMessages(tm *textmsg.Buffer, reset bool) {
	tm.Clear(!reset)
}
