package auxgeom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Pos   mgl32.Vec3
	Color uint32
}

// DrawObjectParams describes one analytic shape. Tessellation is left to the
// backend, which can pick a resolution from the projected Size.
type DrawObjectParams struct {
	World         mgl32.Mat4
	WorldRotation mgl32.Mat3
	Color         uint32
	Size          float32
	Shaded        bool
}

type LineKind uint8

const (
	LinePlain LineKind = iota
	LineThick
)

// LineParams is the side channel of thick line batches: NumThick thickness
// values starting at ThicknessOffs, one per six vertex segment.
type LineParams struct {
	Kind          LineKind
	ThicknessOffs uint32
	NumThick      uint32
}

// PushBufferEntry describes one batch: a vertex and index range for geometry,
// or a DrawObjectParams offset for analytic objects.
type PushBufferEntry struct {
	NumVertices    uint32
	NumIndices     uint32
	VertexOffs     uint32
	IndexOffs      uint32
	DrawParamOffs  uint32
	TransMatrixIdx int
	Flags          RenderFlags
	Line           LineParams
}

func (e *PushBufferEntry) PrimType() PrimType { return e.Flags.PrimType() }

// mergeable reports whether a non indexed primitive with flags and transform
// index can extend this entry instead of starting a new one.
func (e *PushBufferEntry) mergeable(flags RenderFlags, transIdx int) bool {
	if e.Flags != flags || e.TransMatrixIdx != transIdx {
		return false
	}
	switch e.Flags.PrimType() {
	case PrimPoints, PrimLines, PrimTriangles:
		return true
	}
	return false
}

func (e PushBufferEntry) String() string {
	if e.PrimType() == PrimObject {
		return fmt.Sprintf("%v[param=%d flags=%#08x trans=%d]", e.PrimType(), e.DrawParamOffs, uint32(e.Flags), e.TransMatrixIdx)
	}
	return fmt.Sprintf("%v[v=%d+%d i=%d+%d flags=%#08x trans=%d]", e.PrimType(),
		e.VertexOffs, e.NumVertices, e.IndexOffs, e.NumIndices, uint32(e.Flags), e.TransMatrixIdx)
}

// AABB is an axis aligned box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// OBB is an oriented box: half extents H around the local centre C, rotated by M33.
type OBB struct {
	M33 mgl32.Mat3
	H   mgl32.Vec3
	C   mgl32.Vec3
}

func OBBFromAABB(m33 mgl32.Mat3, box AABB) OBB {
	return OBB{
		M33: m33,
		H:   box.Max.Sub(box.Min).Mul(0.5),
		C:   box.Max.Add(box.Min).Mul(0.5),
	}
}

// BoxStyle selects how boxes are coloured.
type BoxStyle int

const (
	// BoxColorEncoded tints the min corner near black and the max corner white.
	BoxColorEncoded BoxStyle = iota
	// BoxShaded flat shades each face with a fixed brightness.
	BoxShaded
)

// StereoState lets the buffer hold back the flush position while the first eye is drawn.
type StereoState interface {
	StereoEnabled() bool
	RenderingFirstEye() bool
}

// Logger is the subset of the application logger used here.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
