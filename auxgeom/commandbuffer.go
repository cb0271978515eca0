// Package auxgeom records immediate mode debug geometry (points, lines,
// triangles, boxes, analytic shapes and text) into per frame snapshots and
// hands them from the producing thread to a rendering Backend.
package auxgeom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a command buffer and the snapshots it allocates.
type Options struct {
	InitialVertices int
	InitialIndices  int
	TextBudget      int
	Stereo          StereoState
	Logger          Logger
}

// AuxGeom is implemented by every buffering variant.
type AuxGeom interface {
	Drawer
	Flush()
	Commit(frames int)
	Process()
}

// CommandBuffer records into its current snapshot and flushes synchronously.
// It is the single buffered variant: Commit flushes in place and Process
// recycles the same snapshot.
type CommandBuffer struct {
	backend      Backend
	opts         Options
	log          Logger
	cur          *RawData
	pool         []*RawData
	lastFlushPos int
}

func NewCommandBuffer(backend Backend, opts Options) *CommandBuffer {
	cb := newCommandBuffer(backend, opts)
	cb.cur = cb.newSnapshot()
	return cb
}

func newCommandBuffer(backend Backend, opts Options) *CommandBuffer {
	if backend == nil {
		backend = NullBackend{}
	}
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &CommandBuffer{backend: backend, opts: opts, log: log}
}

// newSnapshot allocates a snapshot and adds it to the pool. Producer only.
func (cb *CommandBuffer) newSnapshot() *RawData {
	d := newRawData(cb.opts)
	cb.pool = append(cb.pool, d)
	cb.log.Debugf("auxgeom: allocated snapshot %s (pool size %d)", d.ID, len(cb.pool))
	return d
}

// Current returns the snapshot being recorded.
func (cb *CommandBuffer) Current() *RawData { return cb.cur }

func (cb *CommandBuffer) PoolSize() int { return len(cb.pool) }

func (cb *CommandBuffer) LastFlushPos() int { return cb.lastFlushPos }

func (cb *CommandBuffer) curFlushPos() int { return len(cb.cur.PushBuffer) }

// SetRenderFlags sets the public render state used by subsequent calls.
func (cb *CommandBuffer) SetRenderFlags(flags RenderFlags) {
	debugAssert(flags&^PublicParamsMask == 0, "render flags %#08x carry private bits", uint32(flags))
	cb.cur.CurRenderFlags = flags & PublicParamsMask
}

func (cb *CommandBuffer) RenderFlags() RenderFlags { return cb.cur.CurRenderFlags }

// SetOrthoMode pushes m as the projection override for subsequent calls, or
// drops the override when enable is false.
func (cb *CommandBuffer) SetOrthoMode(enable bool, m mgl32.Mat4) {
	d := cb.cur
	if enable {
		d.CurTransMatIdx = len(d.OrthoMatrices)
		d.OrthoMatrices = append(d.OrthoMatrices, m)
		return
	}
	d.CurTransMatIdx = -1
}

// addPrimitive reserves n vertices, merging into the previous entry when it
// is a matching non indexed list that has not been flushed yet.
func (cb *CommandBuffer) addPrimitive(n int, flags RenderFlags) ([]Vertex, *PushBufferEntry) {
	d := cb.cur
	offs := len(d.Vertices)
	v := d.growVertices(n)
	if last := len(d.PushBuffer) - 1; last >= cb.lastFlushPos && last >= 0 && d.PushBuffer[last].mergeable(flags, d.CurTransMatIdx) {
		e := &d.PushBuffer[last]
		e.NumVertices += uint32(n)
		return v, e
	}
	d.PushBuffer = append(d.PushBuffer, PushBufferEntry{
		NumVertices:    uint32(n),
		VertexOffs:     uint32(offs),
		TransMatrixIdx: d.CurTransMatIdx,
		Flags:          flags,
	})
	return v, &d.PushBuffer[len(d.PushBuffer)-1]
}

// addIndexedPrimitive reserves nv vertices and ni indices in a new entry.
// Indices are relative to the entry's first vertex. It reserves nothing and
// returns false when nv vertices cannot be addressed by an Index.
func (cb *CommandBuffer) addIndexedPrimitive(nv, ni int, flags RenderFlags) ([]Vertex, []Index, bool) {
	fits := uint64(nv) <= uint64(MaxIndex)+1
	debugAssert(fits, "%d vertices exceed the index width", nv)
	if !fits {
		return nil, nil, false
	}
	d := cb.cur
	vOffs, iOffs := len(d.Vertices), len(d.Indices)
	v := d.growVertices(nv)
	idx := d.growIndices(ni)
	d.PushBuffer = append(d.PushBuffer, PushBufferEntry{
		NumVertices:    uint32(nv),
		NumIndices:     uint32(ni),
		VertexOffs:     uint32(vOffs),
		IndexOffs:      uint32(iOffs),
		TransMatrixIdx: d.CurTransMatIdx,
		Flags:          flags,
	})
	return v, idx, true
}

func (cb *CommandBuffer) addObject(flags RenderFlags) *DrawObjectParams {
	d := cb.cur
	d.Objects = append(d.Objects, DrawObjectParams{})
	d.PushBuffer = append(d.PushBuffer, PushBufferEntry{
		DrawParamOffs:  uint32(len(d.Objects) - 1),
		TransMatrixIdx: d.CurTransMatIdx,
		Flags:          flags,
	})
	return &d.Objects[len(d.Objects)-1]
}

// Flush hands the entries recorded since the previous flush to the backend.
func (cb *CommandBuffer) Flush() {
	cb.FlushRange(false)
}

// FlushRange flushes [lastFlushPos, len) when new entries exist or reset is set.
func (cb *CommandBuffer) FlushRange(reset bool) {
	last, cur := cb.lastFlushPos, cb.curFlushPos()
	if last < cur || reset {
		cb.updateLastFlushPos()
		cb.backend.Flush(Packaged{cb.cur}, last, cur, reset)
	}
}

// updateLastFlushPos holds the position while the first stereo eye is drawn
// so the second eye receives the same range.
func (cb *CommandBuffer) updateLastFlushPos() {
	if s := cb.opts.Stereo; s != nil && s.StereoEnabled() && s.RenderingFirstEye() {
		return
	}
	cb.lastFlushPos = cb.curFlushPos()
}

func (cb *CommandBuffer) Commit(frames int) {
	cb.Flush()
}

func (cb *CommandBuffer) Process() {
	cb.backend.FlushTextMessages(cb.cur.TextMessages, true)
	cb.lastFlushPos = 0
	cb.cur.Reset()
}

// FreeMemory releases the capacity of every pooled snapshot.
func (cb *CommandBuffer) FreeMemory() {
	for _, d := range cb.pool {
		d.freeMemory()
	}
	cb.lastFlushPos = 0
}

func (cb *CommandBuffer) MemoryUsage() MemoryUsage {
	var m MemoryUsage
	for _, d := range cb.pool {
		m.Merge(d.MemoryUsage())
	}
	return m
}
