package auxgeom

import "sync/atomic"

const readySlots = 2

// MainThreadBuffer triple buffers: the producer records into the current
// snapshot while the render thread reads one of two ready slots.
type MainThreadBuffer struct {
	*CommandBuffer
	ready  [readySlots]atomic.Pointer[RawData]
	cursor atomic.Int32
}

func NewMainThreadBuffer(backend Backend, opts Options) *MainThreadBuffer {
	m := &MainThreadBuffer{CommandBuffer: newCommandBuffer(backend, opts)}
	m.cur = m.newSnapshot()
	for i := range m.ready {
		m.ready[i].Store(m.newSnapshot())
	}
	return m
}

// Commit flushes the whole frame and rotates the current snapshot into the
// next ready slot, taking back the snapshot that slot held.
func (m *MainThreadBuffer) Commit(frames int) {
	m.cur.SetUsed(true)
	m.cur.Retain(frames)
	m.FlushRange(true)

	next := (m.cursor.Load() + 1) % readySlots
	m.cur = m.ready[next].Swap(m.cur)
	m.cursor.Store(next)

	m.lastFlushPos = 0
	m.cur.Reset()
}

// Process consumes the latest committed snapshot.
func (m *MainThreadBuffer) Process() {
	m.ProcessSnapshot(m.Ready())
}

// ProcessSnapshot consumes d, a snapshot taken from Ready on the producing
// thread before it commits again. The render thread calls it with the
// snapshot handed over at the end of the frame, so a later Commit cannot move
// it onto the next frame.
func (m *MainThreadBuffer) ProcessSnapshot(d *RawData) {
	if d == nil {
		return
	}
	m.backend.FlushTextMessages(d.TextMessages, true)
	d.SetUsed(false)
}

// Ready returns the snapshot the render thread processes next.
func (m *MainThreadBuffer) Ready() *RawData {
	return m.ready[m.cursor.Load()].Load()
}

// WorkerThreadBuffer hands whole snapshots from a worker to the render thread
// through a single slot mailbox. Geometry is flushed by the consumer only.
type WorkerThreadBuffer struct {
	*CommandBuffer
	mailbox   Mailbox[RawData]
	processed *RawData
}

func NewWorkerThreadBuffer(backend Backend, opts Options) *WorkerThreadBuffer {
	w := &WorkerThreadBuffer{CommandBuffer: newCommandBuffer(backend, opts)}
	w.cur = w.newSnapshot()
	return w
}

func (w *WorkerThreadBuffer) Flush()              {}
func (w *WorkerThreadBuffer) FlushRange(bool)     {}
func (w *WorkerThreadBuffer) Processed() *RawData { return w.processed }

// Commit publishes the current snapshot. A snapshot the consumer never picked
// up comes back and is recorded into again; otherwise a free pooled snapshot
// is reused or a new one allocated.
func (w *WorkerThreadBuffer) Commit(frames int) {
	w.cur.SetUsed(true)
	w.cur.Retain(frames)

	next := w.mailbox.Swap(w.cur)
	if next == nil {
		for _, d := range w.pool {
			if !d.IsUsed() {
				next = d
				break
			}
		}
	}
	if next == nil {
		next = w.newSnapshot()
	}
	w.cur = next

	w.lastFlushPos = 0
	w.cur.Reset()
}

// Process runs on the consumer. The last processed snapshot stays alive until
// a newer one arrives or its reads run out.
func (w *WorkerThreadBuffer) Process() {
	if d := w.mailbox.Take(); d != nil {
		if w.processed != nil {
			w.processed.SetUsed(false)
		}
		w.processed = d
	}
	d := w.processed
	if d == nil {
		return
	}
	if !d.IsEmpty() {
		w.backend.Flush(Packaged{d}, 0, len(d.PushBuffer), false)
	}
	w.backend.FlushTextMessages(d.TextMessages, false)
	if d.Release() == 0 {
		d.SetUsed(false)
		w.processed = nil
	}
}
