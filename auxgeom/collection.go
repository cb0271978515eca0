package auxgeom

import (
	"sync"

	"github.com/google/uuid"
)

// Collection owns the main thread buffer and one worker buffer per job.
// Worker buffers are created on first use and live until FreeMemory.
type Collection struct {
	backend Backend
	opts    Options
	main    *MainThreadBuffer

	mu      sync.RWMutex
	workers map[uuid.UUID]*WorkerThreadBuffer
	order   []uuid.UUID
}

func NewCollection(backend Backend, opts Options) *Collection {
	return &Collection{
		backend: backend,
		opts:    opts,
		main:    NewMainThreadBuffer(backend, opts),
		workers: make(map[uuid.UUID]*WorkerThreadBuffer),
	}
}

func (c *Collection) Main() *MainThreadBuffer { return c.main }

// Get returns the buffer of job, creating it on first use.
func (c *Collection) Get(job uuid.UUID) *WorkerThreadBuffer {
	c.mu.RLock()
	w, ok := c.workers[job]
	c.mu.RUnlock()
	if ok {
		return w
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.workers[job]; ok {
		return w
	}
	w = NewWorkerThreadBuffer(c.backend, c.opts)
	c.workers[job] = w
	c.order = append(c.order, job)
	return w
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.workers)
}

func (c *Collection) snapshotWorkers() []*WorkerThreadBuffer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*WorkerThreadBuffer, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.workers[id])
	}
	return out
}

// Process consumes the main buffer and every worker buffer in creation order.
// Render thread only.
func (c *Collection) Process() {
	c.ProcessFrame(c.main.Ready())
}

// ProcessFrame is Process with the main buffer's snapshot resolved by the
// caller.
func (c *Collection) ProcessFrame(main *RawData) {
	c.main.ProcessSnapshot(main)
	for _, w := range c.snapshotWorkers() {
		w.Process()
	}
}

// FreeMemory drops the worker buffers and releases the main buffer's capacity.
// No producer or consumer may be running.
func (c *Collection) FreeMemory() {
	c.main.FreeMemory()
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.workers)
	c.order = nil
}

func (c *Collection) MemoryUsage() MemoryUsage {
	m := c.main.MemoryUsage()
	for _, w := range c.snapshotWorkers() {
		m.Merge(w.MemoryUsage())
	}
	return m
}
