package debugdraw

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gekko3d/debugdraw/auxgeom"
	"github.com/gekko3d/debugdraw/auxgeom/capture"
	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

var (
	ErrNoBackend     = errors.New("debugdraw: no backend")
	ErrCaptureClosed = capture.ErrClosed
)

// mainJob keys the main drawer in worker buffering mode.
var mainJob = uuid.NewSHA1(uuid.NameSpaceOID, []byte("debugdraw/main"))

// AuxGeom is the debug geometry resource. Systems draw through Drawer during
// the frame; the module commits in PostRender and consumes in Finale, either
// inline or on a render goroutine running one frame behind.
type AuxGeom struct {
	config     AuxGeomConfig
	collection *auxgeom.Collection
	base       *auxgeom.CommandBuffer
	draw       auxgeom.AuxGeom
	stats      *auxgeom.StatsBackend
	recorder   *capture.Recorder
	enabled    atomic.Bool
	render     *renderThread
	log        Logger
}

// NewAuxGeom builds the buffers for cfg in front of backend. When a capture
// path is configured every flush is also recorded there.
func NewAuxGeom(cfg Config, backend auxgeom.Backend, log Logger) (*AuxGeom, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NewNopLogger()
	}

	ag := &AuxGeom{config: cfg.AuxGeom, log: log}
	ag.enabled.Store(cfg.AuxGeom.Enabled)

	if cfg.Capture.Path != "" {
		rec, err := capture.Create(cfg.Capture.Path, backend)
		if err != nil {
			return nil, err
		}
		ag.recorder = rec
		backend = rec
	}
	ag.stats = auxgeom.NewStatsBackend(backend)
	gated := gateBackend{enabled: &ag.enabled, next: ag.stats}

	opts := auxgeom.Options{
		InitialVertices: cfg.AuxGeom.InitialVertices,
		InitialIndices:  cfg.AuxGeom.InitialIndices,
		TextBudget:      cfg.AuxGeom.TextBudgetBytes,
		Logger:          log,
	}
	ag.collection = auxgeom.NewCollection(gated, opts)
	switch cfg.AuxGeom.Buffering {
	case BufferingMain:
		ag.draw = ag.collection.Main()
	case BufferingWorker:
		ag.draw = ag.collection.Get(mainJob)
	case BufferingBase:
		ag.base = auxgeom.NewCommandBuffer(gated, opts)
		ag.draw = ag.base
	}
	log.Debugf("auxgeom: %s buffering, enabled=%v", cfg.AuxGeom.Buffering, cfg.AuxGeom.Enabled)
	return ag, nil
}

// Drawer records into the main thread buffer. Main thread only.
func (ag *AuxGeom) Drawer() auxgeom.Drawer { return ag.draw }

// Worker returns the buffer of a job. Each job must be drawn and committed
// from one goroutine at a time.
func (ag *AuxGeom) Worker(job uuid.UUID) *auxgeom.WorkerThreadBuffer {
	return ag.collection.Get(job)
}

// NewJob registers a fresh worker buffer.
func (ag *AuxGeom) NewJob() (uuid.UUID, *auxgeom.WorkerThreadBuffer) {
	job := uuid.New()
	return job, ag.collection.Get(job)
}

func (ag *AuxGeom) Config() AuxGeomConfig { return ag.config }

func (ag *AuxGeom) KeepAliveFrames() int { return ag.config.KeepAliveFrames }

func (ag *AuxGeom) Enabled() bool { return ag.enabled.Load() }

// SetEnabled gates the backend. Disabled geometry is still recorded and
// recycled, it is just never drawn.
func (ag *AuxGeom) SetEnabled(enabled bool) {
	if ag.enabled.Swap(enabled) != enabled {
		ag.log.Infof("auxgeom: enabled=%v", enabled)
	}
}

// Apply takes the settings of cfg that can change at runtime.
func (ag *AuxGeom) Apply(cfg Config) {
	ag.SetEnabled(cfg.AuxGeom.Enabled)
	if cfg.AuxGeom.KeepAliveFrames >= 1 {
		ag.config.KeepAliveFrames = cfg.AuxGeom.KeepAliveFrames
	}
	if cfg.AuxGeom.Buffering != ag.config.Buffering {
		ag.log.Warnf("auxgeom: buffering change to %q needs a restart", cfg.AuxGeom.Buffering)
	}
}

func (ag *AuxGeom) Stats() auxgeom.FlushStats { return ag.stats.Stats() }

// ResetStats returns the stats gathered since the last reset.
func (ag *AuxGeom) ResetStats() auxgeom.FlushStats { return ag.stats.Reset() }

// Commit hands the frame recorded on the main thread over for rendering.
func (ag *AuxGeom) Commit() {
	ag.draw.Commit(ag.config.KeepAliveFrames)
}

// Process consumes committed geometry inline.
func (ag *AuxGeom) Process() {
	ag.process(ag.collection.Main().Ready())
}

func (ag *AuxGeom) process(ready *auxgeom.RawData) {
	if ag.base != nil {
		ag.base.Process()
	}
	ag.collection.ProcessFrame(ready)
}

// EndFrame processes inline or hands the committed snapshot to the render
// goroutine.
func (ag *AuxGeom) EndFrame() {
	if ag.render != nil {
		ag.render.frame(ag.collection.Main().Ready())
		return
	}
	ag.Process()
}

// StartRenderThread moves Process onto its own goroutine. Base buffering
// flushes and resets on the producing thread, so it stays inline.
func (ag *AuxGeom) StartRenderThread() bool {
	if ag.render != nil {
		return true
	}
	if ag.base != nil {
		ag.log.Warnf("auxgeom: base buffering cannot use a render thread")
		return false
	}
	ag.render = startRenderThread(ag.process)
	return true
}

// Sync waits until the render goroutine is idle.
func (ag *AuxGeom) Sync() {
	if ag.render != nil {
		ag.render.sync()
	}
}

func (ag *AuxGeom) MemoryUsage() auxgeom.MemoryUsage {
	ag.Sync()
	m := ag.collection.MemoryUsage()
	if ag.base != nil {
		m.Merge(ag.base.MemoryUsage())
	}
	return m
}

func (ag *AuxGeom) FreeMemory() {
	ag.Sync()
	ag.collection.FreeMemory()
	if ag.base != nil {
		ag.base.FreeMemory()
	}
}

// Close stops the render goroutine and finishes the capture file.
func (ag *AuxGeom) Close() error {
	var errs []error
	if ag.render != nil {
		errs = append(errs, ag.render.stop())
		ag.render = nil
	}
	if ag.recorder != nil {
		if err := ag.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("auxgeom: closing capture: %w", err))
		}
	}
	return errors.Join(errs...)
}

type gateBackend struct {
	enabled *atomic.Bool
	next    auxgeom.Backend
}

func (g gateBackend) Flush(data auxgeom.Packaged, begin, end int, reset bool) {
	if g.enabled.Load() {
		g.next.Flush(data, begin, end, reset)
	}
}

func (g gateBackend) FlushTextMessages(tm *textmsg.Buffer, reset bool) {
	if g.enabled.Load() {
		g.next.FlushTextMessages(tm, reset)
		return
	}
	tm.Clear(!reset)
}

type renderThread struct {
	kick   chan *auxgeom.RawData
	idle   chan struct{}
	cancel context.CancelFunc
	group  *errgroup.Group
}

func startRenderThread(process func(*auxgeom.RawData)) *renderThread {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	rt := &renderThread{
		kick:   make(chan *auxgeom.RawData),
		idle:   make(chan struct{}, 1),
		cancel: cancel,
		group:  g,
	}
	rt.idle <- struct{}{}
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ready := <-rt.kick:
				process(ready)
				rt.idle <- struct{}{}
			}
		}
	})
	return rt
}

// frame waits for the previous frame to be consumed and hands over the next.
func (rt *renderThread) frame(ready *auxgeom.RawData) {
	<-rt.idle
	rt.kick <- ready
}

func (rt *renderThread) sync() {
	<-rt.idle
	rt.idle <- struct{}{}
}

func (rt *renderThread) stop() error {
	rt.sync()
	rt.cancel()
	return rt.group.Wait()
}

// AuxGeomModule installs the AuxGeom resource and its commit and process
// systems. With ConfigPath set the file is loaded at install and watched for
// changes; Config is used otherwise, or DefaultConfig when nil.
type AuxGeomModule struct {
	Config       *Config
	ConfigPath   string
	Backend      auxgeom.Backend
	RenderThread bool
}

// configUpdate carries a reloaded config from the watcher to the main thread.
type configUpdate struct {
	pending atomic.Pointer[Config]
}

func (m AuxGeomModule) Install(app *App, cmd *Commands) {
	log := cmd.Logger()

	cfg := DefaultConfig()
	if m.Config != nil {
		cfg = *m.Config
	}
	if m.ConfigPath != "" {
		loaded, err := LoadConfig(m.ConfigPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	backend := m.Backend
	if backend == nil {
		backend = auxgeom.NullBackend{}
	}
	ag, err := NewAuxGeom(cfg, backend, log)
	if err != nil {
		panic(err)
	}
	if m.RenderThread {
		ag.StartRenderThread()
	}

	cmd.AddResources(ag)
	cmd.OnShutdown(ag.Close)
	cmd.UseSystem(System(auxGeomCommitSystem).InStage(PostRender).RunAlways())
	cmd.UseSystem(System(auxGeomProcessSystem).InStage(Finale).RunAlways())

	if m.ConfigPath != "" {
		update := &configUpdate{}
		ctx, cancel := context.WithCancel(context.Background())
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return WatchConfig(ctx, m.ConfigPath, func(c Config, err error) {
				if err != nil {
					log.Warnf("auxgeom: config reload: %v", err)
					return
				}
				update.pending.Store(&c)
			})
		})
		cmd.AddResources(update)
		cmd.UseSystem(System(auxGeomConfigSystem).InStage(Prelude).RunAlways())
		cmd.OnShutdown(func() error {
			cancel()
			return g.Wait()
		})
	}
}

func auxGeomConfigSystem(update *configUpdate, ag *AuxGeom) {
	if c := update.pending.Swap(nil); c != nil {
		ag.Apply(*c)
	}
}

func auxGeomCommitSystem(ag *AuxGeom) {
	ag.Commit()
}

func auxGeomProcessSystem(ag *AuxGeom) {
	ag.EndFrame()
}
