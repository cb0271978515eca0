// Command auxgeomdemo runs the debug draw host headless for a number of
// frames, with worker jobs drawing in parallel, and prints the flush stats.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gekko3d/debugdraw"
	"github.com/gekko3d/debugdraw/auxgeom"
)

const (
	demoRunning debugdraw.State = iota
	demoDone
)

type demoJobs struct {
	ids []uuid.UUID
}

func main() {
	var (
		configPath   = flag.String("config", "", "TOML config file")
		frames       = flag.Int("frames", 60, "frames to run")
		jobs         = flag.Int("jobs", 2, "worker jobs drawing each frame")
		capturePath  = flag.String("capture", "", "record flushed geometry to this file")
		renderThread = flag.Bool("render-thread", false, "process on a render goroutine")
		buffering    = flag.String("buffering", "", "override buffering: main, worker or base")
		debug        = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	cfg := debugdraw.DefaultConfig()
	if *configPath != "" {
		loaded, err := debugdraw.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *capturePath != "" {
		cfg.Capture.Path = *capturePath
	}
	if *buffering != "" {
		cfg.AuxGeom.Buffering = debugdraw.Buffering(*buffering)
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := debugdraw.NewAppBuilder().
		UseStates(demoRunning, demoDone).
		UseModule(
			debugdraw.LoggingModule{Prefix: "auxgeomdemo", Config: &cfg.Log},
			debugdraw.TimeModule{},
			debugdraw.AuxGeomModule{Config: &cfg, RenderThread: *renderThread},
			debugdraw.GizmoModule{},
		).
		Build()

	if *configPath != "" {
		app.Logger().Infof("config %s loaded", *configPath)
	}

	dj := &demoJobs{}
	for range *jobs {
		dj.ids = append(dj.ids, uuid.New())
	}
	app.Commands().AddResources(dj)

	app.UseSystem(debugdraw.System(sceneSystem))
	app.UseSystem(debugdraw.System(jobsSystem))
	app.UseSystem(debugdraw.System(hudSystem).InStage(debugdraw.PreRender))
	app.UseSystem(debugdraw.System(func(t *debugdraw.Time, cmd *debugdraw.Commands) {
		if int(t.Frame) >= *frames {
			cmd.ChangeState(demoDone)
		}
	}).InStage(debugdraw.Finale).InState(debugdraw.OnExecute(demoRunning)))
	app.UseSystem(debugdraw.System(func(t *debugdraw.Time, log debugdraw.Logger) {
		log.Infof("done after %d frames", t.Frame)
	}).InState(debugdraw.OnEnter(demoDone)))

	ag, _ := debugdraw.Resource[debugdraw.AuxGeom](app)
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(ag.Stats())
}

func sceneSystem(t *debugdraw.Time, gizmos *debugdraw.Gizmos, ag *debugdraw.AuxGeom) {
	angle := float32(t.Frame) * 0.05
	rot := mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})

	gizmos.Add(debugdraw.NewGizmoAxes(mgl32.Vec3{}, mgl32.QuatIdent(), 1))
	cube := debugdraw.NewGizmoCube(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1}, [4]float32{0.2, 0.6, 1, 1})
	cube.Rotation = rot
	gizmos.Add(cube)
	gizmos.Add(debugdraw.NewGizmoCircle(mgl32.Vec3{}, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}), 3, [4]float32{1, 1, 0, 1}))

	d := ag.Drawer()
	d.DrawSphere(rot.Rotate(mgl32.Vec3{2, 0, 0}), 0.25, auxgeom.RGBA(255, 80, 80, 160), true)
	d.DrawCone(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{0, 1, 0}, 0.3, 0.8, auxgeom.Green, true)
	d.DrawLine(mgl32.Vec3{-3, 0, -3}, auxgeom.White, mgl32.Vec3{3, 0, 3}, auxgeom.White, 3)
	d.DrawBone(mgl32.Vec3{0, 0, 2}, rot.Rotate(mgl32.Vec3{1, 1, 0}).Add(mgl32.Vec3{0, 0, 2}), auxgeom.Yellow)
}

// jobsSystem draws a ring of points per job on parallel goroutines.
func jobsSystem(t *debugdraw.Time, dj *demoJobs, ag *debugdraw.AuxGeom) error {
	var g errgroup.Group
	keepAlive := ag.KeepAliveFrames()
	for i, id := range dj.ids {
		w := ag.Worker(id)
		g.Go(func() error {
			const n = 64
			pts := make([]mgl32.Vec3, n)
			r := float64(i + 1)
			for k := range pts {
				a := 2*math.Pi*float64(k)/n + float64(t.Frame)*0.01
				pts[k] = mgl32.Vec3{float32(r * math.Cos(a)), 0.1 * float32(i), float32(r * math.Sin(a))}
			}
			w.DrawPoints(pts, auxgeom.ColorF([4]float32{1, float32(i) / float32(len(dj.ids)), 0.5, 1}), 2)
			w.Commit(keepAlive)
			return nil
		})
	}
	return g.Wait()
}

func hudSystem(t *debugdraw.Time, gizmos *debugdraw.Gizmos, ag *debugdraw.AuxGeom) {
	gizmos.Label(debugdraw.ScreenLabel{
		Text:     fmt.Sprintf("frame %d  dt %v", t.Frame, t.Dt),
		Position: [2]float32{8, 8},
		Color:    [4]float32{1, 1, 1, 1},
	})
	mem := ag.MemoryUsage()
	gizmos.Label(debugdraw.ScreenLabel{
		Text:     fmt.Sprintf("aux geom %d KiB", mem.Total()>>10),
		Position: [2]float32{8, 24},
		Color:    [4]float32{0.7, 0.7, 0.7, 1},
	})
}
