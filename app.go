package debugdraw

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// App owns the resources and the staged systems of a frame loop. Systems are
// plain functions whose pointer or interface arguments are resolved from the
// resources, or *Commands.
type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	started            bool
	stopped            bool
	frame              uint64
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any
	shutdown           []func() error
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Frame returns the number of frames run so far.
func (app *App) Frame() uint64 { return app.frame }

func (app *App) Stopped() bool { return app.stopped }

func (app *App) start() {
	if app.started {
		return
	}
	app.started = true
	if app.stateful {
		app.Logger().Debugf("running in stateful mode")
		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		app.Logger().Debugf("running in stateless mode")
	}
}

// Run runs frames until a system calls Commands.Stop or the final state is
// reached, then shuts the app down.
func (app *App) Run() error {
	app.start()
	for !app.stopped {
		app.runFrame()
	}
	return app.Shutdown()
}

// RunFrames runs at most n frames. It returns false once the app has stopped.
func (app *App) RunFrames(n int) bool {
	app.start()
	for i := 0; i < n && !app.stopped; i++ {
		app.runFrame()
	}
	return !app.stopped
}

func (app *App) runFrame() {
	app.callSystems(app.state, execute)
	app.frame++

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}
		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			app.stopped = true
		}
	}
}

// Shutdown runs the registered shutdown hooks in reverse order and joins
// their errors. Hooks run once.
func (app *App) Shutdown() error {
	app.stopped = true
	hooks := app.shutdown
	app.shutdown = nil

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		errs = append(errs, hooks[i]())
	}
	return errors.Join(errs...)
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if app.stateful {
			for _, system := range app.systems[stage.Name][state][phase] {
				app.callSystem(system)
			}
		}
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type *T, if present.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfError    = reflect.TypeFor[error]()
)

func (app *App) resolve(argType reflect.Type) (reflect.Value, bool) {
	switch argType.Kind() {
	case reflect.Pointer:
		if argType.Elem() == typeOfCommands {
			return reflect.ValueOf(&Commands{app: app}), true
		}
		if resource, ok := app.resources[argType.Elem()]; ok {
			return reflect.ValueOf(resource), true
		}
	case reflect.Interface:
		for _, resource := range app.resources {
			if reflect.TypeOf(resource).Implements(argType) {
				v := reflect.New(argType).Elem()
				v.Set(reflect.ValueOf(resource))
				return v, true
			}
		}
	}
	return reflect.Value{}, false
}

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := range args {
		argType := systemType.In(i)
		v, ok := app.resolve(argType)
		if !ok {
			panic(fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				systemType,
				argType,
			))
		}
		args[i] = v
	}
	out := systemValue.Call(args)
	if n := len(out); n > 0 && out[n-1].Type() == typeOfError && !out[n-1].IsNil() {
		app.Logger().Errorf("system %s: %v", runtime.FuncForPC(systemValue.Pointer()).Name(), out[n-1].Interface())
	}
}
