package debugdraw

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system any) *Commands {
	switch s := system.(type) {
	case systemScheduleBuilder:
		cmd.app.UseSystem(s)
	default:
		cmd.app.UseSystem(System(s))
	}
	return cmd
}

// Stop ends Run after the current frame.
func (cmd *Commands) Stop() {
	cmd.app.stopped = true
}

// OnShutdown registers fn to run when the app shuts down, after every hook
// registered later.
func (cmd *Commands) OnShutdown(fn func() error) *Commands {
	cmd.app.shutdown = append(cmd.app.shutdown, fn)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
