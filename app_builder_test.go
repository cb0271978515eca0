package debugdraw

import "testing"

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type MockModule2 struct {
	installed bool
	stages    int
}

func (m *MockModule2) Install(app *App, commands *Commands) {
	m.installed = true
	m.stages = len(app.stages)
}

func TestAppBuilder_Stateless(t *testing.T) {
	builder := NewAppBuilder()
	app := builder.Build()

	if app.stateful != false {
		t.Errorf("Expected stateful to be false, got %v", app.stateful)
	}
	if app.initialState != 0 {
		t.Errorf("Expected initialState to be 0, got %v", app.initialState)
	}
	if app.finalState != 0 {
		t.Errorf("Expected finalState to be 0, got %v", app.finalState)
	}
	if len(app.stages) != len(DefaultStages) {
		t.Errorf("Expected %d stages, got %d", len(DefaultStages), len(app.stages))
	}
}

func TestAppBuilder_UseStates(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseStates(1, 10)

	app := builder.Build()

	if app.stateful != true {
		t.Errorf("Expected stateful to be true, got %v", app.stateful)
	}
	if app.initialState != 1 {
		t.Errorf("Expected initialState to be 1, got %v", app.initialState)
	}
	if app.finalState != 10 {
		t.Errorf("Expected finalState to be 10, got %v", app.finalState)
	}
	if len(app.systems[Update.Name]) != 10 {
		t.Errorf("Expected 10 states in Update, got %d", len(app.systems[Update.Name]))
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	module2 := &MockModule2{}
	builder.UseModule(module, module2)

	builder.Build()

	if len(builder.modules) != 2 {
		t.Errorf("Expected modules to contain 2 modules, got %v", len(builder.modules))
	}
	if !module.installed || !module2.installed {
		t.Errorf("Expected Install to be called on every module")
	}
	if module2.stages != len(DefaultStages) {
		t.Errorf("Expected stages to exist before modules install, got %d", module2.stages)
	}
}
