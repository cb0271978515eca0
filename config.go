package debugdraw

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

var ErrUnknownBuffering = errors.New("debugdraw: unknown buffering mode")

type Buffering string

const (
	BufferingMain   Buffering = "main"
	BufferingWorker Buffering = "worker"
	BufferingBase   Buffering = "base"
)

type AuxGeomConfig struct {
	Enabled         bool      `toml:"enabled"`
	Buffering       Buffering `toml:"buffering"`
	KeepAliveFrames int       `toml:"keep_alive_frames"`
	TextBudgetBytes int       `toml:"text_budget_bytes"`
	InitialVertices int       `toml:"initial_vertices"`
	InitialIndices  int       `toml:"initial_indices"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

type CaptureConfig struct {
	// Path of the ".auxgeom.msgpack.zst" file; empty disables capture.
	Path string `toml:"path"`
}

type Config struct {
	AuxGeom AuxGeomConfig `toml:"auxgeom"`
	Log     LogConfig     `toml:"log"`
	Capture CaptureConfig `toml:"capture"`
}

func DefaultConfig() Config {
	return Config{
		AuxGeom: AuxGeomConfig{
			Enabled:         true,
			Buffering:       BufferingMain,
			KeepAliveFrames: 1,
			TextBudgetBytes: textmsg.DefaultBudget,
			InitialVertices: 4096,
			InitialIndices:  4096,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 32,
		},
	}
}

func (c Config) Validate() error {
	switch c.AuxGeom.Buffering {
	case BufferingMain, BufferingWorker, BufferingBase:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBuffering, c.AuxGeom.Buffering)
	}
	if c.AuxGeom.KeepAliveFrames < 1 {
		return fmt.Errorf("debugdraw: keep_alive_frames must be at least 1, got %d", c.AuxGeom.KeepAliveFrames)
	}
	if c.AuxGeom.TextBudgetBytes < 0 || c.AuxGeom.InitialVertices < 0 || c.AuxGeom.InitialIndices < 0 {
		return errors.New("debugdraw: negative buffer size")
	}
	return nil
}

// ParseConfig decodes TOML on top of DefaultConfig. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("debugdraw: parsing config: %w", err)
	}
	return cfg, cfg.Validate()
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("debugdraw: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("debugdraw: encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WatchConfig reloads path whenever it is written and passes the result to fn,
// until ctx is done. The parent directory is watched so editors that replace
// the file are seen too.
func WatchConfig(ctx context.Context, path string, fn func(Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("debugdraw: %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("debugdraw: watching %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fn(LoadConfig(path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Config{}, fmt.Errorf("debugdraw: watching %s: %w", path, err))
		}
	}
}
