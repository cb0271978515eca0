package debugdraw

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes leveled, timestamped records to stderr and, when a file
// is configured, to a size rotated log file.
type DefaultLogger struct {
	*log.Logger
	file *lumberjack.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	cfg := DefaultConfig().Log
	if debug {
		cfg.Level = "debug"
	}
	return NewLogger(prefix, cfg, os.Stderr)
}

// NewLogger builds a logger from cfg. An unknown level falls back to info.
func NewLogger(prefix string, cfg LogConfig, w io.Writer) *DefaultLogger {
	l := &DefaultLogger{}
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: 1,
		}
		w = io.MultiWriter(w, l.file)
	}
	l.Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		CallerOffset:    1,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	l.Logger.SetLevel(level)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.Logger.GetLevel() <= log.DebugLevel
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.Logger.SetLevel(log.DebugLevel)
	} else {
		l.Logger.SetLevel(log.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.Logger.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.Logger.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.Logger.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.Logger.Errorf(format, args...) }

// Close closes the log file, if any.
func (l *DefaultLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// LoggingModule installs a logger as a resource. Config, when set, takes
// precedence over Debug.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Config *LogConfig
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	var logger *DefaultLogger
	if m.Config != nil {
		logger = NewLogger(m.Prefix, *m.Config, os.Stderr)
	} else {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	cmd.AddResources(logger)
	cmd.OnShutdown(logger.Close)
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
