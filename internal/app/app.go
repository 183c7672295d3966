package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/hcl_adapter"
	"github.com/specialistvlad/evmsim/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	logCloser   io.Closer
	ctx         context.Context
	config      *Config
	projects    *config.Registry
	experiments config.ExperimentLoader
	httpServer  *http.Server
	phase       atomic.Value
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and loaders. The
// summary is printed to outW; logs go to outW too unless a log file is set.
func NewApp(outW io.Writer, cfg *Config) *App {
	logW, closer := newLogWriter(cfg.LogFile, outW)
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	hclLoader := hcl_adapter.NewLoader()
	projects := config.NewRegistry()
	projects.Register(hclLoader, ".hcl")
	projects.RegisterDirectory(hclLoader)
	projects.Register(yaml_adapter.NewLoader(), ".yaml", ".yml")
	logger.Debug("Project loaders registered.")

	a := &App{
		outW:        outW,
		logger:      logger,
		logCloser:   closer,
		ctx:         ctxlog.WithLogger(context.Background(), logger),
		config:      cfg,
		projects:    projects,
		experiments: hclLoader,
	}
	a.phase.Store(phaseStarting)
	return a
}

// Close releases the resources held by the App.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// Lifecycle phases reported by the health check.
const (
	phaseStarting = "starting"
	phaseLoading  = "loading"
	phaseRunning  = "running"
	phaseDone     = "done"
)

func (a *App) setPhase(p string) { a.phase.Store(p) }

// Phase returns the current lifecycle phase.
func (a *App) Phase() string { return a.phase.Load().(string) }
