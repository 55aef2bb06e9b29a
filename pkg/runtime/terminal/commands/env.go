package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/sources"
	"github.com/rs/zerolog"
)

const commandTimeout = 60 * time.Second

// Env carries the root command's flags and dependencies to subcommands.
type Env struct {
	ConfigPath   string
	ProfilesPath string
	SourceName   string
	Format       string

	Sources sources.Registry
	Output  io.Writer
	Logger  zerolog.Logger
}

func (e *Env) Context() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	return e.Logger.WithContext(ctx), cancel
}

func (e *Env) Settings() (*config.Settings, error) {
	if e.ConfigPath == "" {
		return config.DefaultSettings()
	}
	return config.LoadSettings(e.ConfigPath)
}

func (e *Env) Reporter() (export.Reporter, error) {
	return export.NewReporter(e.Output, e.Format)
}

func (e *Env) Profiles(settings *config.Settings) (config.Registry, error) {
	path := e.ProfilesPath
	if path == "" {
		path = settings.Profiles
	}
	return config.NewRegistry(path)
}

// Profile resolves the source profile selected by --source or the settings file.
func (e *Env) Profile(ctx context.Context, settings *config.Settings) (*domain.SourceProfile, error) {
	name := e.SourceName
	if name == "" {
		name = settings.Source
	}
	if name == "" {
		return nil, fmt.Errorf("no source selected; pass --source or set source in the settings file")
	}

	registry, err := e.Profiles(settings)
	if err != nil {
		return nil, err
	}
	return registry.GetProfile(ctx, name)
}

// OpenEngine builds a dashboard engine and bulk-loads the selected source.
func (e *Env) OpenEngine(ctx context.Context) (*dashboard.Engine, error) {
	settings, err := e.Settings()
	if err != nil {
		return nil, err
	}
	opts, err := settings.EngineOptions(e.Logger)
	if err != nil {
		return nil, err
	}
	engine, err := dashboard.New(opts)
	if err != nil {
		return nil, err
	}

	profile, err := e.Profile(ctx, settings)
	if err != nil {
		return nil, err
	}
	src, err := e.Sources.Open(ctx, *profile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			e.Logger.Warn().Err(err).Str("source", profile.String()).Msg("failed to close source")
		}
	}()

	if err := engine.Load(ctx, src); err != nil {
		return nil, err
	}
	return engine, nil
}
