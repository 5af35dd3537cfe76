package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/tagbuilder/internal/config"
	"github.com/gravitrone/tagbuilder/internal/engine"
	"github.com/gravitrone/tagbuilder/internal/loader"
	"github.com/gravitrone/tagbuilder/internal/logging"
	"github.com/gravitrone/tagbuilder/internal/store"
)

// Flags are the options shared by every subcommand that loads a catalog.
type Flags struct {
	Catalog string
	Verbose bool
	NoLimit bool
	Dedup   bool
}

// Register adds the shared flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Catalog, "catalog", "c", "", "catalog file or URL (default from config, then tags.json)")
	cmd.Flags().BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&f.NoLimit, "no-limit", false, "disable the character limit")
	cmd.Flags().BoolVar(&f.Dedup, "dedup", false, "drop repeated alternatives")
}

// Session bundles what a command needs after loading a catalog.
type Session struct {
	Config *config.Config
	Log    *zap.Logger
	Store  *store.Store
	Loader *loader.Loader
	Loaded *loader.Loaded
	Engine *engine.Engine
	Dedup  bool
}

// Close flushes the logger and closes the store.
func (s *Session) Close() {
	if s.Store != nil {
		_ = s.Store.Close()
	}
	if s.Log != nil {
		_ = s.Log.Sync()
	}
}

// OpenOptions tune OpenSession beyond the flags.
type OpenOptions struct {
	// LogFile sends logs to a file instead of stderr.
	LogFile string
}

// OpenSession loads settings, opens the state store and loads the catalog.
// A store that cannot be opened only disables caching and autosave.
func OpenSession(ctx context.Context, f Flags, opts OpenOptions) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{Verbose: f.Verbose, File: opts.LogFile})
	if err != nil {
		return nil, err
	}
	s := &Session{Config: cfg, Log: log, Dedup: f.Dedup || cfg.DedupAlternatives}

	st, err := store.Open(config.StatePath())
	if err != nil {
		log.Warn("state store unavailable", zap.Error(err))
	} else {
		s.Store = st
	}

	ldOpts := []loader.Option{loader.WithLogger(log)}
	if s.Store != nil {
		ldOpts = append(ldOpts, loader.WithCache(s.Store))
	}

	source := f.Catalog
	if source == "" {
		source = cfg.Catalog
	}
	s.Loader = loader.New(ldOpts...)
	loaded, err := s.Loader.Load(ctx, source)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if loaded.FellBack {
		log.Warn("using default catalog", zap.String("requested", loader.ResolveSource(source)), zap.String("source", loaded.Source))
	}
	s.Loaded = loaded

	s.Engine = engine.New(loaded.Index,
		engine.WithLogger(log),
		engine.WithLimitEnabled(cfg.LimitEnabled && !f.NoLimit))
	return s, nil
}
