package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdesk/internal/config"
	"github.com/abhisek/quizdesk/internal/llm"
	"github.com/abhisek/quizdesk/internal/logger"
	"github.com/abhisek/quizdesk/internal/questiongen"
	"github.com/abhisek/quizdesk/internal/sheets"
	"github.com/abhisek/quizdesk/internal/store"
	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/taxonomy"
)

// loadConfig reads the config named by --config and applies --db.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// initLogger sets up logging for the given mode from the config.
func initLogger(cfg *config.Config, mode logger.Mode) (io.Closer, error) {
	return logger.Init(logger.Options{Mode: mode, Level: cfg.Log.Level, File: cfg.Log.File})
}

// resolveDBPath returns the database path using --db or db.path (highest
// priority), then QUIZDESK_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadTaxonomy loads the standards file. A failure is logged and returned
// so surfaces can degrade to manual entry.
func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.TaxonomyPath).Msg("achievement standards unavailable")
		return nil, err
	}
	c := tax.Count()
	log.Info().Str("path", cfg.TaxonomyPath).
		Int("grades", c.Grades).
		Int("standards", c.Standards).
		Msg("achievement standards loaded")
	return tax, nil
}

// newGenerator builds the question generator. LLM calls are recorded in
// st when it is non-nil.
func newGenerator(ctx context.Context, cfg *config.Config, st *store.Store) (*questiongen.LLMGenerator, error) {
	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}

	var events store.EventRepo
	if st != nil {
		events = st.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, events)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	qcfg := questiongen.DefaultConfig()
	if cfg.LLM.MaxTokens > 0 {
		qcfg.MaxTokens = cfg.LLM.MaxTokens
	}
	qcfg.Timeout = cfg.LLM.Timeout
	return questiongen.New(provider, qcfg), nil
}

// newSubmitter builds the submission handler for the configured backend.
// With the sheets backend and mirroring on, rows are also kept in st.
func newSubmitter(ctx context.Context, cfg *config.Config, st *store.Store) (*submission.Handler, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if st == nil {
			return nil, errors.New("sqlite backend needs a database")
		}
		return submission.NewHandler(st.SubmissionRepo()), nil

	case config.BackendSheets:
		appender, err := sheets.New(ctx, cfg.Sheets)
		if err != nil {
			return nil, fmt.Errorf("google sheets: %w", err)
		}
		var opts []submission.Option
		if cfg.Storage.Mirror && st != nil {
			opts = append(opts, submission.WithMirror(st.SubmissionRepo()))
		}
		return submission.NewHandler(appender, opts...), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
