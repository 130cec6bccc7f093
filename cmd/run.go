package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdesk/internal/app"
	"github.com/abhisek/quizdesk/internal/logger"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
// Missing standards or LLM settings only disable the assisted path.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closer, err := initLogger(cfg, logger.ModeFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{Saved: st.SubmissionRepo()}
	opts.Taxonomy, opts.TaxonomyErr = loadTaxonomy(cfg)

	gen, err := newGenerator(ctx, cfg, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI generation will be unavailable.")
		log.Warn().Err(err).Msg("question generator unavailable")
	} else {
		opts.Generator = gen
	}

	sub, err := newSubmitter(ctx, cfg, st)
	if err != nil {
		return err
	}
	opts.Submitter = sub

	log.Info().Str("storage", cfg.Storage.Backend).Str("provider", cfg.LLM.Provider).Msg("starting TUI")
	return app.Run(opts)
}
