package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdesk/internal/logger"
	"github.com/abhisek/quizdesk/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one question for an achievement standard",
	Long: `Ask the configured LLM for a single question for the given standard and
print it to stdout. Nothing is saved except the LLM call record.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("standard", "", "Achievement standard text (required)")
	generateCmd.Flags().Bool("no-record", false, "Do not record the LLM call in the database")
	_ = generateCmd.MarkFlagRequired("standard")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	standard, _ := cmd.Flags().GetString("standard")
	noRecord, _ := cmd.Flags().GetBool("no-record")
	if strings.TrimSpace(standard) == "" {
		return fmt.Errorf("--standard must not be blank")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := initLogger(cfg, logger.ModeConsole)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()

	ctx := cmd.Context()

	var st *store.Store
	if !noRecord {
		st, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	g, err := newGenerator(ctx, cfg, st)
	if err != nil {
		return err
	}

	text, err := g.Generate(ctx, standard)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
