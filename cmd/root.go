package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdesk",
	Short: "Assessment question authoring for teachers",
	Long: `Quizdesk helps teachers write a set of three assessment questions, either
by hand or by picking an achievement standard and letting an LLM draft one,
and saves the set to a Google Sheet or a local database.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default quizdesk.yaml in . or $XDG_CONFIG_HOME/quizdesk)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDESK_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(standardsCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
