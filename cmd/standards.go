package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdesk/internal/logger"
	"github.com/abhisek/quizdesk/internal/taxonomy"
)

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Browse the achievement standards",
}

var standardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the standards tree (optionally filtered by grade and subject)",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")
		subject, _ := cmd.Flags().GetString("subject")
		if subject != "" && grade == "" {
			return fmt.Errorf("--subject needs --grade")
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

		tax, err := taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return err
		}
		return printStandards(cmd.OutOrStdout(), tax, grade, subject)
	},
}

func printStandards(w io.Writer, tax *taxonomy.Taxonomy, grade, subject string) error {
	grades := tax.Grades()
	if grade != "" {
		if tax.Subjects(grade) == nil {
			return fmt.Errorf("no grade %q (have %s)", grade, strings.Join(grades, ", "))
		}
		grades = []string{grade}
	}

	var shown int
	for _, g := range grades {
		subjects := tax.Subjects(g)
		if subject != "" {
			if tax.Categories(g, subject) == nil {
				return fmt.Errorf("no subject %q in %s", subject, g)
			}
			subjects = []string{subject}
		}

		fmt.Fprintln(w, g)
		for _, s := range subjects {
			fmt.Fprintf(w, "  %s\n", s)
			for _, c := range tax.Categories(g, s) {
				fmt.Fprintf(w, "    %s\n", c)
				for _, std := range tax.Standards(g, s, c) {
					fmt.Fprintf(w, "      - %s\n", std)
					shown++
				}
			}
		}
	}

	c := tax.Count()
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%d of %d standards (%d grades, %d subjects, %d categories)\n",
		shown, c.Standards, c.Grades, c.Subjects, c.Categories)
	return nil
}

func init() {
	standardsListCmd.Flags().String("grade", "", "Only this grade (e.g. 3학년)")
	standardsListCmd.Flags().String("subject", "", "Only this subject within --grade")

	standardsCmd.AddCommand(standardsListCmd)
}
