package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdesk/internal/store"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect question sets saved in the local database",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved question sets, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		code, _ := cmd.Flags().GetString("code")
		full, _ := cmd.Flags().GetBool("full")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.SubmissionRepo().ListSubmissions(context.Background(), store.SubmissionQuery{
			Limit:        limit,
			ActivityCode: strings.TrimSpace(code),
		})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No submissions found.")
			return nil
		}

		if full {
			sep := strings.Repeat("─", 60)
			for _, r := range records {
				fmt.Printf("#%d  %s  %s  %s\n", r.ID, r.SubmittedAt, r.ActivityCode, r.TeacherEmail)
				for i, q := range r.Questions {
					fmt.Printf("  [%d] %s\n", i+1, q)
					if r.ImageURLs[i] != "" {
						fmt.Printf("      image: %s\n", r.ImageURLs[i])
					}
				}
				fmt.Println(sep)
			}
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-16s  %-24s  %s\n",
			"ID", "Submitted", "Activity", "Teacher", "Question 1")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range records {
			fmt.Printf("%-5d  %-19s  %-16s  %-24s  %s\n",
				r.ID,
				r.SubmittedAt,
				truncate(r.ActivityCode, 16),
				truncate(r.TeacherEmail, 24),
				truncate(firstLine(r.Questions[0]), 40),
			)
		}
		fmt.Printf("\n%d submissions\n", len(records))
		return nil
	},
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

func init() {
	submissionsListCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")
	submissionsListCmd.Flags().String("code", "", "Only this activity code")
	submissionsListCmd.Flags().Bool("full", false, "Print every question and image URL")

	submissionsCmd.AddCommand(submissionsListCmd)
}
