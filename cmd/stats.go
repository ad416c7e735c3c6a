package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interview-practice/internal/store"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show accuracy per category across all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rows, err := st.AttemptRepo().AccuracyByCategory(cmd.Context())
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No attempts recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-24s %8s %8s %9s\n", "CATEGORY", "TOTAL", "CORRECT", "ACCURACY")
			fmt.Fprintln(out, strings.Repeat("─", 52))
			overall := store.CategoryAccuracy{Category: "all"}
			for _, r := range rows {
				printAccuracyRow(cmd, r)
				overall.Total += r.Total
				overall.Correct += r.Correct
			}
			fmt.Fprintln(out, strings.Repeat("─", 52))
			printAccuracyRow(cmd, overall)
			return nil
		},
	}
}

func printAccuracyRow(cmd *cobra.Command, r store.CategoryAccuracy) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8d %8d %8.1f%%\n",
		truncate(r.Category, 24), r.Total, r.Correct, r.Accuracy()*100)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent answers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			category, _ := cmd.Flags().GetString("category")
			sessionID, _ := cmd.Flags().GetString("session")
			attempts, err := st.AttemptRepo().QueryAttempts(cmd.Context(), store.QueryOpts{
				Limit:     limit,
				Category:  category,
				SessionID: sessionID,
			})
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(attempts) == 0 {
				fmt.Fprintln(out, "No attempts recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-19s %-16s %-9s %6s %-7s %s\n", "TIME", "CATEGORY", "METHOD", "SCORE", "RESULT", "QUESTION")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, a := range attempts {
				score := "-"
				if a.Score != nil {
					score = fmt.Sprintf("%.2f", *a.Score)
				}
				result := "miss"
				if a.Matched {
					result = "ok"
				}
				fmt.Fprintf(out, "%-19s %-16s %-9s %6s %-7s %s\n",
					a.At.Local().Format("2006-01-02 15:04:05"),
					truncate(a.Category, 16), a.Method, score, result, truncate(a.QuestionText, 40))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	cmd.Flags().String("category", "", "Only show attempts in this category")
	cmd.Flags().String("session", "", "Only show attempts from this session id")
	return cmd
}
