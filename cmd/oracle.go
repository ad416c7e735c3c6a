package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/interview-practice/internal/oracle"
	"github.com/abhisek/interview-practice/internal/store"
)

func newOracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Inspect the semantic similarity oracle",
	}
	cmd.AddCommand(newOracleCheckCmd(), newOracleCallsCmd(), newOracleUsageCmd())
	return cmd
}

func newOracleCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <text> <reference>",
		Short: "Score the similarity of two texts with the configured oracle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			var rec oracle.CallRecorder
			if st, err := e.openStore(); err == nil {
				defer st.Close()
				rec = st.OracleCallRepo()
			}

			o, err := e.newOracle(cmd.Context(), rec)
			if err != nil {
				return err
			}
			if o == nil {
				return errors.New("no similarity oracle configured; set oracle.provider or an API key such as OPENAI_API_KEY")
			}

			start := time.Now()
			score, err := o.Similarity(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("similarity: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model:      %s\n", o.ModelID())
			fmt.Fprintf(out, "Similarity: %.4f\n", score)
			fmt.Fprintf(out, "Match:      %t (threshold %.2f)\n", score >= e.cfg.Threshold, e.cfg.Threshold)
			fmt.Fprintf(out, "Latency:    %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newOracleCallsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Show recent oracle calls, newest first",
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
			calls, err := st.OracleCallRepo().QueryOracleCalls(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query oracle calls: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(calls) == 0 {
				fmt.Fprintln(out, "No oracle calls recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-19s %-11s %-28s %8s %6s %s\n", "TIME", "PROVIDER", "MODEL", "LATENCY", "SCORE", "STATUS")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, c := range calls {
				score := "-"
				if c.Score != nil {
					score = fmt.Sprintf("%.2f", *c.Score)
				}
				status := "ok"
				if !c.Success {
					status = "error: " + truncate(c.ErrorMessage, 40)
				}
				fmt.Fprintf(out, "%-19s %-11s %-28s %6dms %6s %s\n",
					c.At.Local().Format("2006-01-02 15:04:05"),
					c.Provider, truncate(c.Model, 28), c.LatencyMs, score, status)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of calls to show (0 = all)")
	return cmd
}

func newOracleUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Summarize oracle calls per provider and model",
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

			usage, err := st.OracleCallRepo().UsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query oracle usage: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintln(out, "No oracle calls recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-11s %-28s %7s %9s %12s\n", "PROVIDER", "MODEL", "CALLS", "FAILURES", "AVG LATENCY")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, u := range usage {
				var avg time.Duration
				if u.Calls > 0 {
					avg = u.TotalLatency / time.Duration(u.Calls)
				}
				fmt.Fprintf(out, "%-11s %-28s %7d %9d %12s\n",
					u.Provider, truncate(u.Model, 28), u.Calls, u.Failures, avg.Round(time.Millisecond))
			}
			return nil
		},
	}
}
