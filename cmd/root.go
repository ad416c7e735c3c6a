package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "interview-practice",
		Short: "Practice interview questions from the terminal",
		Long: `interview-practice keeps a bank of interview questions and reference answers,
asks them one at a time and scores your free-text answers by exact, substring
or semantic comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/interview-practice/config.yaml)")
	pf.String("bank", "", "Question bank file, .json or .yaml (overrides IPRACTICE_BANK)")
	pf.String("db", "", "History database: SQLite path or postgres:// URL (overrides IPRACTICE_DB)")
	pf.String("provider", "", "Similarity oracle: openai, gemini, anthropic, openrouter or mock")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	addSessionFlags(rootCmd)

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newPracticeCmd(),
		newPlayCmd(),
		newImportCmd(),
		newExportCmd(),
		newStatsCmd(),
		newHistoryCmd(),
		newResetCmd(),
		newOracleCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// addSessionFlags registers the flags shared by play and practice.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "", "Only ask questions from this category")
	cmd.Flags().String("method", "", "Comparison method: auto, exact, substring or semantic")
	cmd.Flags().Float64("threshold", 0, "Semantic match threshold (default 0.6)")
}

func Execute() error {
	return NewRootCmd().Execute()
}
