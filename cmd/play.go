package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/interview-practice/internal/tui"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a full-screen practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
	}
	addSessionFlags(cmd)
	return cmd
}

func runPlay(cmd *cobra.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	presenter := tui.NewPresenter()
	s, err := e.newSession(cmd, presenter)
	if err != nil {
		return err
	}
	defer s.Close()

	category, _ := cmd.Flags().GetString("category")
	return tui.Run(cmd.Context(), s.manager, presenter, tui.Settings{
		Category:  category,
		Method:    s.method,
		Threshold: e.cfg.Threshold,
	})
}
