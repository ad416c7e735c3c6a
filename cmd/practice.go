package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interview-practice/internal/practice"
	"github.com/abhisek/interview-practice/internal/ui/console"
)

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Answer questions line by line on stdin",
		Long: `practice prints a question, reads one line as your answer and shows the
reference answer with a verdict. An empty line or :q ends the session and
prints a performance summary.`,
		RunE: runPractice,
	}
	addSessionFlags(cmd)
	cmd.Flags().Int("index", -1, "Ask the question at this position in the (filtered) list instead of a random one")
	cmd.Flags().Int("count", 0, "Stop after this many answers (0 = until empty line or EOF)")
	return cmd
}

func runPractice(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.log.Sync() //nolint:errcheck

	out := cmd.OutOrStdout()
	s, err := e.newSession(cmd, console.New(out))
	if err != nil {
		return err
	}
	defer s.Close()

	category, _ := cmd.Flags().GetString("category")
	index, _ := cmd.Flags().GetInt("index")
	count, _ := cmd.Flags().GetInt("count")

	sel := practice.Random().In(category)
	if index >= 0 {
		sel = practice.At(index).In(category)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for n := 0; count == 0 || n < count; n++ {
		if _, err := s.manager.SelectQuestion(sel); err != nil {
			return err
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == ":q" {
			break
		}

		if _, err := s.manager.CheckAnswer(cmd.Context(), line, s.method, s.opts...); err != nil {
			if errors.Is(err, practice.ErrOracleUnavailable) {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answer: %w", err)
	}

	s.manager.Summary()
	return nil
}
