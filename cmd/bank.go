package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <question> <answer>",
		Short: "Add a question to the bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			qs, err := e.loadBank()
			if err != nil {
				return err
			}

			category, _ := cmd.Flags().GetString("category")
			m := practice.New(practice.Options{Bank: qs, Logger: e.log})
			q := m.AddQuestion(args[0], args[1], category)
			if err := m.Save(e.bankPath); err != nil {
				return fmt.Errorf("save bank: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] to %s\n", q.ID, q.Category, e.bankPath)
			return nil
		},
	}
	cmd.Flags().String("category", "", "Question category (default \"general\")")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions in the bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			qs, err := e.loadBank()
			if err != nil {
				return err
			}

			category, _ := cmd.Flags().GetString("category")
			qs = bank.Filter(qs, category)

			out := cmd.OutOrStdout()
			if len(qs) == 0 {
				fmt.Fprintln(out, "No questions.")
				return nil
			}

			fmt.Fprintf(out, "%-4s %-36s %-18s %s\n", "#", "ID", "CATEGORY", "QUESTION")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for i, q := range qs {
				fmt.Fprintf(out, "%-4d %-36s %-18s %s\n", i, q.ID, truncate(q.Category, 18), truncate(q.Question, 60))
			}
			fmt.Fprintf(out, "\n%d question(s) in %s\n", len(qs), e.bankPath)
			return nil
		},
	}
	cmd.Flags().String("category", "", "Only list questions in this category")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the bank with questions from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			merge, _ := cmd.Flags().GetBool("merge")
			var existing []bank.Question
			if merge {
				if existing, err = e.loadBank(); err != nil {
					return err
				}
			}

			m := practice.New(practice.Options{Logger: e.log})
			if err := m.Load(args[0]); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			imported := m.ListQuestions("")
			if merge {
				m = practice.New(practice.Options{Bank: existing, Logger: e.log})
				for _, q := range imported {
					m.AddQuestion(q.Question, q.Answer, q.Category)
				}
			}
			if err := m.Save(e.bankPath); err != nil {
				return fmt.Errorf("save bank: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d question(s) into %s\n", len(imported), e.bankPath)
			return nil
		},
	}
	cmd.Flags().Bool("merge", false, "Append to the existing bank with fresh ids instead of replacing it")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the bank to a file; the extension picks JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			qs, err := e.loadBank()
			if err != nil {
				return err
			}

			m := practice.New(practice.Options{Bank: qs, Logger: e.log})
			if err := m.Save(args[0]); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d question(s) to %s\n", len(qs), args[0])
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
