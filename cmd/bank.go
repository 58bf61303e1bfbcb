package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and convert question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a bank file for errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := quiz.LoadBank(args[0])
		if err != nil {
			var verr *quiz.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s: %s\n", issue.Field, issue.Message)
				}
				return fmt.Errorf("%s: %d validation issues", args[0], len(verr.Issues))
			}
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions)\n", args[0], b.Len())
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current bank as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBank()
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		f := quiz.Format(strings.ToLower(format))
		if f == "" {
			f = quiz.FormatYAML
			if out != "" {
				f = quiz.FormatFromPath(out)
			}
		}

		if out == "" {
			return quiz.WriteBank(cmd.OutOrStdout(), b, f)
		}
		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := quiz.WriteBank(file, b, f); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	},
}

var bankShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the questions and answers of the current bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBank()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%d questions)\n\n", b.Title(), b.Len())
		for i, q := range b.Questions() {
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, q.Kind(), q.Text())
			p := &questionPrinter{}
			q.Accept(p)
			for _, line := range p.lines {
				fmt.Fprintln(w, "   "+line)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

type questionPrinter struct {
	lines []string
}

func (p *questionPrinter) VisitSingleChoice(q quiz.SingleChoice) {
	for _, opt := range q.Options {
		p.lines = append(p.lines, marker(opt == q.Correct, "( )", "(•)")+" "+opt)
	}
}

func (p *questionPrinter) VisitMultiChoice(q quiz.MultiChoice) {
	for _, opt := range q.Options {
		p.lines = append(p.lines, marker(slices.Contains(q.Correct, opt), "[ ]", "[x]")+" "+opt)
	}
}

func (p *questionPrinter) VisitFillBlank(q quiz.FillBlank) {
	answers := append([]string{q.Correct}, q.Alternates...)
	p.lines = append(p.lines, "answer: "+strings.Join(answers, " | "))
}

func marker(on bool, off, set string) string {
	if on {
		return set
	}
	return off
}

func init() {
	bankExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	bankExportCmd.Flags().String("format", "", "yaml or json (default from the output extension)")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankShowCmd)
}
