package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/render"
	"github.com/abhisek/quizbox/internal/scoring"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/surface"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Grade answers given on the command line",
	Example: `  quizbox score --answer question0=2024 --answer question1=Banana --answer question1=Apple \
    --answer question2=zero`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetStringArray("answer")
		form, err := parseAnswers(answers)
		if err != nil {
			return err
		}

		bank, err := loadBank()
		if err != nil {
			return err
		}

		quizSurface := surface.New()
		render.New(bank).Build(quizSurface)
		quizSurface.ApplyForm(form)

		results := &surface.Results{}
		res := scoring.New(bank, quizSurface, results).Submit()
		fmt.Fprintln(cmd.OutOrStdout(), results.Text())

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			for _, o := range res.Outcomes {
				mark := "✗"
				if o.Correct {
					mark = "✓"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %d. %s\n", mark, o.Index+1, bank.At(o.Index).Text())
			}
		}

		if record, _ := cmd.Flags().GetBool("record"); record {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if _, err := st.AttemptRepo().AppendAttempt(cmd.Context(), store.AttemptData{
				BankTitle: bank.Title(),
				Source:    store.SourceCLI,
				Score:     res.Score,
				Total:     res.Total,
				Responses: res.Responses(),
			}); err != nil {
				return fmt.Errorf("record attempt: %w", err)
			}
		}
		return nil
	},
}

// parseAnswers turns name=value pairs into form values. A name may repeat
// for multi-choice questions.
func parseAnswers(pairs []string) (url.Values, error) {
	form := url.Values{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid answer %q: want name=value", p)
		}
		form.Add(strings.TrimSpace(name), value)
	}
	return form, nil
}

func init() {
	scoreCmd.Flags().StringArrayP("answer", "a", nil, "Answer as questionN=value; repeat for several values")
	scoreCmd.Flags().BoolP("verbose", "v", false, "Show each question's outcome")
	scoreCmd.Flags().Bool("record", false, "Save the attempt to the history database")
}
