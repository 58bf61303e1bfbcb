package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.AttemptRepo().RecentAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(w, "No attempts recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-19s  %-24s  %-6s  %7s  %s\n", "Submitted", "Bank", "Source", "Score", "ID")
		fmt.Fprintln(w, strings.Repeat("─", 100))
		for _, a := range attempts {
			fmt.Fprintf(w, "%-19s  %-24s  %-6s  %7s  %s\n",
				a.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(a.BankTitle, 24),
				a.Source,
				fmt.Sprintf("%d/%d", a.Score, a.Total),
				a.ID,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
