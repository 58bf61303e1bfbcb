package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay loads the bank and launches the terminal UI. History is optional:
// if the store cannot be opened the quiz still runs.
func runPlay(cmd *cobra.Command) error {
	bank, err := loadBank()
	if err != nil {
		return err
	}

	var attempts store.AttemptRepo
	if cfg.RecordAttempts {
		st, err := openStore(cmd)
		if err != nil {
			logger.Warn("attempt history unavailable", "error", err)
		} else {
			defer st.Close()
			attempts = st.AttemptRepo()
		}
	}

	return app.Run(bank, attempts, cmd.InOrStdin(), cmd.OutOrStdout())
}
