package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

var (
	cfg    config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:          "quizbox",
	Short:        "Quiz runner for the terminal and the browser",
	Long:         "Quizbox renders a question bank as a quiz, grades the answers and keeps a history of attempts.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Question bank file, JSON or YAML (overrides QUIZBOX_BANK)")
	rootCmd.PersistentFlags().String("db", "", "Attempt history database (overrides QUIZBOX_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env, reads the environment and applies flag overrides.
func setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg = config.FromEnv()
	flags := cmd.Flags()
	if v, _ := flags.GetString("bank"); v != "" {
		cfg.BankPath = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBDSN = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}

	l, err := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// loadBank returns the configured bank, or the built-in one when no file
// is set. A bank path that does not exist yet is seeded with the built-in
// bank so it can be edited.
func loadBank() (quiz.Bank, error) {
	if cfg.BankPath == "" {
		return quiz.DefaultBank(), nil
	}
	b, created, err := quiz.LoadOrCreate(cfg.BankPath)
	if err != nil {
		return quiz.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	if created {
		logger.Info("wrote default bank", "path", cfg.BankPath)
	}
	logger.Debug("bank loaded", "path", cfg.BankPath, "questions", b.Len())
	return b, nil
}

// openStore opens the history database. An empty SQLite DSN resolves to
// the default data directory.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	driver := store.Driver(cfg.DBDriver)
	dsn := cfg.DBDSN
	if driver == store.DriverSQLite || driver == "" {
		var err error
		if dsn == "" {
			dsn, err = store.DefaultDBPath()
		} else {
			err = store.EnsureDir(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	st, err := store.OpenDriver(cmd.Context(), driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
