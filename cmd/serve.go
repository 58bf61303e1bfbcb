package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz page and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		bank, err := loadBank()
		if err != nil {
			return err
		}

		opts := web.Options{CORSOrigins: cfg.CORSOrigins, Logger: logger}
		if cfg.RecordAttempts {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			opts.Attempts = st.AttemptRepo()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("serving quiz", "addr", cfg.HTTPAddr, "bank", bank.Title(), "questions", bank.Len())
		err = web.Serve(ctx, web.ServeConfig{
			Addr:            cfg.HTTPAddr,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}, web.NewServer(bank, opts).Handler())
		if err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZBOX_ADDR)")
}
