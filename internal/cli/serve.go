package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskboard/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(app)
		},
	}
}

func runServe(app *App) error {
	cfg, log, err := loadConfig(app)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := server.Init(cfg, log)
	if err != nil {
		log.Error("❌ Server initialization failed", zap.Error(err))
		return err
	}
	return s.Run()
}
