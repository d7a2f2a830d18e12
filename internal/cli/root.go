// Package cli is the taskboard command tree.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/logger"
)

type App struct {
	ConfigPath string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Team task dashboard service and terminal view",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Run the HTTP service (default)
  taskboard

  # Bootstrap the schema and exit
  taskboard migrate

  # Show upcoming tasks from a running service, refreshing every 30s
  taskboard view --tab upcoming --watch
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TASKBOARD_CONFIG", "config.yaml"), "Path to an optional YAML config file")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newMigrateCmd(app))
	cmd.AddCommand(newViewCmd(app))

	return cmd
}

func loadConfig(app *App) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
