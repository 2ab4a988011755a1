package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinoosan/ncnews/internal/config"
	"github.com/tinoosan/ncnews/internal/logger"
)

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "ncnews",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "News API: topics, articles, comments and users",
	Long:              `ncnews serves the topics/articles/comments/users JSON API. Without a subcommand it runs the server.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}
		appLogger = logger.New(os.Stdout, logger.ParseLogLevel(cfg.LogLevel), cfg.LogFormat, cfg.Environment)
		slog.SetDefault(appLogger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
