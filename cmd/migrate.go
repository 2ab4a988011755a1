package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinoosan/ncnews/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the postgres migrations or mongodb indexes for the configured STORE",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store == config.StoreMemory {
			return fmt.Errorf("migrate needs STORE=postgres or STORE=mongodb")
		}
		ctx := cmd.Context()
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := applySchema(ctx, store); err != nil {
			return err
		}
		appLogger.Info("schema applied", "store", cfg.Store)
		return nil
	},
}
