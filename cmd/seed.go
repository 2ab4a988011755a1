package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinoosan/ncnews/internal/seed"
)

var resetBeforeSeed bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the development fixtures into the configured persistent STORE",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		p, ok := store.(persistent)
		if !ok {
			return fmt.Errorf("seed needs STORE=postgres or STORE=mongodb; the memory store seeds itself when DEV_SEED is on")
		}
		if err := applySchema(ctx, p); err != nil {
			return err
		}
		if resetBeforeSeed {
			if err := p.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		docs, err := seed.Load(ctx, p, seed.Default())
		if err != nil {
			return err
		}
		logDevSeed(appLogger, docs)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&resetBeforeSeed, "reset", false, "drop every document before loading fixtures")
}
