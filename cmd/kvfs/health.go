package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsbellis/kvfs/health"
)

var healthCmd = &cobra.Command{
	Use:   "health <config.yaml>",
	Short: "run the registered health checks against a configured store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(args[0])
		if err != nil {
			fatalf("%v", err)
		}

		s, err := buildStore(cfg)
		if err != nil {
			fatalf("%v", err)
		}

		health.Register("store", health.NewStoreChecker(s, cfg.Store.Type()))

		ctx := context.Background()
		failures := health.CheckStatus(ctx)
		if len(failures) == 0 {
			fmt.Println("ok")
			return
		}

		for name, reason := range failures {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, reason)
		}
		os.Exit(1)
	},
}
