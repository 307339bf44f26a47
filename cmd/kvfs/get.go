package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/stream"
)

var getCmd = &cobra.Command{
	Use:   "get <config.yaml> <key> <file>",
	Short: "fetch the tree rooted at key, writing its contents to a file",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(args[0])
		if err != nil {
			fatalf("%v", err)
		}

		s, err := buildStore(cfg)
		if err != nil {
			fatalf("%v", err)
		}

		key, err := chunk.ParseKey(args[1])
		if err != nil {
			fatalf("kvfs: parse key %s: %v", args[1], err)
		}

		out, err := os.Create(args[2])
		if err != nil {
			fatalf("kvfs: create %s: %v", args[2], err)
		}
		defer out.Close()

		ctx := context.Background()
		r, err := stream.NewReader(ctx, s, key)
		if err != nil {
			fatalf("kvfs: open %s: %v", key, err)
		}

		if _, err := io.Copy(out, r); err != nil {
			fatalf("kvfs: read: %v", err)
		}
	},
}
