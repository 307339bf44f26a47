package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsbellis/kvfs/stream"
)

var putCmd = &cobra.Command{
	Use:   "put <config.yaml> <file>",
	Short: "stream a file into the store, printing its root key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(args[0])
		if err != nil {
			fatalf("%v", err)
		}

		s, err := buildStore(cfg)
		if err != nil {
			fatalf("%v", err)
		}

		f, err := os.Open(args[1])
		if err != nil {
			fatalf("kvfs: open %s: %v", args[1], err)
		}
		defer f.Close()

		ctx := context.Background()
		w := stream.NewWriter(ctx, s)
		if _, err := io.Copy(w, f); err != nil {
			fatalf("kvfs: write: %v", err)
		}
		if _, err := w.Close(); err != nil {
			fatalf("kvfs: close: %v", err)
		}

		key, ok := s.Last()
		if !ok {
			fatalf("kvfs: empty stream has no root key")
		}
		fmt.Println(key.String())
	},
}
