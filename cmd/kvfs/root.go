// Command kvfs is the CLI front end for the content-addressed chunk
// store: it streams files through stream.Writer/stream.Reader against a
// configured store.Store and runs the registered health checks.
//
// Grounded on registry/root.go's cobra RootCmd/subcommand layout and
// cmd/registry/main.go's configuration resolution, logging, and reporting
// wiring, adapted from an HTTP server entrypoint to a one-shot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rsbellis/kvfs/config"
	"github.com/rsbellis/kvfs/internal/kvlog"
	"github.com/rsbellis/kvfs/version"
)

var showVersion bool

func init() {
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")
}

var rootCmd = &cobra.Command{
	Use:   "kvfs",
	Short: "kvfs is a content-addressed chunked object store",
	Long:  "kvfs is a content-addressed chunked object store",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.PrintVersion()
			return
		}
		//nolint:errcheck
		cmd.Usage()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads and parses the YAML configuration file at path,
// applying KVFS_-prefixed environment variable overrides.
func loadConfig(path string) (*config.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kvfs: read configuration %s: %w", path, err)
	}

	cfg, err := config.NewParser("KVFS").Parse(data)
	if err != nil {
		return nil, fmt.Errorf("kvfs: parse configuration %s: %w", path, err)
	}

	configureLogging(cfg)
	configureReporting(cfg)
	return cfg, nil
}

// configureLogging applies cfg.Log to the process-default logrus logger,
// grounded on cmd/registry/main.go's configureLogging.
func configureLogging(cfg *config.Configuration) {
	level, err := logrus.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch cfg.Log.Formatter {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logstash":
		logrus.SetFormatter(logstashFormatter())
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	logger := logrus.StandardLogger().WithField("version", version.Version())
	if len(cfg.Log.Fields) > 0 {
		logger = logger.WithFields(cfg.Log.Fields)
	}
	kvlog.SetDefaultLogger(logger)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
