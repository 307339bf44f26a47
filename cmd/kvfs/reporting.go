package main

import (
	logstash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/bugsnag/bugsnag-go"
	"github.com/sirupsen/logrus"

	"github.com/rsbellis/kvfs/config"
)

// configureReporting wires up bugsnag panic/error reporting from cfg,
// grounded on cmd/registry/main.go's configureReporting. It is a no-op
// unless an API key is configured.
func configureReporting(cfg *config.Configuration) {
	if cfg.Reporting.Bugsnag.APIKey == "" {
		return
	}

	bugsnagConfig := bugsnag.Configuration{
		APIKey: cfg.Reporting.Bugsnag.APIKey,
	}
	if cfg.Reporting.Bugsnag.ReleaseStage != "" {
		bugsnagConfig.ReleaseStage = cfg.Reporting.Bugsnag.ReleaseStage
	}
	if cfg.Reporting.Bugsnag.Endpoint != "" {
		bugsnagConfig.Endpoint = cfg.Reporting.Bugsnag.Endpoint
	}
	bugsnag.Configure(bugsnagConfig)
}

// logstashFormatter returns the logrus formatter used when
// config.Log.Formatter is "logstash".
func logstashFormatter() logrus.Formatter {
	return &logstash.LogstashFormatter{Formatter: &logrus.JSONFormatter{}}
}
