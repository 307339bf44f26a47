// Package config defines kvfs's versioned YAML configuration, grounded on
// configuration/configuration.go: a top-level Configuration struct with a
// Version field, a Store map keyed by driver name to its parameter bag
// (mirroring the teacher's Storage type and its single-key-selects-the-
// driver convention), and sections for logging, caching, notifications,
// and health. Scalar struct fields may be overridden from the
// environment; slices (such as notification endpoints) and map entries
// (such as driver and cache parameters) are not.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Version is a major.minor configuration format version.
type Version string

// MajorMinorVersion constructs a Version from its components.
func MajorMinorVersion(major, minor uint) Version {
	return Version(fmt.Sprintf("%d.%d", major, minor))
}

// CurrentVersion is the only configuration version this build understands.
var CurrentVersion = MajorMinorVersion(1, 0)

// Configuration is kvfs's top-level configuration, read from a YAML file
// and then optionally overridden from the environment (see Parse).
type Configuration struct {
	Version Version `yaml:"version"`

	Log Log `yaml:"log,omitempty"`

	// Store selects and configures the storage driver. Exactly one key
	// (other than "cache") must be present, naming a driver registered
	// with store/factory, e.g.:
	//   store:
	//     filesystem:
	//       rootdirectory: /var/lib/kvfs
	Store Store `yaml:"store"`

	Notifications Notifications `yaml:"notifications,omitempty"`

	Health Health `yaml:"health,omitempty"`

	Reporting Reporting `yaml:"reporting,omitempty"`
}

// Log configures the ambient logging subsystem (internal/kvlog).
type Log struct {
	// Level is the minimum severity logged: one of error, warn, info, debug.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter selects the logrus formatter: "text", "json", or
	// "logstash" (the last via github.com/bshuster-repo/logrus-logstash-hook).
	Formatter string `yaml:"formatter,omitempty"`

	// Fields are static key/value pairs attached to every log entry.
	Fields map[string]interface{} `yaml:"fields,omitempty"`
}

// Loglevel is a validated logging severity.
type Loglevel string

// UnmarshalYAML lowercases and validates the configured level.
func (l *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.ToLower(s)
	switch s {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("config: invalid log level %q, must be one of [error, warn, info, debug]", s)
	}
	*l = Loglevel(s)
	return nil
}

// Parameters is an opaque driver-specific parameter bag, passed straight
// through to store/factory.Create.
type Parameters map[string]interface{}

// Store selects and configures exactly one registered store.Driver.
// "cache" is reserved for store/storecache configuration and does not
// itself count as a driver selection.
type Store map[string]Parameters

// Type returns the configured driver name, or "" if none is set. It
// panics if more than one driver key is present, since that is always a
// configuration mistake, not a runtime condition.
func (s Store) Type() string {
	var names []string
	for k := range s {
		if k == "cache" {
			continue
		}
		names = append(names, k)
	}
	if len(names) > 1 {
		panic("config: multiple storage drivers configured: " + strings.Join(names, ", "))
	}
	if len(names) == 1 {
		return names[0]
	}
	return ""
}

// Parameters returns the parameter bag for the configured driver.
func (s Store) Parameters() Parameters {
	return s[s.Type()]
}

// CacheParameters returns the parameter bag for store/storecache, if any.
func (s Store) CacheParameters() Parameters {
	return s["cache"]
}

// UnmarshalYAML accepts either a one-key map (driver name -> parameters)
// or a bare string (a driver name with no parameters), mirroring the
// teacher's Storage.UnmarshalYAML.
func (s *Store) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var asMap map[string]Parameters
	if err := unmarshal(&asMap); err == nil {
		names := 0
		for k := range asMap {
			if k != "cache" {
				names++
			}
		}
		if names > 1 {
			return fmt.Errorf("config: must configure exactly one storage driver, found %d", names)
		}
		*s = asMap
		return nil
	}

	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	*s = Store{name: Parameters{}}
	return nil
}

// Notifications configures put-event delivery (notify package).
type Notifications struct {
	Endpoints []Endpoint `yaml:"endpoints,omitempty"`
}

// Endpoint describes one webhook destination for put events.
type Endpoint struct {
	Name      string        `yaml:"name"`
	Disabled  bool          `yaml:"disabled"`
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	Threshold int           `yaml:"threshold"`
	Backoff   time.Duration `yaml:"backoff"`
}

// Health configures the health package's driver check.
type Health struct {
	StorageDriver StorageDriverCheck `yaml:"storagedriver,omitempty"`
}

// StorageDriverCheck configures the periodic store round-trip check.
type StorageDriverCheck struct {
	Enabled   bool          `yaml:"enabled,omitempty"`
	Interval  time.Duration `yaml:"interval,omitempty"`
	Threshold int           `yaml:"threshold,omitempty"`
}

// Reporting configures the optional crash/error reporting integrations
// cmd/kvfs wires up, grounded on cmd/registry/main.go's
// configureReporting: both are no-ops unless configured.
type Reporting struct {
	Bugsnag BugsnagReporting `yaml:"bugsnag,omitempty"`
}

// BugsnagReporting configures github.com/bugsnag/bugsnag-go panic/error
// reporting. Reporting is disabled unless APIKey is set.
type BugsnagReporting struct {
	APIKey       string `yaml:"apikey,omitempty"`
	ReleaseStage string `yaml:"releasestage,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
}
