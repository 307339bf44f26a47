package config

import "testing"

func TestStoreTypeRejectsMultipleDrivers(t *testing.T) {
	s := Store{
		"filesystem": Parameters{"rootdirectory": "/tmp"},
		"memcached":  Parameters{"servers": "localhost:11211"},
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Type: want panic when more than one driver is configured")
		}
	}()
	s.Type()
}

func TestStoreTypeAndParameters(t *testing.T) {
	s := Store{
		"filesystem": Parameters{"rootdirectory": "/var/lib/kvfs"},
		"cache":      Parameters{"memory": Parameters{"size": 1000}},
	}

	if got, want := s.Type(), "filesystem"; got != want {
		t.Fatalf("Type() = %q, want %q", got, want)
	}
	params := s.Parameters()
	if params["rootdirectory"] != "/var/lib/kvfs" {
		t.Fatalf("Parameters() = %v", params)
	}
}

func TestParseRejectsWrongVersion(t *testing.T) {
	p := NewParser("KVFS")
	_, err := p.Parse([]byte("version: \"9.9\"\nstore:\n  filesystem:\n    rootdirectory: /tmp\n"))
	if err == nil {
		t.Fatal("Parse: want error for unsupported version")
	}
}

func TestParseAppliesEnvironmentOverride(t *testing.T) {
	t.Setenv("KVFS_LOG_LEVEL", "debug")

	yaml := "version: \"1.0\"\nlog:\n  level: info\nstore:\n  filesystem:\n    rootdirectory: /tmp\n"
	p := NewParser("KVFS")
	cfg, err := p.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want %q (env override)", cfg.Log.Level, "debug")
	}
}

func TestParseValidConfiguration(t *testing.T) {
	yaml := `
version: "1.0"
log:
  level: info
  formatter: text
store:
  filesystem:
    rootdirectory: /var/lib/kvfs
reporting:
  bugsnag:
    apikey: testkey
`
	p := NewParser("KVFS")
	cfg, err := p.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Store.Type() != "filesystem" {
		t.Fatalf("Store.Type() = %q, want filesystem", cfg.Store.Type())
	}
	if cfg.Reporting.Bugsnag.APIKey != "testkey" {
		t.Fatalf("Reporting.Bugsnag.APIKey = %q, want testkey", cfg.Reporting.Bugsnag.APIKey)
	}
}
