package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snoozectl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// No config file: everything comes from defaults.
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("api.base_url = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("api.timeout = %s, want 10s", cfg.API.Timeout)
	}
	if cfg.Session.File == "" {
		t.Error("session.file default must not be empty")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
	if !cfg.Output.Colors {
		t.Error("output.colors should default to true")
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://stories.internal.example
  timeout: 3s
logging:
  level: debug
output:
  colors: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://stories.internal.example" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("api.timeout = %s, want 3s", cfg.API.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Output.Colors {
		t.Error("output.colors should be false")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad base url",
			content: `
api:
  base_url: "not a url"
`,
		},
		{
			name: "empty base url",
			content: `
api:
  base_url: ""
`,
		},
		{
			name: "negative timeout",
			content: `
api:
  timeout: -5s
`,
		},
		{
			name: "bad logging level",
			content: `
logging:
  level: loud
`,
		},
		{
			name: "bad logging format",
			content: `
logging:
  format: xml
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
