package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", c.Format, DefaultFormat)
	}
	if c.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", c.BatchSize, DefaultBatchSize)
	}
	if c.MaxRecords != 0 {
		t.Errorf("MaxRecords = %d, want 0", c.MaxRecords)
	}
}

// TestConfigValidate tests configuration validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// valid returns a minimal passing configuration.
	valid := func() *Config {
		c := NewConfig()
		c.Inputs = []string{"dump.txt"}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:    "no input files",
			mutate:  func(c *Config) { c.Inputs = nil },
			wantErr: ErrNoInput,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative max records",
			mutate:  func(c *Config) { c.MaxRecords = -1 },
			wantErr: ErrInvalidMaxRecords,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "tsv" },
			wantErr: ErrInvalidFormat,
		},
		{
			name:   "hash format is accepted",
			mutate: func(c *Config) { c.Format = "hash" },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestGetSourceConfig tests per-dump configuration merging.
func TestGetSourceConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SourceConfig{Format: "auto", Charset: "utf-8"},
		Sources: map[string]SourceConfig{
			"csdn.txt": {Format: "hash", Charset: "gbk", Label: "csdn-2011"},
			"half.txt": {Charset: "latin-1"},
		},
	}

	t.Run("per-dump overrides defaults", func(t *testing.T) {
		t.Parallel()

		sc := cf.GetSourceConfig("csdn.txt")
		if sc.Format != "hash" || sc.Charset != "gbk" || sc.Label != "csdn-2011" {
			t.Errorf("unexpected config: %+v", sc)
		}
	})

	t.Run("partial override keeps remaining defaults", func(t *testing.T) {
		t.Parallel()

		sc := cf.GetSourceConfig("half.txt")
		if sc.Format != "auto" {
			t.Errorf("Format = %q, want inherited auto", sc.Format)
		}
		if sc.Charset != "latin-1" {
			t.Errorf("Charset = %q, want latin-1", sc.Charset)
		}
	})

	t.Run("unknown dump gets defaults", func(t *testing.T) {
		t.Parallel()

		sc := cf.GetSourceConfig("unknown.txt")
		if sc.Format != "auto" || sc.Charset != "utf-8" || sc.Label != "" {
			t.Errorf("unexpected config: %+v", sc)
		}
	})
}

// TestLoadConfigFile tests YAML config loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads valid file", func(t *testing.T) {
		t.Parallel()

		content := `defaults:
  format: auto
sources:
  csdn.txt:
    format: hash
    charset: gbk
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Defaults.Format != "auto" {
			t.Errorf("Defaults.Format = %q", cf.Defaults.Format)
		}
		if sc := cf.Sources["csdn.txt"]; sc.Format != "hash" || sc.Charset != "gbk" {
			t.Errorf("csdn.txt config = %+v", sc)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sources: [not a map"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})

	t.Run("empty file yields usable config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Sources == nil {
			t.Error("expected initialized Sources map")
		}
	})
}

// TestFindConfigFile tests config file discovery with an explicit path.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}

// TestXDGDirs tests that XDG paths end with the application name.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if filepath.Base(XDGDataDir()) != AppName {
		t.Errorf("XDGDataDir = %q", XDGDataDir())
	}
	if filepath.Base(XDGConfigDir()) != AppName {
		t.Errorf("XDGConfigDir = %q", XDGConfigDir())
	}
}
