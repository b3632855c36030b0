package config

// SourceConfig holds per-dump configuration for a single dump file.
// This allows pinning the layout and encoding of known dumps so they
// never depend on auto-detection.
type SourceConfig struct {
	// Format is the dump line layout: "auto", "colon", or "hash".
	// If empty, the global format is used.
	Format string `yaml:"format,omitempty"`

	// Charset is the dump's source encoding (e.g. "gbk").
	// If empty, the global charset is used.
	Charset string `yaml:"charset,omitempty"`

	// Label overrides the source name shown in reports and stored in
	// the database. Useful when the file name is an opaque hash.
	Label string `yaml:"label,omitempty"`
}

// File represents the structure of the .credscan configuration file.
type File struct {
	// Sources maps dump file names (base name, not full path) to their
	// per-dump configurations.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults contains default source configuration applied to all
	// dumps unless overridden in the per-dump configuration.
	Defaults SourceConfig `yaml:"defaults,omitempty"`
}

// GetSourceConfig returns the configuration for a specific dump file.
// It merges the per-dump configuration with defaults.
func (cf *File) GetSourceConfig(name string) SourceConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with per-dump configuration if present
	if sc, ok := cf.Sources[name]; ok {
		if sc.Format != "" {
			result.Format = sc.Format
		}
		if sc.Charset != "" {
			result.Charset = sc.Charset
		}
		if sc.Label != "" {
			result.Label = sc.Label
		}
	}

	return result
}
