// Package config defines the export targets a style can be converted to:
// gomdlint's YAML configuration and markdownlint's JSON configuration.
// These types are pure data structures with no dependency on how a style
// was loaded.
package config

// Severity represents the severity level gomdlint reports a rule with.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "line-length"
	RuleFormatID       RuleFormat = "id"       // "MD013"
	RuleFormatCombined RuleFormat = "combined" // "MD013/line-length"
)

// IsValid reports whether f is one of the known formats.
func (f RuleFormat) IsValid() bool {
	return f == RuleFormatName || f == RuleFormatID || f == RuleFormatCombined
}

// Key renders a rule identifier in format f. Unknown formats and rules
// without a name use the ID.
func (f RuleFormat) Key(id, name string) string {
	switch {
	case name == "":
		return id
	case f == RuleFormatName:
		return name
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return id
	}
}

// Flavor specifies the Markdown flavor gomdlint parses with.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Config is the root of a gomdlint configuration file.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// RuleFormat controls how rule keys are written. Not persisted.
	RuleFormat RuleFormat `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		RuleFormat:      RuleFormatID,
	}
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
