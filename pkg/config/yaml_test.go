package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/config"
)

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()
		disabled := false
		cfg := &config.Config{
			Flavor:          config.FlavorGFM,
			SeverityDefault: "warning",
			Rules: map[string]config.RuleConfig{
				"MD007": {Enabled: &disabled},
			},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "severity_default: warning")
		assert.Contains(t, string(data), "  MD007:\n    enabled: false\n")
		assert.NotContains(t, string(data), "options")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Equal(t, "# generated\n\nflavor: commonmark\nseverity_default: warning\n", string(data))

		data, err = config.NewConfig().ToYAMLWithHeader("# one\n# two\n\n")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# one\n# two\n\nflavor:"))
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		disabled := false
		original := config.NewConfig()
		original.Rules["no-inline-html"] = config.RuleConfig{Enabled: &disabled}
		original.Rules["line-length"] = config.RuleConfig{Options: map[string]any{"max": 100, "tables": false}}

		data, err := original.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		original.RuleFormat = ""
		assert.Equal(t, original, parsed)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`
flavor: gfm
severity_default: error
rules:
  MD013:
    options:
      max: 80
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, "error", cfg.SeverityDefault)
		require.Contains(t, cfg.Rules, "MD013")
		assert.Equal(t, 80, cfg.Rules["MD013"].Options["max"])
		assert.Nil(t, cfg.Rules["MD013"].Enabled)
	})

	t.Run("initializes empty Rules map", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`flavor: commonmark`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("rules: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})
}
