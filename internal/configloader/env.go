package configloader

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/yaklabco/mdlstyle/pkg/ruleset"
)

// envPrefix is the prefix for all mdlstyle environment variables.
const envPrefix = "MDLSTYLE"

// Env holds settings read from MDLSTYLE_* environment variables.
type Env struct {
	// Style is a style file path or built-in style name.
	Style string `envconfig:"STYLE"`

	// Rules and Tags are comma-separated filter specs.
	Rules string `envconfig:"RULES"`
	Tags  string `envconfig:"TAGS"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnv reads the MDLSTYLE_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &env, nil
}

// Filter returns the rule and tag filter named by the environment.
func (e *Env) Filter() ruleset.Filter {
	if e == nil {
		return ruleset.Filter{}
	}
	return ruleset.Filter{
		Rules: ruleset.ParseFilter(e.Rules),
		Tags:  ruleset.ParseFilter(e.Tags),
	}
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MDLSTYLE_STYLE":     "Style file path or built-in style name",
		"MDLSTYLE_RULES":     "Comma-separated rule filter, ~ prefix excludes",
		"MDLSTYLE_TAGS":      "Comma-separated tag filter, ~ prefix excludes",
		"MDLSTYLE_LOG_LEVEL": "Log level: debug, info, warn, or error",
	}
}
