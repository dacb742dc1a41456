package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Mdlrc holds the settings of an .mdlrc file that affect style resolution.
type Mdlrc struct {
	// Path is the file the settings were read from.
	Path string

	// Style is a style file path or built-in style name.
	Style string

	// Rules and Tags are filter specs as accepted by --rules and --tags.
	Rules []string
	Tags  []string

	// IgnoreFrontMatter is carried for completeness; it does not affect the style.
	IgnoreFrontMatter bool

	// Warnings lists settings that were present but not understood.
	Warnings []string
}

// mdlrcIgnoredKeys are mdl settings that have no bearing on style resolution.
//
//nolint:gochecknoglobals // Read-only lookup table.
var mdlrcIgnoredKeys = map[string]bool{
	"docs":                 true,
	"git_recurse":          true,
	"json":                 true,
	"rulesets":             true,
	"show_aliases":         true,
	"skip_default_ruleset": true,
	"verbose":              true,
	"warnings":             true,
}

// LoadMdlrc reads an .mdlrc file. It uses the same statement syntax as
// style files: `style 'path'`, `rules 'MD001,~MD013'`.
func LoadMdlrc(path string) (*Mdlrc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mdlrc: %w", err)
	}

	stmts, err := style.ParseStatements(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse mdlrc: %w", err)
	}

	rc := &Mdlrc{Path: path}
	for _, stmt := range stmts {
		if len(stmt.Args) != 1 || len(stmt.Options) > 0 {
			rc.Warnings = append(rc.Warnings,
				fmt.Sprintf("%s: %s takes exactly one value; ignoring", stmt.Pos, stmt.Name))
			continue
		}
		value := stmt.Args[0]

		switch stmt.Name {
		case "style":
			name, ok := value.(string)
			if !ok {
				rc.Warnings = append(rc.Warnings, fmt.Sprintf("%s: style must be a string; ignoring", stmt.Pos))
				continue
			}
			rc.Style = resolveStylePath(path, name)
		case "rules":
			rc.Rules = filterSpecs(value)
		case "tags":
			rc.Tags = filterSpecs(value)
		case "ignore_front_matter":
			b, ok := value.(bool)
			if !ok {
				rc.Warnings = append(rc.Warnings,
					fmt.Sprintf("%s: ignore_front_matter must be true or false; ignoring", stmt.Pos))
				continue
			}
			rc.IgnoreFrontMatter = b
		default:
			if !mdlrcIgnoredKeys[stmt.Name] {
				rc.Warnings = append(rc.Warnings, fmt.Sprintf("%s: unknown setting %q", stmt.Pos, stmt.Name))
			}
		}
	}

	return rc, nil
}

// Filter returns the rule and tag filter named by the mdlrc.
func (rc *Mdlrc) Filter() ruleset.Filter {
	if rc == nil {
		return ruleset.Filter{}
	}
	return ruleset.Filter{Rules: rc.Rules, Tags: rc.Tags}
}

// resolveStylePath resolves a style path relative to the mdlrc that names it.
// Names without a path separator or .rb suffix are left alone so they can
// refer to built-in styles.
func resolveStylePath(mdlrcPath, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	if !strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/') &&
		!strings.HasSuffix(name, ".rb") {
		return name
	}
	if strings.HasPrefix(name, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, name[2:])
		}
	}
	return filepath.Join(filepath.Dir(mdlrcPath), name)
}

// filterSpecs accepts either a comma-separated string or an array of names.
func filterSpecs(value any) []string {
	switch typed := value.(type) {
	case string:
		return ruleset.ParseFilter(typed)
	case style.Symbol:
		return ruleset.ParseFilter(string(typed))
	case []any:
		var specs []string
		for _, item := range typed {
			switch name := item.(type) {
			case string:
				specs = append(specs, ruleset.ParseFilter(name)...)
			case style.Symbol:
				specs = append(specs, string(name))
			}
		}
		return specs
	default:
		return nil
	}
}
