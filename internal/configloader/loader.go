// Package configloader resolves which style applies to a working directory.
// It implements style file discovery, .mdlrc and environment variable
// support, rule filtering, validation, and markdownlint import.
package configloader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/mdlstyle"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// styleFilePermissions is the file mode for written style files (world-readable).
const styleFilePermissions = 0o644

// SourceKind records where the resolved style came from.
type SourceKind int

const (
	SourceDefault SourceKind = iota
	SourceExplicit
	SourceEnv
	SourceMdlrc
	SourceDiscovered
	SourceImported
)

// String returns a short description of the source.
func (k SourceKind) String() string {
	switch k {
	case SourceExplicit:
		return "explicit"
	case SourceEnv:
		return "environment"
	case SourceMdlrc:
		return "mdlrc"
	case SourceDiscovered:
		return "discovered"
	case SourceImported:
		return "imported"
	default:
		return "default"
	}
}

// LoadOptions controls style resolution.
type LoadOptions struct {
	// WorkingDir is the directory to search from.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is a style path or built-in name from --style.
	ExplicitPath string

	// Rules and Tags are filter specs from --rules and --tags.
	Rules string
	Tags  string

	// Registry defaults to rules.DefaultRegistry.
	Registry *rules.Registry

	// Strict turns unknown rules and tags in the style into errors.
	Strict bool

	// IgnoreEnv skips MDLSTYLE_* environment variables.
	IgnoreEnv bool

	// IgnoreMdlrc skips .mdlrc files.
	IgnoreMdlrc bool

	// IgnoreDiscovery skips searching for a style file.
	IgnoreDiscovery bool

	// IgnoreMarkdownlint skips offering to import a markdownlint config.
	IgnoreMarkdownlint bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// Prompt and PromptOut replace stdin and stdout for the import prompt.
	Prompt    io.Reader
	PromptOut io.Writer
}

// LoadResult contains the resolved style and metadata.
type LoadResult struct {
	// Style is the parsed style.
	Style *style.Style

	// RuleSet is the evaluated style after rule and tag filters.
	RuleSet *ruleset.RuleSet

	// Unfiltered is the evaluated style before filters.
	Unfiltered *ruleset.RuleSet

	// Source is the style path, "builtin:<name>" or "embedded".
	Source string

	// SourceKind records which precedence level supplied the style.
	SourceKind SourceKind

	// Paths contains the discovered file paths.
	Paths *Paths

	// Mdlrc is the loaded .mdlrc, if any.
	Mdlrc *Mdlrc

	// Env holds the environment settings, if read.
	Env *Env

	// Filter is the filter applied to produce RuleSet.
	Filter ruleset.Filter

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the style for a working directory and evaluates it.
// Style precedence (highest to lowest):
//  1. Explicit path (opts.ExplicitPath)
//  2. MDLSTYLE_STYLE
//  3. `style` in .mdlrc
//  4. Style file found by upward search
//  5. Imported markdownlint config, when the user agrees
//  6. The embedded default style
//
// Rule and tag filters come from opts, then the environment, then .mdlrc.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	registry := opts.Registry
	if registry == nil {
		registry = rules.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{}

	if !opts.IgnoreEnv {
		env, err := LoadEnv()
		if err != nil {
			return nil, err
		}
		result.Env = env
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if !opts.IgnoreMdlrc && paths.Mdlrc != "" {
		rc, err := LoadMdlrc(paths.Mdlrc)
		if err != nil {
			return nil, err
		}
		result.Mdlrc = rc
		result.Warnings = append(result.Warnings, rc.Warnings...)
		logger.Debug("loaded mdlrc", logging.FieldMdlrc, rc.Path)
	}

	var envStyle, mdlrcStyle, discovered string
	if result.Env != nil {
		envStyle = result.Env.Style
	}
	if result.Mdlrc != nil {
		mdlrcStyle = result.Mdlrc.Style
	}
	if !opts.IgnoreDiscovery {
		discovered = paths.Style
	}

	ref, level := firstNonEmpty(opts.ExplicitPath, envStyle, mdlrcStyle, discovered)
	switch level {
	case 0:
		result.SourceKind = SourceExplicit
	case 1:
		result.SourceKind = SourceEnv
	case 2:
		result.SourceKind = SourceMdlrc
	case 3:
		result.SourceKind = SourceDiscovered
	default:
		if !opts.IgnoreMarkdownlint {
			imported, err := handleMarkdownlintImport(ctx, paths, result, opts, workDir)
			if err != nil {
				return nil, err
			}
			if imported != "" {
				ref = imported
				result.SourceKind = SourceImported
			}
		}
	}

	if ref == "" {
		s, err := mdlstyle.Default()
		if err != nil {
			return nil, err
		}
		result.Style = s
		result.Source = "embedded"
	} else {
		s, source, err := loadStyle(ref)
		if err != nil {
			return nil, fmt.Errorf("load %s style: %w", result.SourceKind, err)
		}
		result.Style = s
		result.Source = source
	}
	logger.Debug("resolved style",
		logging.FieldSource, result.SourceKind.String(),
		logging.FieldStyle, result.Source,
		logging.FieldDirectives, len(result.Style.Directives))

	if opts.Strict {
		rs, err := ruleset.Evaluate(result.Style, registry)
		if err != nil {
			return nil, fmt.Errorf("evaluate style: %w", err)
		}
		result.Unfiltered = rs
	} else {
		rs, warnings := ruleset.EvaluateLenient(result.Style, registry)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, w.String())
		}
		result.Unfiltered = rs
	}

	cliFilter := ruleset.Filter{
		Rules: ruleset.ParseFilter(opts.Rules),
		Tags:  ruleset.ParseFilter(opts.Tags),
	}
	result.Filter = mergeFilters(cliFilter, result.Env.Filter(), result.Mdlrc.Filter())

	result.RuleSet = result.Unfiltered
	if !result.Filter.IsEmpty() {
		filtered, err := result.Unfiltered.Apply(result.Filter)
		if err != nil {
			return nil, fmt.Errorf("apply filter: %w", err)
		}
		result.RuleSet = filtered
		logger.Debug("applied filter",
			logging.FieldRules, strings.Join(result.Filter.Rules, ","),
			logging.FieldTags, strings.Join(result.Filter.Tags, ","))
	}

	return result, nil
}

// BuiltinName returns the built-in style ref selects. A "builtin:" prefix
// always selects the built-in. A bare name selects it only when no file
// exists at that path.
func BuiltinName(ref string) (string, bool) {
	name, prefixed := strings.CutPrefix(ref, "builtin:")
	if !slices.Contains(mdlstyle.BuiltinNames(), name) {
		return "", false
	}
	if !prefixed {
		if info, err := os.Stat(ref); err == nil && info.Mode().IsRegular() {
			return "", false
		}
	}
	return name, true
}

// loadStyle loads a style file by path or a built-in style by name.
func loadStyle(ref string) (*style.Style, string, error) {
	if name, ok := BuiltinName(ref); ok {
		s, _, err := mdlstyle.Builtin(name)
		if err != nil {
			return nil, "", err
		}
		return s, "builtin:" + name, nil
	}

	s, err := style.ParseFile(ref)
	if err != nil {
		return nil, "", err
	}
	return s, ref, nil
}

// handleMarkdownlintImport offers to convert a markdownlint config when no
// style was found. It returns the path of the written style file, or "".
func handleMarkdownlintImport(
	ctx context.Context,
	paths *Paths,
	result *LoadResult,
	opts LoadOptions,
	workDir string,
) (string, error) {
	if paths.Markdownlint == "" {
		return "", nil
	}

	if IsJavaScriptConfig(paths.Markdownlint) {
		result.Warnings = append(result.Warnings, ImportRefusal(paths.Markdownlint))
		return "", nil
	}

	if opts.NonInteractive || (opts.Prompt == nil && !isInteractive()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no %s; run 'mdlstyle import' to convert",
				paths.Markdownlint, mdlstyle.DefaultStyleName))
		return "", nil
	}

	in := opts.Prompt
	if in == nil {
		in = os.Stdin
	}
	out := opts.PromptOut
	if out == nil {
		out = os.Stdout
	}

	shouldImport, err := promptImport(in, out, paths.Markdownlint)
	if err != nil {
		return "", err
	}
	if !shouldImport {
		return "", nil
	}

	migration, err := ImportMarkdownlintConfig(paths.Markdownlint)
	if err != nil {
		return "", fmt.Errorf("import markdownlint config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, mdlstyle.DefaultStyleName)
	content := style.FormatWithHeader(migration.Style, ImportHeader(paths.Markdownlint))
	if err := os.WriteFile(outputPath, content, styleFilePermissions); err != nil {
		return "", fmt.Errorf("write imported style: %w", err)
	}

	logging.FromContext(ctx).Info("imported markdownlint config",
		logging.FieldInput, paths.Markdownlint,
		logging.FieldOutput, outputPath)
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("imported %s to %s; you can now delete the old file", paths.Markdownlint, outputPath))

	return outputPath, nil
}

// promptImport asks the user if they want to import.
func promptImport(in io.Reader, out io.Writer, markdownlintPath string) (bool, error) {
	if _, err := fmt.Fprintf(out, "Found %s but no %s\nConvert to an mdl style? [Y/n] ",
		markdownlintPath, mdlstyle.DefaultStyleName); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || response == "") {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
