package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths holds the configuration files found for a working directory.
// Missing files are empty strings.
type Paths struct {
	// Style is the nearest style file at or above the working directory.
	Style string

	// Mdlrc is the .mdlrc in the working directory or the home directory.
	Mdlrc string

	// Markdownlint is a markdownlint config file in the working directory.
	Markdownlint string
}

// mdlrcName is the name of mdl's own configuration file.
const mdlrcName = ".mdlrc"

// Markdownlint configuration formats, by file extension.
const (
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatJavaScript = "javascript"
	FormatUnknown    = "unknown"
)

// styleFileNames lists the style file names mdl accepts, preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var styleFileNames = []string{".mdl_style.rb", "mdl_style.rb"}

// markdownlintConfigFiles lists the markdownlint config names offered for import.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.jsonc",
	".markdownlint.yaml",
	".markdownlint.yml",
	".markdownlint.cjs",
	".markdownlint.mjs",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the style file, .mdlrc and markdownlint config
// relevant to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*Paths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	stylePath, err := FindStyleFile(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &Paths{
		Style:        stylePath,
		Mdlrc:        FindMdlrc(workDir),
		Markdownlint: FindMarkdownlintConfig(workDir),
	}, nil
}

// FindStyleFile searches upward from startDir for a style file and returns
// the first one found, or "". The search stops after a VCS root or the
// home directory.
func FindStyleFile(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstExisting(dir, styleFileNames); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindMdlrc returns dir/.mdlrc if present, otherwise ~/.mdlrc, otherwise "".
func FindMdlrc(dir string) string {
	if dir != "" {
		if found := firstExisting(dir, []string{mdlrcName}); found != "" {
			return found
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return firstExisting(home, []string{mdlrcName})
}

// FindMarkdownlintConfig returns the first markdownlint config file in dir,
// or "".
func FindMarkdownlintConfig(dir string) string {
	return firstExisting(dir, markdownlintConfigFiles)
}

// DetectConfigFormat classifies a markdownlint config file by extension.
func DetectConfigFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cjs", ".mjs":
		return FormatJavaScript
	default:
		return FormatUnknown
	}
}

// IsJavaScriptConfig reports whether path is a markdownlint config that
// only Node can evaluate.
func IsJavaScriptConfig(path string) bool {
	return DetectConfigFormat(path) == FormatJavaScript
}

// IsJSONConfig reports whether path is a JSON or JSONC config.
func IsJSONConfig(path string) bool {
	return DetectConfigFormat(path) == FormatJSON
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// isVCSRoot reports whether dir holds a repository marker. Git worktrees
// and submodules use a .git file instead of a directory.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err != nil {
			continue
		}
		if info.IsDir() || (marker == ".git" && info.Mode().IsRegular()) {
			return true
		}
	}
	return false
}
