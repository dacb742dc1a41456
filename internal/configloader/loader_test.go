package configloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreEnv:          true,
		IgnoreMdlrc:        true,
		IgnoreMarkdownlint: true,
		NonInteractive:     true,
	}
}

func TestLoad_EmbeddedDefault(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.SourceKind != SourceDefault || result.Source != "embedded" {
		t.Errorf("expected embedded default, got %s %q", result.SourceKind, result.Source)
	}
	if result.RuleSet.Enabled("MD033") {
		t.Error("expected MD033 to be excluded by the default style")
	}
	if !result.RuleSet.Enabled("MD013") {
		t.Error("expected MD013 to be enabled by the default style")
	}
	if result.RuleSet != result.Unfiltered {
		t.Error("expected no filter to be applied")
	}
}

func TestLoad_DiscoveredStyle(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, ".mdl_style.rb"), "all\nexclude_rule 'MD041'\n")
	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.SourceKind != SourceDiscovered {
		t.Errorf("expected discovered style, got %s", result.SourceKind)
	}
	if result.Source != filepath.Join(root, ".mdl_style.rb") {
		t.Errorf("unexpected source %q", result.Source)
	}
	if result.RuleSet.Enabled("MD041") || !result.RuleSet.Enabled("MD033") {
		t.Error("discovered style was not applied")
	}
}

func TestFindStyleFile_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".mdl_style.rb"), "all\n")
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindStyleFile(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindStyleFile() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at VCS root, found %q", path)
	}
}

func TestFindStyleFile_StopsAtGitFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".mdl_style.rb"), "all\n")
	worktree := filepath.Join(root, "worktree")
	writeFile(t, filepath.Join(worktree, ".git"), "gitdir: ../.git/worktrees/feature\n")

	path, err := FindStyleFile(context.Background(), worktree)
	if err != nil {
		t.Fatalf("FindStyleFile() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the worktree root, found %q", path)
	}
}

func TestFindStyleFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FindStyleFile(ctx, t.TempDir()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestLoad_ExplicitBeatsDiscovered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mdl_style.rb"), "all\n")
	explicit := filepath.Join(dir, "strict.rb")
	writeFile(t, explicit, "rule 'MD013', :line_length => 100\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.SourceKind != SourceExplicit {
		t.Errorf("expected explicit source, got %s", result.SourceKind)
	}
	if got := result.RuleSet.EnabledIDs(); len(got) != 1 || got[0] != "MD013" {
		t.Errorf("expected only MD013 enabled, got %v", got)
	}
}

func TestLoad_BuiltinName(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.ExplicitPath = "default"

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Source != "builtin:default" {
		t.Errorf("unexpected source %q", result.Source)
	}
	if len(result.RuleSet.Excluded()) != 0 {
		t.Errorf("expected every rule enabled, excluded %v", result.RuleSet.Excluded())
	}
}

func TestLoad_FileShadowsBuiltinName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "default"), "rule 'MD013'\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = "default"

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Source != "default" {
		t.Errorf("expected the file to win, got source %q", result.Source)
	}
	if got := result.RuleSet.EnabledIDs(); len(got) != 1 || got[0] != "MD013" {
		t.Errorf("expected only MD013 enabled, got %v", got)
	}

	opts.ExplicitPath = "builtin:default"
	result, err = Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Source != "builtin:default" {
		t.Errorf("expected the builtin, got source %q", result.Source)
	}
}

func TestBuiltinName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "all"), "all\n")

	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"default", "default", true},
		{"builtin:mdlstyle", "mdlstyle", true},
		{"builtin:" + filepath.Join(dir, "all"), "", false},
		{filepath.Join(dir, "all"), "", false},
		{"strict.rb", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			got, ok := BuiltinName(tt.ref)
			if got != tt.want || ok != tt.ok {
				t.Errorf("BuiltinName(%q) = %q, %v; want %q, %v", tt.ref, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.rb")

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "load explicit style") {
		t.Fatalf("expected explicit load error, got %v", err)
	}
}

func TestLoad_StrictAndLenient(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "style.rb")
	writeFile(t, path, "all\nexclude_rule 'MD999'\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = path

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("lenient Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "MD999") {
		t.Errorf("expected one warning about MD999, got %v", result.Warnings)
	}

	opts.Strict = true
	if _, err := Load(context.Background(), opts); err == nil {
		t.Error("expected strict Load() to fail")
	}
}

func TestLoad_CLIFilter(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.Tags = "headers"
	opts.Rules = "~MD001,~MD025"

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.RuleSet.Enabled("MD001") {
		t.Error("expected MD001 excluded by rule filter")
	}
	if !result.RuleSet.Enabled("MD003") {
		t.Error("expected MD003 kept by tag filter")
	}
	if result.RuleSet.Enabled("MD013") {
		t.Error("expected MD013 dropped by tag filter")
	}
	if !result.Unfiltered.Enabled("MD013") {
		t.Error("expected unfiltered rule set to be untouched")
	}
}

func TestLoad_UnknownFilter(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.Rules = "MD999"

	if _, err := Load(context.Background(), opts); err == nil {
		t.Error("expected error for unknown rule filter")
	}
}

func TestLoad_EnvAndMdlrcPrecedence(t *testing.T) {
	// Not parallel because it modifies the environment.
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "styles", "rc.rb"), "all\nexclude_tag :headers\n")
	writeFile(t, filepath.Join(dir, ".mdlrc"), "style 'styles/rc.rb'\nrules 'MD001,MD013'\nverbose true\n")
	envStyle := filepath.Join(dir, "env.rb")
	writeFile(t, envStyle, "all\n")

	opts := LoadOptions{WorkingDir: dir, IgnoreMarkdownlint: true, NonInteractive: true}

	t.Setenv("MDLSTYLE_STYLE", "")
	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.SourceKind != SourceMdlrc {
		t.Errorf("expected mdlrc source, got %s", result.SourceKind)
	}
	if got := result.RuleSet.EnabledIDs(); len(got) != 1 || got[0] != "MD013" {
		t.Errorf("expected mdlrc filter to leave MD013, got %v", got)
	}

	t.Setenv("MDLSTYLE_STYLE", envStyle)
	t.Setenv("MDLSTYLE_RULES", "MD001")
	result, err = Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.SourceKind != SourceEnv {
		t.Errorf("expected env source, got %s", result.SourceKind)
	}
	if got := result.RuleSet.EnabledIDs(); len(got) != 1 || got[0] != "MD001" {
		t.Errorf("expected env filter to win, got %v", got)
	}

	opts.Rules = "MD047"
	result, err = Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := result.RuleSet.EnabledIDs(); len(got) != 1 || got[0] != "MD047" {
		t.Errorf("expected CLI filter to win, got %v", got)
	}
}

func TestLoad_ImportPrompt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{"MD013": false}`)

	var out bytes.Buffer
	opts := isolatedOptions(dir)
	opts.IgnoreMarkdownlint = false
	opts.NonInteractive = false
	opts.Prompt = strings.NewReader("y\n")
	opts.PromptOut = &out

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !strings.Contains(out.String(), "Convert to an mdl style?") {
		t.Errorf("expected prompt, got %q", out.String())
	}
	if result.SourceKind != SourceImported {
		t.Errorf("expected imported source, got %s", result.SourceKind)
	}
	if result.RuleSet.Enabled("MD013") {
		t.Error("expected imported exclusion of MD013")
	}

	written, err := style.ParseFile(filepath.Join(dir, ".mdl_style.rb"))
	if err != nil {
		t.Fatalf("parse written style: %v", err)
	}
	if !written.HasAll() {
		t.Error("expected written style to start with all")
	}
}

func TestLoad_ImportNonInteractive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "MD013: false\n")

	opts := isolatedOptions(dir)
	opts.IgnoreMarkdownlint = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.SourceKind != SourceDefault {
		t.Errorf("expected default source, got %s", result.SourceKind)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "mdlstyle import") {
		t.Errorf("expected import hint, got %v", result.Warnings)
	}
}

func TestLoadMdlrc(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mdlrc")
	writeFile(t, path, `style "#{File.dirname(__FILE__)}/custom.rb"
rules ['MD001', '~MD013']
tags "headers"
ignore_front_matter true
git_recurse true
frobnicate 3
`)

	rc, err := LoadMdlrc(path)
	if err != nil {
		t.Fatalf("LoadMdlrc() error = %v", err)
	}

	if rc.Style != filepath.Join(dir, "custom.rb") {
		t.Errorf("unexpected style %q", rc.Style)
	}
	if len(rc.Rules) != 2 || rc.Rules[1] != "~MD013" {
		t.Errorf("unexpected rules %v", rc.Rules)
	}
	if len(rc.Tags) != 1 || rc.Tags[0] != "headers" {
		t.Errorf("unexpected tags %v", rc.Tags)
	}
	if !rc.IgnoreFrontMatter {
		t.Error("expected ignore_front_matter")
	}
	if len(rc.Warnings) != 1 || !strings.Contains(rc.Warnings[0], "frobnicate") {
		t.Errorf("expected one warning about frobnicate, got %v", rc.Warnings)
	}
}

func TestResolveStylePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"relaxed", "relaxed"},
		{"style.rb", filepath.Join("/project", "style.rb")},
		{"styles/custom", filepath.Join("/project", "styles/custom")},
		{"/abs/style.rb", "/abs/style.rb"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveStylePath("/project/.mdlrc", testCase.name); got != testCase.want {
				t.Errorf("resolveStylePath(%q) = %q, want %q", testCase.name, got, testCase.want)
			}
		})
	}
}

func filterOf(ruleSpecs, tagSpecs []string) ruleset.Filter {
	return ruleset.Filter{Rules: ruleSpecs, Tags: tagSpecs}
}

func TestMergeFilters(t *testing.T) {
	t.Parallel()

	cli := filterOf(nil, []string{"headers"})
	env := filterOf([]string{"MD001"}, []string{"ul"})
	rc := filterOf([]string{"MD013"}, nil)

	got := mergeFilters(cli, env, rc)
	if len(got.Rules) != 1 || got.Rules[0] != "MD001" {
		t.Errorf("expected env rules, got %v", got.Rules)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "headers" {
		t.Errorf("expected cli tags, got %v", got.Tags)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MDLSTYLE_STYLE", "custom.rb")
	t.Setenv("MDLSTYLE_TAGS", "headers, ~ul")
	t.Setenv("MDLSTYLE_LOG_LEVEL", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.Style != "custom.rb" {
		t.Errorf("unexpected style %q", env.Style)
	}
	if tags := env.Filter().Tags; len(tags) != 2 || tags[1] != "~ul" {
		t.Errorf("unexpected tags %v", tags)
	}
	if len(ListEnvVars()) != 4 {
		t.Errorf("expected 4 documented variables, got %d", len(ListEnvVars()))
	}
}

func TestSourceKind_String(t *testing.T) {
	t.Parallel()

	if SourceMdlrc.String() != "mdlrc" || SourceDefault.String() != "default" {
		t.Error("unexpected SourceKind strings")
	}
}

func TestValidateRegistryDefault(t *testing.T) {
	t.Parallel()

	result := Validate(style.New().All(), nil)
	if !result.Valid() || result.HasWarnings() {
		t.Errorf("expected clean result, got %v", result.AllMessages())
	}
	if Validate(nil, rules.DefaultRegistry).HasWarnings() {
		t.Error("expected nil style to produce no findings")
	}
}
