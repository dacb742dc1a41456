package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeStyle writes src to a style file in a fresh temp directory.
func writeStyle(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mdl_style.rb")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "mdlstyle", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "MDLSTYLE_STYLE")
	assert.Contains(t, cmd.Long, "MDLSTYLE_LOG_LEVEL")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"show", "check", "convert", "import", "rules", "schema", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "style", "rules", "tags", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), flagName)
	}
	assert.Equal(t, "s", cmd.PersistentFlags().Lookup("style").Shorthand)
	assert.Equal(t, "auto", cmd.PersistentFlags().Lookup("color").DefValue)
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	tests := []struct {
		command string
		flag    string
		def     string
	}{
		{"show", "format", "table"},
		{"show", "all", "false"},
		{"show", "rule-format", "name"},
		{"check", "watch", "false"},
		{"check", "strict", "false"},
		{"convert", "to", "markdownlint"},
		{"convert", "output", ""},
		{"convert", "rule-format", "id"},
		{"import", "output", ".mdl_style.rb"},
		{"rules", "format", "text"},
		{"rules", "rule-format", "combined"},
		{"init", "full", "false"},
		{"init", "output", ".mdl_style.rb"},
	}

	for _, testCase := range tests {
		t.Run(testCase.command+"/"+testCase.flag, func(t *testing.T) {
			t.Parallel()

			subCmd, _, err := cmd.Find([]string{testCase.command})
			require.NoError(t, err)
			flag := subCmd.Flags().Lookup(testCase.flag)
			require.NotNil(t, flag)
			assert.Equal(t, testCase.def, flag.DefValue)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
	assert.Contains(t, out.String(), "rules=39")

	short, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test\n", short)
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "show", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "mdlstyle show")
	assert.Contains(t, stdout, "Global Flags:")
	assert.Contains(t, stdout, "--rule-format string   rule identifier format")
}

func TestUnknownFlag_IsUsageError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "show", "--bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}
