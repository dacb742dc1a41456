// Command mdlstyle inspects, checks and converts mdl style files.
package main

import (
	"os"

	"github.com/yaklabco/mdlstyle/internal/cli"
	"github.com/yaklabco/mdlstyle/internal/logging"
)

// Overridden at build time by the stavefile's -ldflags.
//
//nolint:gochecknoglobals // ldflags can only set package-level variables.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(cli.BuildInfo{Version: version, Commit: commit, Date: date}))
}

func run(info cli.BuildInfo) int {
	err := cli.NewRootCommand(info).Execute()
	if err == nil {
		return cli.ExitSuccess
	}
	// Findings printed by check already explain the failure.
	if !cli.IsReported(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
