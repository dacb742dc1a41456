// Package logging configures the charmbracelet/log logger mdlstyle writes
// diagnostics with and carries it through contexts.
package logging

// Keys for structured log fields.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"
	FieldBackup = "backup"
	FieldEvent  = "event"

	// Style resolution.
	FieldStyle      = "style"
	FieldSource     = "source"
	FieldMdlrc      = "mdlrc"
	FieldRules      = "rules"
	FieldTags       = "tags"
	FieldDirectives = "directives"
	FieldEnabled    = "enabled"

	// version command.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
