package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name: "clean style",
			src:  "all\nexclude_rule 'MD007'\nrule 'MD013', :line_length => 80\nrule 'MD029', :style => :ordered",
		},
		{
			name: "rule without params",
			src:  "rule 'MD001'",
		},
		{
			name:         "unknown rule with suggestion",
			src:          "all\nexclude_rule 'MD0133'",
			wantWarnings: []string{`style.rb:2:1: exclude_rule MD0133: unknown rule "MD0133"; did you mean MD013`},
		},
		{
			name:         "unknown tag",
			src:          "all\nexclude_tag :zzzzzz",
			wantWarnings: []string{`unknown tag "zzzzzz"`},
		},
		{
			name:       "invalid params",
			src:        "all\nrule 'MD013', :line_length => 'wide'",
			wantErrors: []string{"style.rb:2:1: rule MD013: invalid parameters: MD013:"},
		},
		{
			name:       "params on paramless rule",
			src:        "rule 'MD001', :level => 2",
			wantErrors: []string{"MD001 takes no parameters"},
		},
		{
			name:         "excluded after configured",
			src:          "all\nrule 'MD013', :line_length => 100\nexclude_rule 'line-length'",
			wantWarnings: []string{"MD013 is configured at line 2 but excluded here"},
		},
		{
			name:         "enables nothing",
			src:          "exclude_rule 'MD001'\nexclude_tag :headers",
			wantWarnings: []string{"style.rb: style enables no rules"},
		},
		{
			name: "tag enables",
			src:  "tag :headings",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s, err := style.Parse("style.rb", []byte(testCase.src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			result := Validate(s, rules.DefaultRegistry)
			assertFindings(t, "error", result.Errors, testCase.wantErrors)
			assertFindings(t, "warning", result.Warnings, testCase.wantWarnings)
			if result.Valid() != (len(testCase.wantErrors) == 0) {
				t.Errorf("Valid() = %v", result.Valid())
			}
		})
	}
}

func assertFindings(t *testing.T, kind string, got []ValidationError, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d %ss, got %d: %v", len(want), kind, len(got), got)
	}
	for i := range want {
		if !strings.Contains(got[i].Error(), want[i]) {
			t.Errorf("%s %d = %q, want it to contain %q", kind, i, got[i].Error(), want[i])
		}
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	s := style.New().ExcludeRule("MD001")
	result := ValidateWithFile(s, rules.DefaultRegistry, "built.rb")

	if len(result.Warnings) != 1 || result.Warnings[0].FilePath != "built.rb" {
		t.Fatalf("expected one warning for built.rb, got %v", result.Warnings)
	}
	if msgs := result.AllMessages(); len(msgs) != 1 || !strings.HasPrefix(msgs[0], "warning: built.rb: ") {
		t.Errorf("unexpected messages %v", msgs)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  ValidationError
		want string
	}{
		{ValidationError{Message: "bad"}, "bad"},
		{ValidationError{FilePath: "a.rb", Message: "bad"}, "a.rb: bad"},
		{ValidationError{FilePath: "a.rb", Line: 3, Message: "bad"}, "a.rb:3: bad"},
		{ValidationError{FilePath: "a.rb", Line: 3, Column: 7, Field: "rule MD013", Message: "bad"}, "a.rb:3:7: rule MD013: bad"},
	}

	for _, testCase := range tests {
		if got := testCase.err.Error(); got != testCase.want {
			t.Errorf("Error() = %q, want %q", got, testCase.want)
		}
	}
}
