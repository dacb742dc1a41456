package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/pkg/rules"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <rule>",
		Short: "Print the JSON Schema for a rule's parameters",
		Long: `Print the JSON Schema describing the parameters a rule accepts. The rule
may be given by ID (MD013) or alias (line-length).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := rules.DefaultRegistry

			data, err := reg.Schema(args[0])
			if errors.Is(err, rules.ErrUnknownRule) {
				if suggestions := reg.Suggest(args[0]); len(suggestions) > 0 {
					return fmt.Errorf("%w; did you mean %s?", err, strings.Join(suggestions, ", "))
				}
			}
			if err != nil {
				return err
			}

			if !bytes.HasSuffix(data, []byte("\n")) {
				data = append(data, '\n')
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}
