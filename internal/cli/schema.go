package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factorpad/internal/schema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema used by validate_requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), schema.RequestSchema)
			return err
		},
	}
}
