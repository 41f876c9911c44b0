package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Endpoint   string // overrides the configured endpoint
	Verbose    bool
	LogFile    string
}

// NewRootCommand creates the factorpad command. Without a subcommand it
// starts the interactive editor.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "factorpad",
		Short: "factorpad - factor model editor",
		Long: `Declare variables, group them into factors and submit the model
to a remote inference endpoint. The reply is shown verbatim.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./config.yaml or the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "inference endpoint URL")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewDoctorCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}
