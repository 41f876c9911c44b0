package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factorpad/internal/headless"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Files    []string
	Parallel int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [request text]",
		Short: "Submit request text without the editor",
		Long: `Submit request text to the inference endpoint and print the reply.

The text comes from the arguments, from files matching --file glob
patterns, or from stdin when neither is given. A failed request prints
"Err" and the command exits non-zero.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Files, "file", "f", nil, "submit each file matching this glob (repeatable, ** allowed)")
	cmd.Flags().IntVarP(&opts.Parallel, "parallel", "p", 4, "concurrent submissions with --file")

	return cmd
}

func runQuery(cmd *cobra.Command, rootOpts *RootOptions, opts *QueryOptions, args []string) error {
	if len(args) > 0 && len(opts.Files) > 0 {
		return fmt.Errorf("give request text or --file, not both")
	}
	if opts.Parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1")
	}

	e, err := loadEnv(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	sub, err := e.submitter()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r := &headless.Runner{
		Sub:      sub,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Parallel: opts.Parallel,
		Validate: e.validator(),
		Logger:   e.logger,
	}

	if len(opts.Files) > 0 {
		return r.RunFiles(ctx, opts.Files)
	}

	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty request")
	}
	return r.RunText(ctx, text)
}
