package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/factorpad/internal/health"
	"github.com/jeanpaul/factorpad/internal/tui"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check configuration and endpoint reachability",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, rootOpts)
		},
	}
}

func runDoctor(cmd *cobra.Command, rootOpts *RootOptions) error {
	out := cmd.OutOrStdout()

	e, err := loadEnv(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintln(out, tui.ErrorStyle.Render("✗ "+err.Error()))
		return err
	}
	defer e.Close()

	fmt.Fprintln(out, tui.BannerStyle.Render("  factorpad health check"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  operation  %s\n", e.cfg.Op)
	timeout := e.cfg.Timeout
	if timeout == "" {
		timeout = "none"
	}
	fmt.Fprintf(out, "  timeout    %s\n", timeout)
	fmt.Fprintf(out, "  retries    %d\n", e.cfg.Retries)
	fmt.Fprintf(out, "  endpoint   %s ... ", e.cfg.Endpoint)

	status := health.Check(cmd.Context(), e.cfg.Endpoint)
	if !status.Reachable {
		fmt.Fprintln(out, tui.ErrorStyle.Render(status.Summary()))
		return fmt.Errorf("endpoint unreachable")
	}
	fmt.Fprintln(out, tui.SuccessStyle.Render(status.Summary()))
	return nil
}
