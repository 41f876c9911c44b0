package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeanpaul/factorpad/internal/gateway"
	"github.com/jeanpaul/factorpad/internal/model"
	"github.com/jeanpaul/factorpad/internal/request"
	"github.com/jeanpaul/factorpad/internal/tui"
)

func runTUI(cmd *cobra.Command, opts *RootOptions) error {
	// Logging to the terminal would corrupt the screen.
	e, err := loadEnv(opts, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	sub, err := e.submitter()
	if err != nil {
		return err
	}
	op, err := request.ParseOp(e.cfg.Op)
	if err != nil {
		return err
	}

	store := model.NewStore()
	defer store.Reset()
	e.logger.Info("session started", "session", store.ID(), "endpoint", sub.Endpoint())

	m := tui.NewModel(store, gateway.NewDispatcher(sub, e.logger), tui.Options{
		Op:       op,
		Validate: e.validator(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
