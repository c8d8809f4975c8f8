package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/internal/ui"
	"github.com/bnema/mousekit/mouse"
)

var watchPlain bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch mouse events from the real input devices",
	Long: `Watch shows the semantic mouse events decoded from every mouse
event device on the system. By default it runs a full-screen viewer;
--plain prints one line per event instead, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mouse.New()
		if err != nil {
			return err
		}
		defer m.Close()

		if watchPlain {
			return watchPlainMode(m)
		}
		return watchTUI(m)
	},
}

func watchPlainMode(m mouse.Mouse) error {
	id, err := m.Hook(func(ev mouse.Event) {
		fmt.Println(ev)
	})
	if err != nil {
		return err
	}
	defer func() { _ = m.Unhook(id) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func watchTUI(m mouse.Mouse) error {
	p := tea.NewProgram(ui.NewWatchModel(), tea.WithAltScreen())

	id, err := m.Hook(func(ev mouse.Event) {
		p.Send(ui.EventMsg{Event: ev})
	})
	if err != nil {
		return err
	}
	defer func() { _ = m.Unhook(id) }()

	_, err = p.Run()
	return err
}

func init() {
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print events as lines instead of the full-screen viewer")
}
