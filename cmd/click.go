package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/mouse"
)

var (
	clickPress   bool
	clickRelease bool
)

var clickCmd = &cobra.Command{
	Use:   "click [button]",
	Short: "Click a virtual mouse button",
	Long: `Click a button on the virtual mouse. The button defaults to left;
valid names are left, right, middle, side, extra, forward, back and task.
Use --press or --release to hold or let go of a button instead of clicking.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		button := mouse.ButtonLeft
		if len(args) == 1 {
			var err error
			if button, err = mouse.ParseButton(args[0]); err != nil {
				return err
			}
		}
		if clickPress && clickRelease {
			return fmt.Errorf("--press and --release are mutually exclusive")
		}

		m, err := mouse.New()
		if err != nil {
			return err
		}
		defer m.Close()

		switch {
		case clickPress:
			return m.PressButton(button)
		case clickRelease:
			return m.ReleaseButton(button)
		default:
			return m.ClickButton(button)
		}
	},
}

func init() {
	clickCmd.Flags().BoolVar(&clickPress, "press", false, "press and hold the button")
	clickCmd.Flags().BoolVar(&clickRelease, "release", false, "release a held button")
}
