package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/mouse"
)

var scrollTimes int

var scrollCmd = &cobra.Command{
	Use:   "scroll <up|down|left|right>",
	Short: "Scroll the virtual mouse wheel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		direction, err := mouse.ParseScrollDirection(args[0])
		if err != nil {
			return err
		}

		m, err := mouse.New()
		if err != nil {
			return err
		}
		defer m.Close()

		for i := 0; i < scrollTimes; i++ {
			if err := m.ScrollWheel(direction); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	scrollCmd.Flags().IntVarP(&scrollTimes, "times", "n", 1, "number of wheel notches")
}
