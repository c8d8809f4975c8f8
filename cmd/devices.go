package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/mouse"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the mouse event devices the listener would read",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := mouse.DevicePaths()
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No mouse event devices found")
			return nil
		}
		for _, path := range paths {
			fmt.Println(path)
		}
		return nil
	},
}
