package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/mouse"
)

var moveRelative bool

var moveCmd = &cobra.Command{
	Use:   "move <x> <y>",
	Short: "Move the virtual mouse pointer",
	Long: `Move the virtual mouse pointer to an absolute position, or by a
pixel delta when --relative is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := parseCoord(args[0])
		if err != nil {
			return err
		}
		y, err := parseCoord(args[1])
		if err != nil {
			return err
		}

		m, err := mouse.New()
		if err != nil {
			return err
		}
		defer m.Close()

		if moveRelative {
			return m.MoveRelative(x, y)
		}
		return m.MoveTo(x, y)
	},
}

func parseCoord(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return int32(v), nil
}

func init() {
	moveCmd.Flags().BoolVarP(&moveRelative, "relative", "r", false, "move by a delta instead of to a position")
}
