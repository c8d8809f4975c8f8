package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/mousekit/internal/config"
	"github.com/bnema/mousekit/internal/logger"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "mousekit",
		Short: "Mousekit - virtual mouse control and monitoring",
		Long: `Mousekit simulates and observes mouse input on Linux.
It creates a virtual mouse through the uinput kernel module to inject
movement, clicks and scrolling, and reads the real mouse event devices
under /dev/input to observe activity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return err
			}
			logger.SetLevel(config.Get().Logging.LogLevel)
			if logLevel != "" {
				logger.SetLevel(logLevel)
			}
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(scrollCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(devicesCmd)
}
