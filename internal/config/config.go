// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Virtual device settings
	Device DeviceConfig `mapstructure:"device"`

	// Event listener settings
	Listener ListenerConfig `mapstructure:"listener"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// DeviceConfig describes the virtual mouse device presented to the kernel
type DeviceConfig struct {
	Name    string `mapstructure:"name"`
	Vendor  uint16 `mapstructure:"vendor"`
	Product uint16 `mapstructure:"product"`
	Version uint16 `mapstructure:"version"`

	// Absolute axis ranges, normally the desktop resolution
	XMin int32 `mapstructure:"x_min"`
	XMax int32 `mapstructure:"x_max"`
	YMin int32 `mapstructure:"y_min"`
	YMax int32 `mapstructure:"y_max"`

	// Milliseconds to wait after device creation before emitting events.
	// Userspace needs time to notice the new device node.
	SettleDelayMs int `mapstructure:"settle_delay_ms"`
}

// ListenerConfig contains event listener settings
type ListenerConfig struct {
	ChannelBuffer int    `mapstructure:"channel_buffer"`
	Hotplug       bool   `mapstructure:"hotplug"`
	InputDir      string `mapstructure:"input_dir"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Device: DeviceConfig{
			Name:          "mousekit virtual mouse",
			Vendor:        0x2222,
			Product:       0x3333,
			Version:       0,
			XMin:          0,
			XMax:          1920,
			YMin:          0,
			YMax:          1080,
			SettleDelayMs: 300,
		},
		Listener: ListenerConfig{
			ChannelBuffer: 64,
			Hotplug:       true,
			InputDir:      "/dev/input",
		},
		Logging: LoggingConfig{
			LogLevel: "",
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("mousekit")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath("/etc/mousekit")
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "mousekit"))
		}
		viper.AddConfigPath(".")
	}

	viper.SetDefault("device.name", DefaultConfig.Device.Name)
	viper.SetDefault("device.vendor", DefaultConfig.Device.Vendor)
	viper.SetDefault("device.product", DefaultConfig.Device.Product)
	viper.SetDefault("device.version", DefaultConfig.Device.Version)
	viper.SetDefault("device.x_min", DefaultConfig.Device.XMin)
	viper.SetDefault("device.x_max", DefaultConfig.Device.XMax)
	viper.SetDefault("device.y_min", DefaultConfig.Device.YMin)
	viper.SetDefault("device.y_max", DefaultConfig.Device.YMax)
	viper.SetDefault("device.settle_delay_ms", DefaultConfig.Device.SettleDelayMs)

	viper.SetDefault("listener.channel_buffer", DefaultConfig.Listener.ChannelBuffer)
	viper.SetDefault("listener.hotplug", DefaultConfig.Listener.Hotplug)
	viper.SetDefault("listener.input_dir", DefaultConfig.Listener.InputDir)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if os.Getuid() == 0 {
		return "/etc/mousekit/mousekit.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/mousekit/mousekit.toml"
	}

	return filepath.Join(home, ".config", "mousekit", "mousekit.toml")
}
