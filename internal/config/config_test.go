package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	Set(nil)

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil after Init()")
	}

	if cfg.Device.Vendor != 0x2222 || cfg.Device.Product != 0x3333 {
		t.Errorf("unexpected device identity: vendor=%#x product=%#x",
			cfg.Device.Vendor, cfg.Device.Product)
	}
	if cfg.Device.SettleDelayMs != 300 {
		t.Errorf("expected 300ms settle delay, got %d", cfg.Device.SettleDelayMs)
	}
	if cfg.Listener.InputDir != "/dev/input" {
		t.Errorf("expected /dev/input, got %s", cfg.Listener.InputDir)
	}
	if !cfg.Listener.Hotplug {
		t.Error("expected hotplug enabled by default")
	}
}

func TestInitReadsConfigFile(t *testing.T) {
	viper.Reset()
	Set(nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "mousekit.toml")
	content := `[device]
name = "test rodent"
x_max = 2560
y_max = 1440

[logging]
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(path)
	defer SetConfigPath("")

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	cfg := Get()
	if cfg.Device.Name != "test rodent" {
		t.Errorf("expected configured name, got %q", cfg.Device.Name)
	}
	if cfg.Device.XMax != 2560 || cfg.Device.YMax != 1440 {
		t.Errorf("unexpected axis ranges: %d x %d", cfg.Device.XMax, cfg.Device.YMax)
	}
	// Defaults still fill the unset sections
	if cfg.Device.Vendor != 0x2222 {
		t.Errorf("expected default vendor, got %#x", cfg.Device.Vendor)
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.Logging.LogLevel)
	}
}
