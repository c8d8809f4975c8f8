// Package mouse simulates and observes mouse input on Linux. Simulation goes
// through a virtual uinput device, observation through raw evdev device files.
package mouse

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/mousekit/internal/config"
	"github.com/bnema/mousekit/internal/logger"
)

var (
	// ErrUnsupported is returned for operations the backend cannot perform
	ErrUnsupported = errors.New("operation not supported by this backend")
	// ErrCallbackNotFound is returned when unhooking an unknown callback id
	ErrCallbackNotFound = errors.New("callback not found")
)

// Mouse is the capability set shared by all mouse backends
type Mouse interface {
	// MoveTo moves the pointer to an absolute position
	MoveTo(x, y int32) error

	// MoveRelative moves the pointer by a pixel delta
	MoveRelative(dx, dy int32) error

	// PressButton presses and holds a button
	PressButton(b Button) error

	// ReleaseButton releases a held button
	ReleaseButton(b Button) error

	// ClickButton presses and immediately releases a button
	ClickButton(b Button) error

	// ScrollWheel scrolls one notch in the given direction
	ScrollWheel(d ScrollDirection) error

	// GetPosition reports the pointer position; backends without position
	// tracking return ErrUnsupported
	GetPosition() (x, y int32, err error)

	// Hook registers a callback for observed mouse events, starting the
	// device listener on first use
	Hook(cb Callback) (CallbackID, error)

	// Unhook removes a previously registered callback
	Unhook(id CallbackID) error

	// UnhookAll removes all registered callbacks
	UnhookAll() error

	// Close tears down the backend and its kernel device
	Close() error
}

// New creates the mouse backend for this system using the loaded
// configuration. Only the uinput backend ships with mousekit; display-server
// native backends implement Mouse out of tree and can use SessionType for
// their selection logic.
func New() (Mouse, error) {
	cfg := config.Get()
	if st := SessionType(); st != "" {
		logger.Debugf("Session type %s, using uinput backend", st)
	}
	return NewUInputMouse(cfg.Device, cfg.Listener)
}

// SessionType reports the desktop session type ("x11", "wayland", "tty").
// It asks loginctl first and falls back to XDG_SESSION_TYPE; the empty
// string means the type could not be determined.
func SessionType() string {
	out, err := exec.Command("sh", "-c",
		`loginctl show-session $(loginctl | awk '/tty/ {print $1}') -p Type --value`).Output()
	if err == nil {
		if st := strings.ToLower(strings.TrimSpace(string(out))); st != "" {
			return st
		}
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
}
