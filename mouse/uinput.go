package mouse

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bnema/mousekit/internal/codec"
	"github.com/bnema/mousekit/internal/config"
	"github.com/bnema/mousekit/internal/logger"
)

const uinputPath = "/dev/uinput"

// syncDelay gives the kernel time to apply the synchronized event group.
// Without it, reads of device state by other processes can race ahead of the
// kernel's own update, particularly after button releases.
const syncDelay = time.Millisecond

// UInputMouse is a virtual mouse device backed by the uinput kernel
// subsystem. It owns one open control descriptor and one created kernel
// device node; Close destroys the node before the descriptor goes away so no
// phantom input device outlives the instance.
type UInputMouse struct {
	out    io.Writer
	closer io.Closer
	reqs   requester

	registry *registry
	listener *listener

	mu            sync.Mutex
	listening     bool
	startListener func() error
}

// NewUInputMouse creates the virtual device: registers its capabilities,
// creates the kernel device node, and waits for the settle delay so that
// downstream listeners have had time to pick the new node up. Events emitted
// before that pause are silently dropped by the rest of the desktop.
func NewUInputMouse(dc config.DeviceConfig, lc config.ListenerConfig) (*UInputMouse, error) {
	f, err := os.OpenFile(uinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uinputPath, err)
	}

	m := &UInputMouse{
		out:      f,
		closer:   f,
		reqs:     uinputRequests{fd: f.Fd()},
		registry: newRegistry(),
	}
	m.startListener = func() error {
		l, err := startListener(lc, m.registry)
		if err != nil {
			return err
		}
		m.listener = l
		return nil
	}

	if err := m.setup(dc); err != nil {
		// The node may be half-created; destroy before the fd closes
		m.Close()
		return nil, err
	}

	logger.Debugf("Virtual mouse %q created, settling for %dms", dc.Name, dc.SettleDelayMs)
	time.Sleep(time.Duration(dc.SettleDelayMs) * time.Millisecond)

	return m, nil
}

// setup registers the capability set and creates the device node. The kernel
// rejects capability changes once the node exists, so everything the device
// will ever emit is declared here.
func (m *UInputMouse) setup(dc config.DeviceConfig) error {
	// Key events for every supported button, also needed for motion
	if err := m.reqs.SetEventBit(codec.EV_KEY); err != nil {
		return err
	}
	for _, b := range allButtons {
		code, _ := b.Code()
		if err := m.reqs.SetKeyBit(code); err != nil {
			return err
		}
	}

	// Relative motion and both wheel axes
	if err := m.reqs.SetEventBit(codec.EV_REL); err != nil {
		return err
	}
	for _, code := range []uint16{codec.REL_X, codec.REL_Y, codec.REL_WHEEL, codec.REL_HWHEEL} {
		if err := m.reqs.SetRelBit(code); err != nil {
			return err
		}
	}

	// Absolute axes with the configured ranges
	if err := m.reqs.SetEventBit(codec.EV_ABS); err != nil {
		return err
	}
	axes := []codec.AbsSetup{
		{Code: codec.ABS_X, Info: codec.AbsInfo{Minimum: dc.XMin, Maximum: dc.XMax}},
		{Code: codec.ABS_Y, Info: codec.AbsInfo{Minimum: dc.YMin, Maximum: dc.YMax}},
	}
	for _, axis := range axes {
		if err := m.reqs.SetAbsBit(axis.Code); err != nil {
			return err
		}
		if err := m.reqs.SetupAbsAxis(axis); err != nil {
			return err
		}
	}

	setup := codec.NewDeviceSetup(dc.Name, codec.InputID{
		BusType: codec.BUS_USB,
		Vendor:  dc.Vendor,
		Product: dc.Product,
		Version: dc.Version,
	})
	if err := m.reqs.SetupDevice(setup); err != nil {
		return err
	}
	return m.reqs.Create()
}

// emit writes one event record to the control descriptor. A short write is a
// hard failure: the kernel consumes whole records only.
func (m *UInputMouse) emit(typ, code uint16, value int32) error {
	n, err := m.out.Write(codec.NewEvent(typ, code, value).Marshal())
	if err != nil {
		return fmt.Errorf("event write failed: %w", err)
	}
	if n != codec.EventSize {
		return fmt.Errorf("short event write: %d of %d bytes", n, codec.EventSize)
	}
	return nil
}

// synchronize marks the preceding events as one atomic group
func (m *UInputMouse) synchronize() error {
	if err := m.emit(codec.EV_SYN, codec.SYN_REPORT, 0); err != nil {
		return err
	}
	time.Sleep(syncDelay)
	return nil
}

// MoveTo moves the pointer to an absolute position on the advertised axes
func (m *UInputMouse) MoveTo(x, y int32) error {
	if err := m.emit(codec.EV_ABS, codec.ABS_X, x); err != nil {
		return err
	}
	if err := m.emit(codec.EV_ABS, codec.ABS_Y, y); err != nil {
		return err
	}
	return m.synchronize()
}

// MoveRelative moves the pointer by a pixel delta. uinput relative units are
// 2 display pixels, so the delta is halved with a ceiling division: small
// nonzero deltas must never truncate to zero, and negative odd values round
// toward positive infinity, not toward zero.
func (m *UInputMouse) MoveRelative(dx, dy int32) error {
	if err := m.emit(codec.EV_REL, codec.REL_X, ceilHalf(dx)); err != nil {
		return err
	}
	if err := m.emit(codec.EV_REL, codec.REL_Y, ceilHalf(dy)); err != nil {
		return err
	}
	return m.synchronize()
}

func ceilHalf(v int32) int32 {
	if v > 0 {
		return (v + 1) / 2
	}
	// Go integer division truncates toward zero, which is ceiling for
	// negative values
	return v / 2
}

// PressButton presses and holds a button
func (m *UInputMouse) PressButton(b Button) error {
	return m.buttonEvent(b, 1)
}

// ReleaseButton releases a held button
func (m *UInputMouse) ReleaseButton(b Button) error {
	return m.buttonEvent(b, 0)
}

func (m *UInputMouse) buttonEvent(b Button, value int32) error {
	code, ok := b.Code()
	if !ok {
		return fmt.Errorf("unknown button %s", b)
	}
	if err := m.emit(codec.EV_KEY, code, value); err != nil {
		return err
	}
	return m.synchronize()
}

// ClickButton presses and immediately releases a button. If the press
// succeeds but the release fails, the button stays logically pressed and the
// error is the caller's to handle; no compensating release is attempted.
func (m *UInputMouse) ClickButton(b Button) error {
	if err := m.PressButton(b); err != nil {
		return err
	}
	return m.ReleaseButton(b)
}

// ScrollWheel scrolls one notch in the given direction
func (m *UInputMouse) ScrollWheel(d ScrollDirection) error {
	axis, value := d.axis()
	if err := m.emit(codec.EV_REL, axis, value); err != nil {
		return err
	}
	return m.synchronize()
}

// GetPosition always fails: uinput provides no way to query the emulated
// pointer's absolute location
func (m *UInputMouse) GetPosition() (int32, int32, error) {
	return 0, 0, fmt.Errorf("get position: %w", ErrUnsupported)
}

// Hook registers a callback for observed mouse events. The first call starts
// device discovery and the listener; later calls only add the callback.
func (m *UInputMouse) Hook(cb Callback) (CallbackID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.listening {
		if err := m.startListener(); err != nil {
			return 0, err
		}
		m.listening = true
	}
	return m.registry.add(cb), nil
}

// Unhook removes a previously registered callback
func (m *UInputMouse) Unhook(id CallbackID) error {
	return m.registry.remove(id)
}

// UnhookAll removes all registered callbacks
func (m *UInputMouse) UnhookAll() error {
	m.registry.clear()
	return nil
}

// Close destroys the kernel device node and closes the control descriptor,
// in that order. The destroy request runs unconditionally: an undestroyed
// virtual device persists as a phantom input device until process exit.
// Destroy failures are logged, not escalated, since Close often runs while
// unwinding from another error.
func (m *UInputMouse) Close() error {
	if err := m.reqs.Destroy(); err != nil {
		logger.Warnf("Failed to destroy virtual device: %v", err)
	}

	m.mu.Lock()
	if m.listener != nil {
		m.listener.stop()
		m.listener = nil
		m.listening = false
	}
	m.mu.Unlock()

	return m.closer.Close()
}
