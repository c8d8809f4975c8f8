package mouse

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bnema/mousekit/internal/codec"
)

// requester is the fixed set of uinput control requests a virtual device
// needs. The indirection keeps the syscall boundary in one place and lets
// tests record the request sequence without a kernel.
type requester interface {
	SetEventBit(ev uint16) error
	SetKeyBit(code uint16) error
	SetRelBit(code uint16) error
	SetAbsBit(code uint16) error
	SetupDevice(s codec.DeviceSetup) error
	SetupAbsAxis(a codec.AbsSetup) error
	Create() error
	Destroy() error
}

// uinputRequests issues the requests against a real uinput file descriptor
type uinputRequests struct {
	fd uintptr
}

func (r uinputRequests) ioctl(req, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, r.fd, req, arg); errno != 0 {
		return errno
	}
	return nil
}

func (r uinputRequests) ioctlBuf(req uintptr, buf []byte) error {
	return r.ioctl(req, uintptr(unsafe.Pointer(&buf[0])))
}

func (r uinputRequests) SetEventBit(ev uint16) error {
	if err := r.ioctl(codec.UI_SET_EVBIT, uintptr(ev)); err != nil {
		return fmt.Errorf("failed to register event type %#x: %w", ev, err)
	}
	return nil
}

func (r uinputRequests) SetKeyBit(code uint16) error {
	if err := r.ioctl(codec.UI_SET_KEYBIT, uintptr(code)); err != nil {
		return fmt.Errorf("failed to register key code %#x: %w", code, err)
	}
	return nil
}

func (r uinputRequests) SetRelBit(code uint16) error {
	if err := r.ioctl(codec.UI_SET_RELBIT, uintptr(code)); err != nil {
		return fmt.Errorf("failed to register relative axis %#x: %w", code, err)
	}
	return nil
}

func (r uinputRequests) SetAbsBit(code uint16) error {
	if err := r.ioctl(codec.UI_SET_ABSBIT, uintptr(code)); err != nil {
		return fmt.Errorf("failed to register absolute axis %#x: %w", code, err)
	}
	return nil
}

func (r uinputRequests) SetupDevice(s codec.DeviceSetup) error {
	if err := r.ioctlBuf(codec.UI_DEV_SETUP, s.Marshal()); err != nil {
		return fmt.Errorf("device setup request failed: %w", err)
	}
	return nil
}

func (r uinputRequests) SetupAbsAxis(a codec.AbsSetup) error {
	if err := r.ioctlBuf(codec.UI_ABS_SETUP, a.Marshal()); err != nil {
		return fmt.Errorf("absolute axis setup request failed for axis %#x: %w", a.Code, err)
	}
	return nil
}

func (r uinputRequests) Create() error {
	if err := r.ioctl(codec.UI_DEV_CREATE, 0); err != nil {
		return fmt.Errorf("device create request failed: %w", err)
	}
	return nil
}

func (r uinputRequests) Destroy() error {
	if err := r.ioctl(codec.UI_DEV_DESTROY, 0); err != nil {
		return fmt.Errorf("device destroy request failed: %w", err)
	}
	return nil
}
