package codec

// Event types (linux/input-event-codes.h)
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_REL = 0x02
	EV_ABS = 0x03
)

// Synchronization codes
const (
	SYN_REPORT = 0x00
)

// Relative axes
const (
	REL_X      = 0x00
	REL_Y      = 0x01
	REL_HWHEEL = 0x06
	REL_WHEEL  = 0x08
)

// Absolute axes
const (
	ABS_X = 0x00
	ABS_Y = 0x01
)

// Mouse buttons
const (
	BTN_LEFT    = 0x110
	BTN_RIGHT   = 0x111
	BTN_MIDDLE  = 0x112
	BTN_SIDE    = 0x113
	BTN_EXTRA   = 0x114
	BTN_FORWARD = 0x115
	BTN_BACK    = 0x116
	BTN_TASK    = 0x117
)

// Bus types
const (
	BUS_USB = 0x03
)

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

// _IO(type, nr)
func io(typ, nr uint32) uintptr {
	return ioc(0, typ, nr, 0)
}

// _IOW(type, nr, argtype)
func iow(typ, nr, size uint32) uintptr {
	return ioc(iocWrite, typ, nr, size)
}

// uinput ioctl requests (linux/uinput.h). The struct-carrying requests encode
// the exact record size, so these values double as an ABI layout check.
var (
	UI_SET_EVBIT  = iow('U', 100, 4) // int
	UI_SET_KEYBIT = iow('U', 101, 4)
	UI_SET_RELBIT = iow('U', 102, 4)
	UI_SET_ABSBIT = iow('U', 103, 4)

	UI_DEV_SETUP = iow('U', 3, DeviceSetupSize)
	UI_ABS_SETUP = iow('U', 4, AbsSetupSize)

	UI_DEV_CREATE  = io('U', 1)
	UI_DEV_DESTROY = io('U', 2)
)
