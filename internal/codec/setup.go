package codec

import "encoding/binary"

// MaxNameSize is the capacity of the uinput device name buffer
const MaxNameSize = 80

// Record sizes of the uinput setup structs, encoded into their ioctl requests
const (
	DeviceSetupSize = 92 // struct uinput_setup
	AbsSetupSize    = 28 // struct uinput_abs_setup, includes 2 alignment bytes
)

// InputID mirrors struct input_id
type InputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// DeviceSetup mirrors struct uinput_setup. Constructed once, handed to the
// UI_DEV_SETUP request, and immutable afterwards: the kernel rejects
// capability or identity changes after device creation.
type DeviceSetup struct {
	ID           InputID
	Name         [MaxNameSize]byte
	FFEffectsMax uint32
}

// NewDeviceSetup builds a setup record with the name NUL-padded into the
// fixed-capacity buffer. Names longer than the buffer are truncated.
func NewDeviceSetup(name string, id InputID) DeviceSetup {
	s := DeviceSetup{ID: id}
	copy(s.Name[:MaxNameSize-1], name)
	return s
}

// Marshal packs the setup record into its 92-byte kernel representation
func (s DeviceSetup) Marshal() []byte {
	buf := make([]byte, DeviceSetupSize)
	binary.LittleEndian.PutUint16(buf[0:2], s.ID.BusType)
	binary.LittleEndian.PutUint16(buf[2:4], s.ID.Vendor)
	binary.LittleEndian.PutUint16(buf[4:6], s.ID.Product)
	binary.LittleEndian.PutUint16(buf[6:8], s.ID.Version)
	copy(buf[8:88], s.Name[:])
	binary.LittleEndian.PutUint32(buf[88:92], s.FFEffectsMax)
	return buf
}

// AbsInfo mirrors struct input_absinfo
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// AbsSetup mirrors struct uinput_abs_setup
type AbsSetup struct {
	Code uint16
	Info AbsInfo
}

// Marshal packs the axis setup into its 28-byte kernel representation.
// Bytes 2-3 are struct padding and stay zero.
func (a AbsSetup) Marshal() []byte {
	buf := make([]byte, AbsSetupSize)
	binary.LittleEndian.PutUint16(buf[0:2], a.Code)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(a.Info.Value))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(a.Info.Minimum))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(a.Info.Maximum))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(a.Info.Fuzz))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(a.Info.Flat))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(a.Info.Resolution))
	return buf
}
