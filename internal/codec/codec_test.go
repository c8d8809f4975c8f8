package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMarshalLayout(t *testing.T) {
	ev := NewEvent(EV_KEY, BTN_LEFT, 1)
	buf := ev.Marshal()

	require.Len(t, buf, EventSize)

	// Timestamp stays zero; the kernel fills it on consumption
	for i := 0; i < 16; i++ {
		assert.Zero(t, buf[i], "timestamp byte %d", i)
	}

	// type:16 code:16 value:32, little-endian
	assert.Equal(t, byte(0x01), buf[16])
	assert.Equal(t, byte(0x00), buf[17])
	assert.Equal(t, byte(0x10), buf[18])
	assert.Equal(t, byte(0x01), buf[19])
	assert.Equal(t, byte(0x01), buf[20])
	assert.Equal(t, byte(0x00), buf[21])
}

func TestEventRoundTrip(t *testing.T) {
	in := Event{Sec: 1724572800, Usec: 654321, Type: EV_REL, Code: REL_Y, Value: -7}

	out, err := Unmarshal(in.Marshal())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalRejectsWrongSize(t *testing.T) {
	_, err := Unmarshal(make([]byte, EventSize-1))
	assert.Error(t, err)

	_, err = Unmarshal(make([]byte, EventSize+1))
	assert.Error(t, err)
}

// The uinput request numbers are the binary contract with the kernel; pin
// them against the values of the C headers.
func TestRequestNumbers(t *testing.T) {
	assert.Equal(t, uintptr(0x40045564), UI_SET_EVBIT)
	assert.Equal(t, uintptr(0x40045565), UI_SET_KEYBIT)
	assert.Equal(t, uintptr(0x40045566), UI_SET_RELBIT)
	assert.Equal(t, uintptr(0x40045567), UI_SET_ABSBIT)
	assert.Equal(t, uintptr(0x405c5503), UI_DEV_SETUP)
	assert.Equal(t, uintptr(0x401c5504), UI_ABS_SETUP)
	assert.Equal(t, uintptr(0x5501), UI_DEV_CREATE)
	assert.Equal(t, uintptr(0x5502), UI_DEV_DESTROY)
}

func TestDeviceSetupMarshal(t *testing.T) {
	s := NewDeviceSetup("test mouse", InputID{
		BusType: BUS_USB,
		Vendor:  0x2222,
		Product: 0x3333,
		Version: 1,
	})
	buf := s.Marshal()

	require.Len(t, buf, DeviceSetupSize)

	assert.Equal(t, []byte{0x03, 0x00, 0x22, 0x22, 0x33, 0x33, 0x01, 0x00}, buf[0:8])
	assert.Equal(t, []byte("test mouse"), buf[8:18])
	// Rest of the name buffer is NUL padding
	for i := 18; i < 88; i++ {
		assert.Zero(t, buf[i], "name padding byte %d", i)
	}
}

func TestDeviceSetupTruncatesLongName(t *testing.T) {
	long := make([]byte, 2*MaxNameSize)
	for i := range long {
		long[i] = 'x'
	}

	s := NewDeviceSetup(string(long), InputID{})

	// The final byte stays NUL so the kernel always sees a terminated string
	assert.Zero(t, s.Name[MaxNameSize-1])
	assert.Equal(t, byte('x'), s.Name[MaxNameSize-2])
}

func TestAbsSetupMarshal(t *testing.T) {
	a := AbsSetup{Code: ABS_Y, Info: AbsInfo{Minimum: -5, Maximum: 1080}}
	buf := a.Marshal()

	require.Len(t, buf, AbsSetupSize)

	assert.Equal(t, []byte{0x01, 0x00}, buf[0:2])
	// Alignment padding
	assert.Equal(t, []byte{0x00, 0x00}, buf[2:4])
	// value, minimum, maximum
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf[4:8])
	assert.Equal(t, []byte{0xfb, 0xff, 0xff, 0xff}, buf[8:12])
	assert.Equal(t, []byte{0x38, 0x04, 0x00, 0x00}, buf[12:16])
}
