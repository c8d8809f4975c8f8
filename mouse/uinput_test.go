package mouse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mousekit/internal/codec"
	"github.com/bnema/mousekit/internal/config"
)

// fakeRequests records the uinput request sequence instead of issuing it
type fakeRequests struct {
	ops        *[]string
	destroyErr error
}

func (f *fakeRequests) record(format string, args ...any) {
	*f.ops = append(*f.ops, fmt.Sprintf(format, args...))
}

func (f *fakeRequests) SetEventBit(ev uint16) error { f.record("evbit %#x", ev); return nil }
func (f *fakeRequests) SetKeyBit(code uint16) error { f.record("keybit %#x", code); return nil }
func (f *fakeRequests) SetRelBit(code uint16) error { f.record("relbit %#x", code); return nil }
func (f *fakeRequests) SetAbsBit(code uint16) error { f.record("absbit %#x", code); return nil }

func (f *fakeRequests) SetupDevice(s codec.DeviceSetup) error {
	f.record("setup bus=%#x", s.ID.BusType)
	return nil
}

func (f *fakeRequests) SetupAbsAxis(a codec.AbsSetup) error {
	f.record("abssetup %#x min=%d max=%d", a.Code, a.Info.Minimum, a.Info.Maximum)
	return nil
}

func (f *fakeRequests) Create() error { f.record("create"); return nil }

func (f *fakeRequests) Destroy() error {
	f.record("destroy")
	return f.destroyErr
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// errWriter fails every write
type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, errors.New("boom") }

// shortWriter reports one byte fewer than written
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func newTestMouse(out io.Writer) (*UInputMouse, *[]string) {
	ops := &[]string{}
	m := &UInputMouse{
		out: out,
		closer: closerFunc(func() error {
			*ops = append(*ops, "close")
			return nil
		}),
		reqs:     &fakeRequests{ops: ops},
		registry: newRegistry(),
	}
	m.startListener = func() error { return nil }
	return m, ops
}

func decodeEvents(t *testing.T, buf []byte) []codec.Event {
	t.Helper()
	require.Zero(t, len(buf)%codec.EventSize, "emitted bytes are not whole records")

	var events []codec.Event
	for i := 0; i < len(buf); i += codec.EventSize {
		ev, err := codec.Unmarshal(buf[i : i+codec.EventSize])
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestSetupRegistersCapabilities(t *testing.T) {
	m, ops := newTestMouse(&bytes.Buffer{})

	dc := config.DefaultConfig.Device
	require.NoError(t, m.setup(dc))

	assert.Equal(t, []string{
		"evbit 0x1",
		"keybit 0x110", "keybit 0x111", "keybit 0x112", "keybit 0x113",
		"keybit 0x114", "keybit 0x115", "keybit 0x116", "keybit 0x117",
		"evbit 0x2",
		"relbit 0x0", "relbit 0x1", "relbit 0x8", "relbit 0x6",
		"evbit 0x3",
		"absbit 0x0", "abssetup 0x0 min=0 max=1920",
		"absbit 0x1", "abssetup 0x1 min=0 max=1080",
		"setup bus=0x3",
		"create",
	}, *ops)
}

func TestClickEmitsPressReleaseSync(t *testing.T) {
	for _, b := range allButtons {
		t.Run(b.String(), func(t *testing.T) {
			var buf bytes.Buffer
			m, _ := newTestMouse(&buf)

			require.NoError(t, m.ClickButton(b))

			code, ok := b.Code()
			require.True(t, ok)

			events := decodeEvents(t, buf.Bytes())
			require.Len(t, events, 4)
			assert.Equal(t, codec.NewEvent(codec.EV_KEY, code, 1), events[0])
			assert.Equal(t, codec.NewEvent(codec.EV_SYN, codec.SYN_REPORT, 0), events[1])
			assert.Equal(t, codec.NewEvent(codec.EV_KEY, code, 0), events[2])
			assert.Equal(t, codec.NewEvent(codec.EV_SYN, codec.SYN_REPORT, 0), events[3])
		})
	}
}

func TestMoveToEmitsAbsoluteCoordinates(t *testing.T) {
	var buf bytes.Buffer
	m, _ := newTestMouse(&buf)

	require.NoError(t, m.MoveTo(640, 360))

	events := decodeEvents(t, buf.Bytes())
	require.Len(t, events, 3)
	assert.Equal(t, codec.NewEvent(codec.EV_ABS, codec.ABS_X, 640), events[0])
	assert.Equal(t, codec.NewEvent(codec.EV_ABS, codec.ABS_Y, 360), events[1])
	assert.Equal(t, codec.NewEvent(codec.EV_SYN, codec.SYN_REPORT, 0), events[2])
}

// One uinput relative unit is 2 display pixels, with ceiling division so
// small nonzero deltas never collapse to zero.
func TestMoveRelativeCeilDivision(t *testing.T) {
	deltas := []int32{-3, -2, -1, 0, 1, 2, 3}
	want := []int32{-1, -1, 0, 0, 1, 1, 2}

	for i, dx := range deltas {
		t.Run(fmt.Sprintf("dx=%d", dx), func(t *testing.T) {
			var buf bytes.Buffer
			m, _ := newTestMouse(&buf)

			require.NoError(t, m.MoveRelative(dx, -dx))

			events := decodeEvents(t, buf.Bytes())
			require.Len(t, events, 3)
			assert.Equal(t, codec.NewEvent(codec.EV_REL, codec.REL_X, want[i]), events[0])
			assert.Equal(t, codec.NewEvent(codec.EV_REL, codec.REL_Y, ceilHalf(-dx)), events[1])
			assert.Equal(t, codec.NewEvent(codec.EV_SYN, codec.SYN_REPORT, 0), events[2])
		})
	}
}

func TestScrollWheelMapping(t *testing.T) {
	tests := []struct {
		direction ScrollDirection
		axis      uint16
		value     int32
	}{
		{ScrollUp, codec.REL_WHEEL, 1},
		{ScrollDown, codec.REL_WHEEL, -1},
		{ScrollLeft, codec.REL_HWHEEL, -1},
		{ScrollRight, codec.REL_HWHEEL, 1},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			var buf bytes.Buffer
			m, _ := newTestMouse(&buf)

			require.NoError(t, m.ScrollWheel(tt.direction))

			events := decodeEvents(t, buf.Bytes())
			require.Len(t, events, 2)
			assert.Equal(t, codec.NewEvent(codec.EV_REL, tt.axis, tt.value), events[0])
			assert.Equal(t, codec.NewEvent(codec.EV_SYN, codec.SYN_REPORT, 0), events[1])
		})
	}
}

func TestGetPositionUnsupported(t *testing.T) {
	m, _ := newTestMouse(&bytes.Buffer{})

	_, _, err := m.GetPosition()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEmitFailuresSurface(t *testing.T) {
	t.Run("write error", func(t *testing.T) {
		m, _ := newTestMouse(errWriter{})
		assert.Error(t, m.MoveTo(1, 1))
		assert.Error(t, m.PressButton(ButtonLeft))
	})

	t.Run("short write", func(t *testing.T) {
		m, _ := newTestMouse(shortWriter{})
		err := m.ScrollWheel(ScrollUp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "short event write")
	})
}

// A failed emit must not poison the device; later calls go through.
func TestDeviceUsableAfterEmitFailure(t *testing.T) {
	var buf bytes.Buffer
	out := &flakyWriter{fail: 1, next: &buf}
	m, _ := newTestMouse(out)

	require.Error(t, m.PressButton(ButtonLeft))
	require.NoError(t, m.PressButton(ButtonLeft))

	events := decodeEvents(t, buf.Bytes())
	require.Len(t, events, 2)
	assert.Equal(t, codec.NewEvent(codec.EV_KEY, codec.BTN_LEFT, 1), events[0])
}

type flakyWriter struct {
	fail int
	next io.Writer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.fail > 0 {
		w.fail--
		return 0, errors.New("transient")
	}
	return w.next.Write(p)
}

// The destroy request must always run before the control descriptor closes,
// even when an earlier emit failed.
func TestCloseDestroysBeforeClosing(t *testing.T) {
	m, ops := newTestMouse(errWriter{})

	require.Error(t, m.ClickButton(ButtonRight))
	require.NoError(t, m.Close())

	require.Len(t, *ops, 2)
	assert.Equal(t, "destroy", (*ops)[0])
	assert.Equal(t, "close", (*ops)[1])
}

// Destroy failures are logged, not escalated; the descriptor still closes.
func TestCloseSurvivesDestroyFailure(t *testing.T) {
	ops := &[]string{}
	m := &UInputMouse{
		out: &bytes.Buffer{},
		closer: closerFunc(func() error {
			*ops = append(*ops, "close")
			return nil
		}),
		reqs:     &fakeRequests{ops: ops, destroyErr: errors.New("gone")},
		registry: newRegistry(),
	}
	m.startListener = func() error { return nil }

	require.NoError(t, m.Close())
	assert.Equal(t, []string{"destroy", "close"}, *ops)
}
