package mouse

import (
	"fmt"

	"github.com/bnema/mousekit/internal/codec"
)

// Button identifies a mouse button
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonSide
	ButtonExtra
	ButtonForward
	ButtonBack
	ButtonTask
)

// allButtons lists every supported button in code order
var allButtons = []Button{
	ButtonLeft, ButtonRight, ButtonMiddle, ButtonSide,
	ButtonExtra, ButtonForward, ButtonBack, ButtonTask,
}

var buttonCodes = map[Button]uint16{
	ButtonLeft:    codec.BTN_LEFT,
	ButtonRight:   codec.BTN_RIGHT,
	ButtonMiddle:  codec.BTN_MIDDLE,
	ButtonSide:    codec.BTN_SIDE,
	ButtonExtra:   codec.BTN_EXTRA,
	ButtonForward: codec.BTN_FORWARD,
	ButtonBack:    codec.BTN_BACK,
	ButtonTask:    codec.BTN_TASK,
}

var buttonNames = map[Button]string{
	ButtonLeft:    "left",
	ButtonRight:   "right",
	ButtonMiddle:  "middle",
	ButtonSide:    "side",
	ButtonExtra:   "extra",
	ButtonForward: "forward",
	ButtonBack:    "back",
	ButtonTask:    "task",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// Code returns the kernel key code for the button
func (b Button) Code() (uint16, bool) {
	code, ok := buttonCodes[b]
	return code, ok
}

// ParseButton maps a button name to its Button value
func ParseButton(name string) (Button, error) {
	for b, n := range buttonNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

func buttonFromCode(code uint16) (Button, bool) {
	switch code {
	case codec.BTN_LEFT:
		return ButtonLeft, true
	case codec.BTN_RIGHT:
		return ButtonRight, true
	case codec.BTN_MIDDLE:
		return ButtonMiddle, true
	case codec.BTN_SIDE:
		return ButtonSide, true
	case codec.BTN_EXTRA:
		return ButtonExtra, true
	case codec.BTN_FORWARD:
		return ButtonForward, true
	case codec.BTN_BACK:
		return ButtonBack, true
	case codec.BTN_TASK:
		return ButtonTask, true
	default:
		return 0, false
	}
}

// ScrollDirection identifies a wheel scroll direction
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

var scrollNames = map[ScrollDirection]string{
	ScrollUp:    "up",
	ScrollDown:  "down",
	ScrollLeft:  "left",
	ScrollRight: "right",
}

func (d ScrollDirection) String() string {
	if name, ok := scrollNames[d]; ok {
		return name
	}
	return fmt.Sprintf("scroll(%d)", int(d))
}

// ParseScrollDirection maps a direction name to its ScrollDirection value
func ParseScrollDirection(name string) (ScrollDirection, error) {
	for d, n := range scrollNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown scroll direction %q", name)
}

// axis returns the relative wheel axis and event value for the direction
func (d ScrollDirection) axis() (uint16, int32) {
	switch d {
	case ScrollUp:
		return codec.REL_WHEEL, 1
	case ScrollDown:
		return codec.REL_WHEEL, -1
	case ScrollLeft:
		return codec.REL_HWHEEL, -1
	default:
		return codec.REL_HWHEEL, 1
	}
}

// EventKind discriminates the Event variants
type EventKind int

const (
	EventPress EventKind = iota
	EventRelease
	EventRelativeMove
	EventScroll
)

// Event is a semantic mouse event observed on a real input device.
// Produced only by the listener, consumed only by callbacks.
type Event struct {
	Kind   EventKind
	Button Button          // Press, Release
	DX, DY int32           // RelativeMove
	Scroll ScrollDirection // Scroll
}

// PressEvent builds a button press event
func PressEvent(b Button) Event {
	return Event{Kind: EventPress, Button: b}
}

// ReleaseEvent builds a button release event
func ReleaseEvent(b Button) Event {
	return Event{Kind: EventRelease, Button: b}
}

// MoveEvent builds a relative motion event
func MoveEvent(dx, dy int32) Event {
	return Event{Kind: EventRelativeMove, DX: dx, DY: dy}
}

// ScrollEvent builds a wheel scroll event
func ScrollEvent(d ScrollDirection) Event {
	return Event{Kind: EventScroll, Scroll: d}
}

func (e Event) String() string {
	switch e.Kind {
	case EventPress:
		return fmt.Sprintf("press %s", e.Button)
	case EventRelease:
		return fmt.Sprintf("release %s", e.Button)
	case EventRelativeMove:
		return fmt.Sprintf("move %+d,%+d", e.DX, e.DY)
	case EventScroll:
		return fmt.Sprintf("scroll %s", e.Scroll)
	default:
		return fmt.Sprintf("event(%d)", int(e.Kind))
	}
}

// CallbackID identifies a hooked callback
type CallbackID uint64

// Callback receives observed mouse events. Callbacks run synchronously on the
// dispatcher goroutine and must not block.
type Callback func(Event)
