package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mousekit/mouse"
)

// maxEvents is how many events the viewer keeps on screen
const maxEvents = 16

// EventMsg delivers an observed mouse event to the viewer. The hook callback
// sends these through Program.Send, which is safe from any goroutine.
type EventMsg struct {
	Event mouse.Event
}

// WatchModel shows a rolling log of observed mouse events
type WatchModel struct {
	events  []mouse.Event
	moves   int
	clicks  int
	scrolls int
	width   int
	height  int
}

// NewWatchModel creates the event viewer model
func NewWatchModel() *WatchModel {
	return &WatchModel{}
}

func (m *WatchModel) Init() tea.Cmd {
	return nil
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.events = nil
			m.moves, m.clicks, m.scrolls = 0, 0, 0
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case EventMsg:
		m.events = append(m.events, msg.Event)
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
		switch msg.Event.Kind {
		case mouse.EventRelativeMove:
			m.moves++
		case mouse.EventPress, mouse.EventRelease:
			m.clicks++
		case mouse.EventScroll:
			m.scrolls++
		}
	}
	return m, nil
}

func (m *WatchModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Render("mousekit watch")

	stats := MutedStyle.Render(fmt.Sprintf("moves %d  •  buttons %d  •  scrolls %d",
		m.moves, m.clicks, m.scrolls))

	var log string
	if len(m.events) == 0 {
		log = MutedStyle.Render("Waiting for mouse events...")
	} else {
		lines := make([]string, 0, len(m.events))
		for _, ev := range m.events {
			lines = append(lines, renderEvent(ev))
		}
		log = strings.Join(lines, "\n")
	}

	controls := MutedStyle.Render("[c] Clear  •  [q] Quit")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		stats,
		"",
		log,
		"",
		controls,
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func renderEvent(ev mouse.Event) string {
	switch ev.Kind {
	case mouse.EventPress, mouse.EventRelease:
		return ButtonStyle.Render(ev.String())
	case mouse.EventScroll:
		return ScrollStyle.Render(ev.String())
	default:
		return TextStyle.Render(ev.String())
	}
}
