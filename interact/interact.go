// Package interact hosts a venue session in the terminal.
package interact

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-virtual-venue/venue"
)

const (
	// Pointer units per terminal cell of mouse movement
	cellScale = 12.0
	// Pointer units per arrow key press
	keyStep  = 40.0
	barWidth = 30
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")).Width(12)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).MarginTop(1)
)

type seatItem struct {
	seat     venue.Seat
	distance float64
}

func (i seatItem) Title() string {
	return fmt.Sprintf("Row %d, seat %d", i.seat.Row, i.seat.Number)
}

func (i seatItem) Description() string {
	return fmt.Sprintf("#%d, %.1f m from the focal point", i.seat.ID, i.distance)
}

func (i seatItem) FilterValue() string {
	return i.seat.Label()
}

type tickMsg time.Time

func tick(hz float64) tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/hz), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	session *venue.Session
	input   *venue.InputAdapter
	hz      float64

	seats   list.Model
	picking bool
	frame   venue.Frame
	err     error

	pointerX, pointerY int
	tracking           bool
}

func newModel(session *venue.Session, hz float64) model {
	layout := session.Layout()
	focal := layout.Geometry.FocalPoint
	items := make([]list.Item, 0, layout.Len())
	for _, s := range layout.Seats() {
		d := s.Position.Sub(focal)
		items = append(items, seatItem{seat: s, distance: math.Hypot(d.X, d.Z)})
	}

	seats := list.New(items, list.NewDefaultDelegate(), 60, 20)
	seats.Title = "Choose a seat"

	return model{
		session: session,
		input:   session.Input(),
		hz:      hz,
		seats:   seats,
	}
}

func (m model) Init() tea.Cmd {
	return tick(m.hz)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.frame = m.session.Tick()
		return m, tick(m.hz)

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.seats.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	return m, nil
}

func (m model) openPicker() model {
	m.picking = true
	m.input.Disengage()
	m.session.SetMenuOpen(true)
	if seat, ok := m.session.Seat(); ok {
		m.seats.Select(seat.ID - 1)
	}
	return m
}

func (m model) closePicker() model {
	m.picking = false
	m.session.SetMenuOpen(false)
	return m
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.seats.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m.closePicker(), nil
		case "enter":
			if it, ok := m.seats.SelectedItem().(seatItem); ok {
				_, m.err = m.session.SelectSeat(it.seat.ID)
			}
			return m.closePicker(), nil
		}
	}
	var cmd tea.Cmd
	m.seats, cmd = m.seats.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		return m.openPicker(), nil
	case "enter":
		m.input.Engage()
	case "esc":
		m.input.Disengage()
		m.tracking = false
	case "left", "h":
		m.input.PointerMoved(-keyStep, 0)
	case "right", "l":
		m.input.PointerMoved(keyStep, 0)
	case "up", "k":
		m.input.PointerMoved(0, -keyStep)
	case "down", "j":
		m.input.PointerMoved(0, keyStep)
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) model {
	if m.picking {
		return m
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.input.Engage()
		}
	case tea.MouseActionMotion:
		if m.tracking {
			dx := float64(msg.X-m.pointerX) * cellScale
			dy := float64(msg.Y-m.pointerY) * cellScale
			if dx != 0 || dy != 0 {
				m.input.PointerMoved(dx, dy)
			}
		}
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	m.tracking = true
	return m
}

func gainBar(gain float64) string {
	filled := int(math.Round(gain * barWidth))
	filled = max(0, min(barWidth, filled))
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func (m model) View() string {
	if m.picking {
		return docStyle.Render(m.seats.View())
	}

	f := m.frame
	var b strings.Builder
	b.WriteString(titleStyle.Render("Virtual venue") + "\n\n")

	if f.Seated {
		b.WriteString(row("Seat", fmt.Sprintf("%s (#%d)", f.Seat.Label(), f.Seat.ID)))
		offset := m.session.Controller().Offset()
		b.WriteString(row("Yaw", fmt.Sprintf("%+6.1f°", venue.Degrees(offset.Yaw))))
		b.WriteString(row("Pitch", fmt.Sprintf("%+6.1f°", venue.Degrees(offset.Pitch))))
	} else {
		b.WriteString(row("Seat", "none, press s to pick one"))
	}

	if f.Engaged {
		b.WriteString(row("Look", onStyle.Render("engaged")))
	} else {
		b.WriteString(row("Look", offStyle.Render("released")))
	}

	db := "-inf"
	if f.Gain > 0 {
		db = fmt.Sprintf("%.1f", venue.ToDB(f.Gain))
	}
	b.WriteString(row("Gain", fmt.Sprintf("%s %.2f (%s dB)", gainBar(f.Gain), f.Gain, db)))

	if n := len(f.Speakers); n > 0 {
		speaking := 0
		for _, g := range f.Speakers {
			if g > 0 {
				speaking++
			}
		}
		b.WriteString(row("Speakers", fmt.Sprintf("%d of %d audible", speaking, n)))
	}
	if m.err != nil {
		b.WriteString(offStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render("click/enter: look around • esc: release • arrows: turn • s: seats • q: quit"))
	return docStyle.Render(b.String())
}

// Run hosts session in the terminal until the user quits, ticking it at hz.
func Run(session *venue.Session, hz float64) error {
	if !(hz > 0) {
		hz = venue.DefaultTickRate
	}
	input := session.Input()
	input.Attach()
	defer input.Detach()

	p := tea.NewProgram(newModel(session, hz), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal session: %w", err)
	}
	return nil
}
