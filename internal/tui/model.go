// Package tui is a terminal front-end for a headless globe: the marker list
// drives hover and focus exactly like the on-screen list does.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lightglobe/globe/interact"
	"lightglobe/globe/markers"
	"lightglobe/globe/overlay"
)

var (
	colorTitle  = lipgloss.Color("#89b4fa")
	colorText   = lipgloss.Color("#cdd6f4")
	colorDim    = lipgloss.Color("#7f849c")
	colorHover  = lipgloss.Color("#f9e2af")
	colorFocus  = lipgloss.Color("#E6F8FF")
	colorPillar = lipgloss.Color("#89dceb")
)

const (
	barWidth     = 12
	orbitPixels  = 24
	zoomStep     = 0.5
	defaultFrame = 33 * time.Millisecond
)

type tickMsg time.Time

// Model is the bubbletea model. It ticks the controller at a fixed interval.
type Model struct {
	ctrl     *interact.Controller
	reg      *markers.Registry
	rows     []overlay.Row
	cursor   int
	interval time.Duration
	maxLevel float32
}

// New returns a model over ctrl and reg. maxLevel scales the intensity bars,
// normally the focus level.
func New(ctrl *interact.Controller, reg *markers.Registry, interval time.Duration, maxLevel float32) Model {
	if interval <= 0 {
		interval = defaultFrame
	}
	if maxLevel <= 0 {
		maxLevel = 1
	}
	return Model{
		ctrl:     ctrl,
		reg:      reg,
		rows:     overlay.RowsFrom(reg.Visuals()),
		cursor:   -1,
		interval: interval,
		maxLevel: maxLevel,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Tick(m.interval)
		return m, m.tick()
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m = m.moveCursor(-1)
	case "down", "j", "tab":
		m = m.moveCursor(1)
	case "enter", " ":
		if id := m.cursorID(); id != "" {
			m.ctrl.ListClick(id)
		}
	case "esc":
		m = m.setCursor(-1)
		m.ctrl.ClearFocus()
	case "left", "h":
		m.ctrl.Drag(-orbitPixels, 0)
	case "right", "l":
		m.ctrl.Drag(orbitPixels, 0)
	case "+", "=":
		m.ctrl.Zoom(-zoomStep)
	case "-":
		m.ctrl.Zoom(zoomStep)
	}
	return m, nil
}

func (m Model) cursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].ID
}

func (m Model) moveCursor(d int) Model {
	n := len(m.rows)
	if n == 0 {
		return m
	}
	if m.cursor < 0 {
		if d > 0 {
			return m.setCursor(0)
		}
		return m.setCursor(n - 1)
	}
	return m.setCursor((m.cursor + d + n) % n)
}

func (m Model) setCursor(i int) Model {
	if old := m.cursorID(); old != "" {
		m.ctrl.ListHover(old, false)
	}
	m.cursor = i
	if id := m.cursorID(); id != "" {
		m.ctrl.ListHover(id, true)
	} else {
		m.cursor = -1
	}
	return m
}

// Cursor returns the selected row index, -1 for none.
func (m Model) Cursor() int { return m.cursor }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(colorTitle).Bold(true).Render("lightglobe"))
	b.WriteString("\n\n")

	p := m.ctrl.Pick()
	for i, r := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = lipgloss.NewStyle().Foreground(colorTitle).Bold(true).Render("> ")
		}
		name := lipgloss.NewStyle().Foreground(colorText)
		tag := ""
		switch r.ID {
		case p.Focused():
			name = name.Foreground(colorFocus).Bold(true)
			tag = lipgloss.NewStyle().Foreground(colorFocus).Render(" focus")
		case p.Hovered():
			name = name.Foreground(colorHover)
			tag = lipgloss.NewStyle().Foreground(colorHover).Render(" hover")
		}
		var intensity float32
		if v, ok := m.reg.Lookup(r.ID); ok {
			intensity = v.Intensity
		}
		fmt.Fprintf(&b, "%s%s %s%s\n", prefix, name.Width(14).Render(r.Text), m.bar(intensity), tag)
	}

	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorDim).Render("↑/↓ select  enter focus  esc clear  ←/→ orbit  +/- zoom  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) bar(intensity float32) string {
	n := int(intensity / m.maxLevel * barWidth)
	n = max(0, min(barWidth, n))
	return lipgloss.NewStyle().Foreground(colorPillar).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Foreground(colorDim).Render(strings.Repeat("·", barWidth-n))
}

func (m Model) status() string {
	var parts []string
	if d := m.ctrl.Director(); d.Active() {
		parts = append(parts, "flying to "+d.Current().MarkerID)
	}
	if m.ctrl.Ambient().Moving() {
		parts = append(parts, "camera moving")
	} else {
		parts = append(parts, fmt.Sprintf("stars %3.0f%%", m.ctrl.Effects().StarOpacity*100))
	}
	return lipgloss.NewStyle().Foreground(colorDim).Render(strings.Join(parts, "  "))
}
