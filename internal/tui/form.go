// Package tui implements the interactive Tripcast terminal client.
package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tripcast/tripcast/internal/client"
)

// RouteService calculates routes. *client.Client satisfies it.
type RouteService interface {
	CalculateRoute(ctx context.Context, req client.RouteRequest) (*client.RouteResult, error)
}

// form field indexes, in focus order.
const (
	fieldSource = iota
	fieldDestination
	fieldMode
	fieldStartTime
	fieldTomTomKey
	fieldWeatherKey
	fieldCount
)

// transportModes in the order the mode field cycles through them.
var transportModes = []string{"driving", "walking", "cycling", "transit"}

// inputTimeLayout is what the start time field accepts.
const inputTimeLayout = "2006-01-02T15:04"

type routeResultMsg struct {
	result *client.RouteResult
}

type routeErrMsg struct {
	detail string
}

// Model is the Bubble Tea model for the route form and result timeline.
type Model struct {
	service RouteService
	now     func() time.Time

	inputs    [fieldCount]string
	modeIndex int
	focus     int

	inFlight bool
	errMsg   string
	result   *client.RouteResult

	quitting bool
}

// NewModel builds the initial form state. The start time field defaults to
// the current time.
func NewModel(service RouteService) Model {
	m := Model{
		service: service,
		now:     time.Now,
	}
	m.inputs[fieldStartTime] = time.Now().Format(inputTimeLayout)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// canSubmit reports whether every required field holds a value and no
// request is already running.
func (m Model) canSubmit() bool {
	if m.inFlight {
		return false
	}
	for _, field := range []int{fieldSource, fieldDestination, fieldStartTime, fieldTomTomKey, fieldWeatherKey} {
		if strings.TrimSpace(m.inputs[field]) == "" {
			return false
		}
	}
	return true
}

func (m Model) startTime() time.Time {
	t, err := time.Parse(inputTimeLayout, strings.TrimSpace(m.inputs[fieldStartTime]))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (m Model) submit() tea.Cmd {
	req := client.RouteRequest{
		Source:        strings.TrimSpace(m.inputs[fieldSource]),
		Destination:   strings.TrimSpace(m.inputs[fieldDestination]),
		TransportMode: transportModes[m.modeIndex],
		StartTime:     m.startTime(),
		TomTomAPIKey:  strings.TrimSpace(m.inputs[fieldTomTomKey]),
		WeatherAPIKey: strings.TrimSpace(m.inputs[fieldWeatherKey]),
	}
	service := m.service
	return func() tea.Msg {
		result, err := service.CalculateRoute(context.Background(), req)
		if err != nil {
			return routeErrMsg{detail: err.Error()}
		}
		return routeResultMsg{result: result}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			return m, nil

		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			return m, nil

		case "left":
			if m.focus == fieldMode {
				m.modeIndex = (m.modeIndex + len(transportModes) - 1) % len(transportModes)
			}
			return m, nil

		case "right":
			if m.focus == fieldMode {
				m.modeIndex = (m.modeIndex + 1) % len(transportModes)
			}
			return m, nil

		case "enter":
			if !m.canSubmit() {
				return m, nil
			}
			if m.startTime().IsZero() {
				m.errMsg = "Start time must look like 2026-08-27T09:00"
				return m, nil
			}
			m.inFlight = true
			m.errMsg = ""
			return m, m.submit()

		case "backspace":
			if m.focus != fieldMode && len(m.inputs[m.focus]) > 0 {
				m.inputs[m.focus] = m.inputs[m.focus][:len(m.inputs[m.focus])-1]
			}
			return m, nil

		default:
			if m.focus != fieldMode && msg.Type == tea.KeyRunes {
				m.inputs[m.focus] += string(msg.Runes)
			}
			return m, nil
		}

	case routeResultMsg:
		// The latest answer wins even when an earlier submission is
		// still displayed.
		m.inFlight = false
		m.errMsg = ""
		m.result = msg.result
		return m, nil

	case routeErrMsg:
		// The previous result stays on screen under the error so the
		// user keeps something to look at while fixing inputs.
		m.inFlight = false
		m.errMsg = msg.detail
		return m, nil
	}

	return m, nil
}

var fieldNames = [fieldCount]string{
	"Source",
	"Destination",
	"Transport mode",
	"Start time",
	"TomTom API key",
	"WeatherAPI key",
}

// maskKey hides API key values beyond a short prefix.
func maskKey(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", len(v)-4)
}

func (m Model) fieldValue(i int) string {
	switch i {
	case fieldMode:
		return "< " + transportModes[m.modeIndex] + " >"
	case fieldTomTomKey, fieldWeatherKey:
		return maskKey(m.inputs[i])
	default:
		return m.inputs[i]
	}
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tripcast: weather along your route"))
	b.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		name := fieldNames[i]
		value := m.fieldValue(i)
		if i == m.focus {
			b.WriteString(focusedStyle.Render("> " + name + ": "))
			b.WriteString(value)
			b.WriteString(focusedStyle.Render("▌"))
		} else {
			b.WriteString(labelStyle.Render("  " + name + ": "))
			b.WriteString(value)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.inFlight:
		b.WriteString(dimStyle.Render("Calculating route..."))
	case m.canSubmit():
		b.WriteString(dimStyle.Render("Press enter to calculate route"))
	default:
		b.WriteString(dimStyle.Render("Fill in every field to calculate a route"))
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(RenderTimeline(m.result, m.now()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab/shift+tab move · ←/→ change mode · enter submit · esc quit"))
	b.WriteString("\n")

	return b.String()
}
