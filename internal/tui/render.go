package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tripcast/tripcast/internal/client"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7AA2F7")).
			Padding(1, 0)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7AA2F7")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565F89"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7768E")).
			Bold(true)

	pointBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#414868")).
			Padding(0, 2)

	connectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#414868"))

	trafficColors = map[string]lipgloss.Style{
		"green":  lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A")),
		"yellow": lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68")),
		"red":    lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E")),
		"gray":   lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89")),
	}
)

// FormatDuration renders seconds as "Xh Ym". Sub-minute values round down
// to "0h 0m".
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatDistance renders meters as kilometers with one decimal place.
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatClock renders a point's estimated time for display.
func FormatClock(t time.Time) string {
	return t.Format("Mon 15:04")
}

// NormalizeIconURL upgrades protocol-relative icon URLs to https.
func NormalizeIconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}

// pointLabel names a timeline entry. Waypoints are numbered from 1 in
// route order.
func pointLabel(pointType string, waypointNumber int) string {
	switch pointType {
	case "start":
		return "Start"
	case "destination":
		return "Destination"
	default:
		return fmt.Sprintf("Waypoint %d", waypointNumber)
	}
}

// timeLabel distinguishes the departure from downstream arrival estimates.
func timeLabel(pointType string) string {
	if pointType == "start" {
		return "departure time"
	}
	return "estimated arrival"
}

func renderWeather(w *client.WeatherInfo) string {
	if w == nil {
		return dimStyle.Render("weather unavailable")
	}
	line := fmt.Sprintf("%.0f°C  %s", w.Temperature, w.Condition)
	details := fmt.Sprintf("humidity %d%%  wind %.0f km/h  visibility %.0f km",
		w.Humidity, w.WindSpeed, w.Visibility)
	if w.ForecastType == "forecast" {
		details += dimStyle.Render("  (forecast)")
	}
	return line + "\n" + details
}

func renderRoad(r *client.RoadConditions) string {
	if r == nil {
		return ""
	}
	style, ok := trafficColors[r.Color]
	if !ok {
		style = trafficColors["gray"]
	}
	label := style.Render("● " + r.Condition)
	if r.Condition == "Unknown" {
		return label
	}
	return fmt.Sprintf("%s  %.0f/%.0f km/h", label, r.CurrentSpeed, r.FreeFlowSpeed)
}

// renderPoint renders one timeline entry box.
func renderPoint(p client.RoutePoint, waypointNumber int) string {
	var b strings.Builder

	b.WriteString(focusedStyle.Render(pointLabel(p.PointType, waypointNumber)))
	b.WriteString("\n")
	b.WriteString(p.Address)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(timeLabel(p.PointType)))
	b.WriteString("  ")
	b.WriteString(FormatClock(p.EstimatedTime))

	if p.PointType != "start" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n%s from start, %s to go",
			FormatDistance(p.DistanceFromSource),
			FormatDistance(p.DistanceToDestination))))
	}

	b.WriteString("\n")
	b.WriteString(renderWeather(p.Weather))

	if road := renderRoad(p.RoadConditions); road != "" {
		b.WriteString("\n")
		b.WriteString(road)
	}

	return pointBoxStyle.Render(b.String())
}

// RenderTimeline renders a full route result. The departure entry is never
// shown in the past: when the requested start time has already gone by,
// its display time is brought forward to now and every downstream estimate
// shifts by the same amount.
func RenderTimeline(result *client.RouteResult, now time.Time) string {
	if result == nil || len(result.Points) == 0 {
		return ""
	}

	var shift time.Duration
	if first := result.Points[0]; first.PointType == "start" && first.EstimatedTime.Before(now) {
		shift = now.Sub(first.EstimatedTime)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Total: %s  ·  %s  ·  %s",
		FormatDuration(result.TotalDuration),
		FormatDistance(result.TotalDistance),
		result.TransportMode)))
	b.WriteString("\n")

	waypointNumber := 0
	for i, p := range result.Points {
		if p.PointType == "waypoint" {
			waypointNumber++
		}
		if !p.EstimatedTime.IsZero() {
			p.EstimatedTime = p.EstimatedTime.Add(shift)
		}
		b.WriteString(renderPoint(p, waypointNumber))
		if i < len(result.Points)-1 {
			b.WriteString("\n")
			b.WriteString(connectorStyle.Render("   │"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
