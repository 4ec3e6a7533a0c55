package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dquispe/jornada/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HMS renders a second count as HH:MM:SS.
func HMS(sec int) string {
	return domain.FormatHMS(sec)
}

// HMSOrRunning renders a stored duration, or a green "en curso" marker when
// the entry is still open.
func HMSOrRunning(sec *int) string {
	if sec == nil {
		return StyleGreen.Render("en curso")
	}
	return domain.FormatHMS(*sec)
}

// ClockTime renders a timestamp as local wall-clock time.
func ClockTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// ClockTimeOrDash renders an optional timestamp, with a dimmed dash when nil.
func ClockTimeOrDash(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return ClockTime(*t)
}

// OrDash renders an optional string, with a dimmed dash when nil or empty.
func OrDash(s *string) string {
	if s == nil || *s == "" {
		return StyleDim.Render("--")
	}
	return *s
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < 0:
		return t.Local().Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
