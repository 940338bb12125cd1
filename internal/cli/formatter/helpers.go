package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueDateStyle colors a due date by urgency relative to now.
func DueDateStyle(t time.Time, now time.Time) lipgloss.Style {
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return StyleRed
	case days <= 3:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// DateRange renders a phase's start/end window, omitting missing ends.
func DateRange(start, end *time.Time) string {
	const layout = "2006-01-02"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " → " + end.Format(layout)
	case start != nil:
		return start.Format(layout) + " →"
	case end != nil:
		return "→ " + end.Format(layout)
	default:
		return ""
	}
}
