// Package tickets turns raw backend tickets into display-ready view models
// and filters them by free text.
package tickets

import "strings"

// Priority is the display bucket of a ticket.
type Priority string

const (
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityBlocker Priority = "blocker"
	PriorityNone    Priority = ""
)

// MapPriority converts the backend vocabulary to display buckets:
// CRITICAL->high, MAJOR->medium, MINOR->low, BLOCKER->blocker. The input is
// compared case-insensitively; anything else maps to PriorityNone.
//
// The table is kept as the backend defines it even though BLOCKER sits
// outside the high/medium/low scale.
func MapPriority(raw string) Priority {
	switch strings.ToUpper(raw) {
	case "CRITICAL":
		return PriorityHigh
	case "MAJOR":
		return PriorityMedium
	case "MINOR":
		return PriorityLow
	case "BLOCKER":
		return PriorityBlocker
	default:
		return PriorityNone
	}
}

// Class returns the style class of the priority, e.g. "priority-high".
func (p Priority) Class() string {
	if p == PriorityNone {
		return ""
	}
	return "priority-" + string(p)
}

// Color returns a hex colour for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityBlocker:
		return "#d0454c"
	case PriorityHigh:
		return "#ff7452"
	case PriorityMedium:
		return "#ffc400"
	case PriorityLow:
		return "#36b37e"
	default:
		return "#97a0af"
	}
}

// Icon returns a one-character marker for the priority.
func (p Priority) Icon() string {
	switch p {
	case PriorityBlocker:
		return "⛔"
	case PriorityHigh:
		return "▲"
	case PriorityMedium:
		return "■"
	case PriorityLow:
		return "▼"
	default:
		return "·"
	}
}
