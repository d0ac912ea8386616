package tickets

import (
	"slices"
	"sort"
	"strings"
)

// StatusOrder is the left-to-right column order of known statuses.
var StatusOrder = []string{
	"TO DO",
	"STOP PROGRESS",
	"IN PROGRESS",
	"WAITING FOR REVIEW",
	"WAITING FOR MERGE",
	"DONE",
}

var statusColors = map[string]string{
	"TO DO":              "#0052cc",
	"STOP PROGRESS":      "#d0454c",
	"IN PROGRESS":        "#36b37e",
	"WAITING FOR REVIEW": "#ffc400",
	"WAITING FOR MERGE":  "#8777d9",
	"DONE":               "#8a2be2",
}

// UnknownStatusColor is used for statuses outside the colour table.
const UnknownStatusColor = "#f0f1f2"

// Status is a board column.
type Status struct {
	// ID is the group key exactly as the backend sent it.
	ID string `json:"id" yaml:"id"`
	// Name is the upper-cased key.
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// StatusColor returns the colour of a status name, case-insensitively.
func StatusColor(name string) string {
	if c, ok := statusColors[strings.ToUpper(name)]; ok {
		return c
	}
	return UnknownStatusColor
}

// StatusesFromGroups derives one Status per group key. Nothing is invented:
// a status appears only if the backend returned it.
func StatusesFromGroups(grouped Grouped) []Status {
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	statuses := make([]Status, 0, len(keys))
	for _, k := range keys {
		name := strings.ToUpper(k)
		statuses = append(statuses, Status{ID: k, Name: name, Color: StatusColor(name)})
	}
	return statuses
}

// OrderStatuses sequences known statuses by StatusOrder. Statuses outside
// the order follow, alphabetically by name.
func OrderStatuses(statuses []Status) []Status {
	ordered := make([]Status, 0, len(statuses))
	for _, name := range StatusOrder {
		for _, s := range statuses {
			if s.Name == name {
				ordered = append(ordered, s)
			}
		}
	}

	var rest []Status
	for _, s := range statuses {
		if !slices.Contains(StatusOrder, s.Name) {
			rest = append(rest, s)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })

	return append(ordered, rest...)
}

var conclusionIcons = map[string]string{
	"action_required": "⚠️",
	"cancelled":       "⏹️",
	"failure":         "❌",
	"neutral":         "➖",
	"skipped":         "⏭️",
	"stale":           "⌛",
	"success":         "✅",
	"timed_out":       "⏰",
	"startup_failure": "🔥",
}

// UnknownConclusionIcon marks runs without (or with an unknown) conclusion.
const UnknownConclusionIcon = "❓"

// ConclusionIcon returns the icon of a workflow-run conclusion. nil means
// the run has not concluded.
func ConclusionIcon(conclusion *string) string {
	if conclusion == nil {
		return UnknownConclusionIcon
	}
	if icon, ok := conclusionIcons[*conclusion]; ok {
		return icon
	}
	return UnknownConclusionIcon
}
