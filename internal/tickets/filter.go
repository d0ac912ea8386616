package tickets

import "strings"

// FilterTicketsByText keeps, in every status group, the tickets whose title,
// identifier, label names or assignee name contain text (case-insensitive).
// Every group key survives, possibly with an empty list. Blank text returns
// grouped itself.
func FilterTicketsByText(grouped Grouped, text string) Grouped {
	if strings.TrimSpace(text) == "" {
		return grouped
	}

	needle := strings.ToLower(text)
	filtered := make(Grouped, len(grouped))
	for status, list := range grouped {
		kept := make([]Ticket, 0, len(list))
		for _, t := range list {
			if matchesCard(t, needle) {
				kept = append(kept, t)
			}
		}
		filtered[status] = kept
	}
	return filtered
}

// FilterTicketsByTextList applies the same match to a flat list and also
// searches the description and the GitHub description. Blank text returns
// tickets itself.
func FilterTicketsByTextList(tickets []Ticket, text string) []Ticket {
	if strings.TrimSpace(text) == "" {
		return tickets
	}

	needle := strings.ToLower(text)
	kept := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if matchesCard(t, needle) ||
			contains(t.Description, needle) ||
			contains(t.GithubDescription, needle) {
			kept = append(kept, t)
		}
	}
	return kept
}

// matchesCard checks the fields visible on a board card.
func matchesCard(t Ticket, needle string) bool {
	if contains(t.Title, needle) || contains(t.TicketIdentifier, needle) {
		return true
	}
	for _, l := range t.Labels {
		if contains(l.Name, needle) {
			return true
		}
	}
	return t.Assignee != nil && contains(t.Assignee.Name, needle)
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
