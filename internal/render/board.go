package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/danielolaszy/boardctl/internal/tickets"
)

const (
	maxCardsPerColumn = 10
	minColumnWidth    = 22
	defaultTermWidth  = 120
	cardPadding       = 2 // left+right padding inside cards
)

// BoardOptions configures board rendering behavior.
type BoardOptions struct {
	// Title is printed above the columns, e.g. "WEB · Sprint board".
	Title string
	// Width overrides the detected terminal width when positive.
	Width int
}

// RenderBoard renders grouped tickets as a kanban board. Columns follow
// tickets.OrderStatuses; every status the backend returned gets a column,
// empty ones included.
func RenderBoard(grouped tickets.Grouped, opts BoardOptions) string {
	statuses := tickets.OrderStatuses(tickets.StatusesFromGroups(grouped))
	if len(statuses) == 0 {
		return EmptyState("No statuses on this board.", "Tickets appear once the board has columns.")
	}

	if !ColorsEnabled() {
		return renderPlainBoard(grouped, statuses, opts)
	}
	return renderColorBoard(grouped, statuses, opts)
}

// terminalWidth returns the current terminal width, falling back to a default.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func renderColorBoard(grouped tickets.Grouped, statuses []tickets.Status, opts BoardOptions) string {
	tw := opts.Width
	if tw <= 0 {
		tw = terminalWidth()
	}

	gaps := len(statuses) - 1
	colWidth := max((tw-gaps)/len(statuses), minColumnWidth)
	cardContentWidth := max(colWidth-cardPadding-2, 5) // 2 for left+right border chars

	columns := make([]string, 0, len(statuses))
	for _, status := range statuses {
		columns = append(columns, renderColorColumn(status, grouped[status.ID], colWidth, cardContentWidth))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	if opts.Title == "" {
		return board
	}
	title := lipgloss.NewStyle().Bold(true).MarginBottom(1).Render(opts.Title)
	return lipgloss.JoinVertical(lipgloss.Left, title, board)
}

func renderColorColumn(status tickets.Status, list []tickets.Ticket, colWidth, contentWidth int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(status.Color)).
		Width(colWidth).
		Align(lipgloss.Center)

	header := headerStyle.Render(fmt.Sprintf("%s (%d)", status.Name, len(list)))

	visible := list
	overflow := 0
	if len(list) > maxCardsPerColumn {
		visible = list[:maxCardsPerColumn]
		overflow = len(list) - maxCardsPerColumn
	}

	cards := make([]string, 0, len(visible)+2)
	cards = append(cards, header)
	for _, t := range visible {
		cards = append(cards, renderColorCard(t, status, colWidth, contentWidth))
	}

	if overflow > 0 {
		moreStyle := lipgloss.NewStyle().
			Width(colWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("8"))
		cards = append(cards, moreStyle.Render(fmt.Sprintf("+%d more", overflow)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderColorCard(t tickets.Ticket, status tickets.Status, colWidth, contentWidth int) string {
	priIcon := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Priority.Color())).
		Render(t.Priority.Icon())
	lines := []string{
		fmt.Sprintf("%s %s", t.TicketIdentifier, priIcon),
		truncate(t.Title, contentWidth),
	}

	if len(t.Labels) > 0 {
		labels := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			labels = append(labels, lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(l.Name))
		}
		lines = append(lines, strings.Join(labels, ", "))
	}
	if t.Assignee != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(truncate("@"+t.Assignee.Name, contentWidth)))
	}

	cardStyle := lipgloss.NewStyle().
		Width(colWidth-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(status.Color))

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// --- Plain text fallback ---

func renderPlainBoard(grouped tickets.Grouped, statuses []tickets.Status, opts BoardOptions) string {
	var b strings.Builder

	if opts.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", opts.Title)
	}

	for i, status := range statuses {
		if i > 0 {
			b.WriteString("\n")
		}

		list := grouped[status.ID]
		fmt.Fprintf(&b, "=== %s (%d) ===\n", status.Name, len(list))

		visible := list
		overflow := 0
		if len(list) > maxCardsPerColumn {
			visible = list[:maxCardsPerColumn]
			overflow = len(list) - maxCardsPerColumn
		}

		for _, t := range visible {
			renderPlainCard(&b, t)
		}

		if overflow > 0 {
			fmt.Fprintf(&b, "  +%d more\n", overflow)
		}
	}

	return b.String()
}

func renderPlainCard(b *strings.Builder, t tickets.Ticket) {
	priority := string(t.Priority)
	if priority == "" {
		priority = "none"
	}
	fmt.Fprintf(b, "  %s [%s]\n", t.TicketIdentifier, priority)
	fmt.Fprintf(b, "  %s\n", truncate(t.Title, maxTitleWidth))

	if len(t.Labels) > 0 {
		fmt.Fprintf(b, "  %s\n", labelNames(t.Labels))
	}
	if t.Assignee != nil {
		fmt.Fprintf(b, "  @%s\n", t.Assignee.Name)
	}

	b.WriteString("\n")
}
