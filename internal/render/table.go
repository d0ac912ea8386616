package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

const maxTitleWidth = 40

// StyledText applies a lipgloss style to text when colors are enabled.
// When colors are disabled, it returns the plain text unchanged.
func StyledText(text string, style lipgloss.Style) string {
	if ColorsEnabled() {
		return style.Render(text)
	}
	return text
}

// truncate shortens a string to maxLen runes, appending an ellipsis if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// EmptyState renders a styled empty-state message with an optional contextual hint.
func EmptyState(message, hint string) string {
	if !ColorsEnabled() {
		if hint == "" {
			return message
		}
		return message + "\n" + hint
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	result := dimStyle.Render(message)
	if hint != "" {
		result += "\n" + hintStyle.Render(hint)
	}
	return result
}

// colorFunc returns the foreground colour of a cell, "" for the default.
type colorFunc func(row, col int) string

// renderGrid draws rows under headers, as a bordered lipgloss table when
// colors are enabled and as aligned plain text otherwise.
func renderGrid(headers []string, rows [][]string, colors colorFunc) string {
	if !ColorsEnabled() {
		return renderPlainGrid(headers, rows)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if colors != nil && row >= 0 && row < len(rows) {
				if c := colors(row, col); c != "" {
					return s.Foreground(lipgloss.Color(c))
				}
			}
			return s
		})

	return t.Render()
}

func renderPlainGrid(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	b.WriteString(strings.Repeat("-", total))
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// createdLabel is the relative creation time, or the mapped text when the
// timestamp could not be parsed.
func createdLabel(t tickets.Ticket) string {
	if t.Created.IsZero() {
		return t.CreatedAt
	}
	return humanize.Time(t.Created)
}

func assigneeName(t tickets.Ticket) string {
	if t.Assignee == nil {
		return "-"
	}
	return t.Assignee.Name
}

func labelNames(labels []models.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// RenderTickets renders a flat ticket list.
func RenderTickets(list []tickets.Ticket) string {
	if len(list) == 0 {
		return EmptyState("No tickets found.", "Create one with: boardctl tickets create")
	}

	headers := []string{"ID", "Key", "Status", "Priority", "Title", "Assignee", "Labels", "Created"}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{
			id(t.ID),
			t.TicketIdentifier,
			strings.ToUpper(t.Status),
			strings.TrimSpace(fmt.Sprintf("%s %s", t.Priority.Icon(), t.Priority)),
			truncate(t.Title, maxTitleWidth),
			assigneeName(t),
			labelNames(t.Labels),
			createdLabel(t),
		})
	}

	return renderGrid(headers, rows, func(row, col int) string {
		switch col {
		case 2:
			return tickets.StatusColor(list[row].Status)
		case 3:
			return list[row].Priority.Color()
		}
		return ""
	})
}

// RenderProjects renders projects as a table.
func RenderProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return EmptyState("No projects found.", "Create one with: boardctl projects create")
	}

	headers := []string{"ID", "Key", "Name", "Owner", "Team"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{id(p.ID), p.Key, p.FullName, p.ProjectOwnerName, p.TeamName})
	}
	return renderGrid(headers, rows, nil)
}

// RenderTeams renders teams as a table.
func RenderTeams(teams []models.Team) string {
	if len(teams) == 0 {
		return EmptyState("No teams found.", "Create one with: boardctl teams create")
	}

	headers := []string{"ID", "Name", "Project manager", "Members"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{id(t.ID), t.Name, t.ProjectManagerName, strconv.Itoa(len(t.TeamMemberIDs))})
	}
	return renderGrid(headers, rows, nil)
}

// RenderMembers renders team members as a table.
func RenderMembers(members []models.TeamMember) string {
	if len(members) == 0 {
		return EmptyState("No members found.", "Create one with: boardctl members create")
	}

	headers := []string{"ID", "Name", "Email", "Position", "GitHub", "Team"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		team := "-"
		if m.TeamID != nil {
			team = id(*m.TeamID)
		}
		rows = append(rows, []string{id(m.ID), m.FullName(), m.Email, m.Position, m.LoginInGithub, team})
	}
	return renderGrid(headers, rows, nil)
}

// RenderLabels renders labels with their own colour.
func RenderLabels(labels []models.Label) string {
	if len(labels) == 0 {
		return EmptyState("No labels found.", "Create one with: boardctl labels create")
	}

	headers := []string{"ID", "Name", "Color", "Project"}
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []string{id(l.ID), l.Name, l.Color, id(l.ProjectID)})
	}
	return renderGrid(headers, rows, func(row, col int) string {
		if col == 1 {
			return labels[row].Color
		}
		return ""
	})
}

// RenderBoards renders boards, marking the default one.
func RenderBoards(boards []models.Board) string {
	if len(boards) == 0 {
		return EmptyState("No boards found.", "Create one with: boardctl boards create")
	}

	headers := []string{"ID", "Name", "Project", "Default"}
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		def := ""
		if b.Default {
			def = "yes"
		}
		rows = append(rows, []string{id(b.ID), b.Name, id(b.ProjectID), def})
	}
	return renderGrid(headers, rows, nil)
}
