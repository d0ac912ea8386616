package render

import (
	"fmt"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielolaszy/boardctl/internal/github"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderTicketDetail renders a full ticket view: header, metadata,
// descriptions, linked GitHub records and reviewers.
func RenderTicketDetail(t tickets.Ticket, reviewers []models.TeamMember) string {
	sections := []string{renderTicketHeader(t), renderTicketMetadata(t)}

	if t.Description != "" {
		sections = append(sections, renderDescription("Description", t.Description))
	}
	if t.GithubDescription != "" {
		sections = append(sections, renderDescription("GitHub description", t.GithubDescription))
	}
	if len(t.LinkedPullRequests) > 0 {
		sections = append(sections, renderPullRequests(t.LinkedPullRequests))
	}
	if len(t.LinkedWorkflowRuns) > 0 {
		sections = append(sections, renderWorkflowRuns(t.LinkedWorkflowRuns))
	}
	if len(reviewers) > 0 {
		sections = append(sections, renderReviewers(reviewers))
	}

	return strings.Join(sections, "\n\n")
}

func renderTicketHeader(t tickets.Ticket) string {
	idStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	titleStyle := lipgloss.NewStyle().Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tickets.StatusColor(t.Status))).Bold(true)
	priorityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Priority.Color())).Bold(true)

	priority := string(t.Priority)
	if priority == "" {
		priority = "none"
	}

	return fmt.Sprintf("%s  %s\n%s  %s",
		StyledText(t.TicketIdentifier, idStyle),
		StyledText(t.Title, titleStyle),
		StyledText(strings.ToUpper(t.Status), statusStyle),
		StyledText(fmt.Sprintf("%s %s", t.Priority.Icon(), priority), priorityStyle),
	)
}

func renderTicketMetadata(t tickets.Ticket) string {
	field := func(name, value string) string {
		return fmt.Sprintf("%s %s", StyledText(name+":", dimStyle), value)
	}

	lines := []string{field("Reporter", reporterLabel(t.Reporter))}

	if t.Assignee != nil {
		assignee := t.Assignee.Name
		if t.Assignee.LoginID != "" {
			assignee += " (@" + t.Assignee.LoginID + ")"
		}
		lines = append(lines, field("Assignee", assignee))
	} else {
		lines = append(lines, field("Assignee", "unassigned"))
	}

	if len(t.Labels) > 0 {
		labels := make([]string, 0, len(t.Labels))
		for _, l := range t.Labels {
			labels = append(labels, StyledText(l.Name, lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))))
		}
		lines = append(lines, field("Labels", strings.Join(labels, ", ")))
	}

	created := t.CreatedAt
	if !t.Created.IsZero() {
		created = fmt.Sprintf("%s (%s)", t.CreatedAt, humanize.Time(t.Created))
	}
	lines = append(lines, field("Created", created))

	if len(t.LinkedTicketIDs) > 0 {
		ids := make([]string, 0, len(t.LinkedTicketIDs))
		for _, linked := range t.LinkedTicketIDs {
			ids = append(ids, "#"+strconv.FormatInt(linked, 10))
		}
		lines = append(lines, field("Linked", strings.Join(ids, ", ")))
	}

	return strings.Join(lines, "\n")
}

func reporterLabel(r tickets.Reporter) string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "-"
	}
	if r.Email != "" {
		return fmt.Sprintf("%s <%s>", name, r.Email)
	}
	return name
}

func renderDescription(title, description string) string {
	rendered, err := RenderMarkdown(description)
	if err != nil {
		rendered = description
	}
	return StyledText(title, sectionStyle) + "\n" + rendered
}

func renderPullRequests(prs []models.PullRequest) string {
	lines := []string{StyledText("Pull requests", sectionStyle)}
	for _, pr := range prs {
		status := pr.PullRequestStatus
		if status == "" {
			status = "unknown"
		}
		lines = append(lines, fmt.Sprintf("  %s [%s] %s", pr.RepositoryName, strings.ToLower(status), pr.Title))
		lines = append(lines, "    "+StyledText(pr.HTMLURL, dimStyle))
	}
	return strings.Join(lines, "\n")
}

func renderWorkflowRuns(runs []models.WorkflowRun) string {
	lines := []string{StyledText("Workflow runs", sectionStyle)}
	for _, run := range runs {
		name := run.Name
		if name == "" {
			name = "workflow"
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s", tickets.ConclusionIcon(run.Conclusion), run.RepositoryName, name))
		lines = append(lines, "    "+StyledText(run.HTMLURL, dimStyle))
	}
	return strings.Join(lines, "\n")
}

func renderReviewers(reviewers []models.TeamMember) string {
	lines := []string{StyledText("Reviewers", sectionStyle)}
	for _, r := range reviewers {
		lines = append(lines, "  "+r.FullName())
	}
	return strings.Join(lines, "\n")
}

// RenderChecks renders the live state of a ticket's linked GitHub records.
func RenderChecks(checks []github.Check) string {
	if len(checks) == 0 {
		return EmptyState("No linked pull requests or workflow runs.", "")
	}

	headers := []string{"", "Kind", "Repository", "Name", "Recorded", "Live"}
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		live := c.Live
		if c.Error != "" {
			live = "error: " + c.Error
		}
		rows = append(rows, []string{c.Icon, c.Kind, c.Repository, truncate(c.Name, maxTitleWidth), c.Recorded, live})
	}

	return renderGrid(headers, rows, func(row, col int) string {
		if col == 5 && checks[row].Error != "" {
			return "9"
		}
		return ""
	})
}
