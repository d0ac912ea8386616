package tickets

import (
	"time"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// DisplayTimeLayout renders timestamps the way an en-US locale prints them.
const DisplayTimeLayout = "1/2/2006, 3:04:05 PM"

// InvalidDate is shown for timestamps that cannot be parsed.
const InvalidDate = "Invalid Date"

// Assignee is the summary of the member a ticket is assigned to.
type Assignee struct {
	Name      string `json:"name" yaml:"name"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
	LoginID   string `json:"loginId" yaml:"loginId"`
}

// Reporter is the member who created a ticket.
type Reporter struct {
	ID            int64  `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Email         string `json:"email" yaml:"email"`
	TeamID        *int64 `json:"teamId" yaml:"teamId"`
	Position      string `json:"position" yaml:"position"`
	LoginInGithub string `json:"loginInGithub" yaml:"loginInGithub"`
	AvatarURL     string `json:"avatarUrl" yaml:"avatarUrl"`
}

// Ticket is the display-ready form of a backend ticket. Values are built
// fresh on every fetch and never edited in place.
type Ticket struct {
	ID                 int64                `json:"id" yaml:"id"`
	TicketIdentifier   string               `json:"ticketIdentifier" yaml:"ticketIdentifier"`
	Title              string               `json:"title" yaml:"title"`
	Priority           Priority             `json:"priority" yaml:"priority"`
	Labels             []models.Label       `json:"labels" yaml:"labels"`
	Assignee           *Assignee            `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Reporter           Reporter             `json:"reporter" yaml:"reporter"`
	Description        string               `json:"description" yaml:"description"`
	GithubDescription  string               `json:"githubDescription" yaml:"githubDescription"`
	CreatedAt          string               `json:"createdAt" yaml:"createdAt"`
	LinkedTicketIDs    []int64              `json:"linkedTicketIds" yaml:"linkedTicketIds"`
	Status             string               `json:"status" yaml:"status"`
	LinkedPullRequests []models.PullRequest `json:"linkedPullRequests" yaml:"linkedPullRequests"`
	LinkedWorkflowRuns []models.WorkflowRun `json:"linkedWorkflowRuns" yaml:"linkedWorkflowRuns"`

	// Created is the parsed CreatedAt, zero when unparseable.
	Created time.Time `json:"-" yaml:"-"`
}

// Grouped maps a status key to the tickets in that status, in server order.
type Grouped map[string][]Ticket

// MapAssignee summarises a member as an assignee.
func MapAssignee(m models.TeamMember) Assignee {
	return Assignee{
		Name:      m.FullName(),
		AvatarURL: m.AvatarURL,
		LoginID:   m.LoginInGithub,
	}
}

// MapTicket converts a raw ticket. The reporter is expected to be present; a
// missing one yields an empty Reporter. Timestamps are rendered in loc.
func MapTicket(raw models.Ticket, loc *time.Location) Ticket {
	t := Ticket{
		ID:                 raw.ID,
		TicketIdentifier:   raw.TicketIdentifier,
		Title:              raw.Summary,
		Priority:           MapPriority(raw.Priority),
		Labels:             raw.Labels,
		Description:        raw.Description,
		GithubDescription:  raw.GithubDescription,
		LinkedTicketIDs:    raw.LinkedTicketIDs,
		Status:             raw.Status,
		LinkedPullRequests: raw.LinkedPullRequests,
		LinkedWorkflowRuns: raw.LinkedWorkflowRuns,
	}

	if raw.Assignee != nil {
		a := MapAssignee(*raw.Assignee)
		t.Assignee = &a
	}

	if r := raw.Reporter; r != nil {
		t.Reporter = Reporter{
			ID:            r.ID,
			Name:          r.FullName(),
			Email:         r.Email,
			TeamID:        r.TeamID,
			Position:      r.Position,
			LoginInGithub: r.LoginInGithub,
			AvatarURL:     r.AvatarURL,
		}
	}

	t.Created, t.CreatedAt = formatTimestamp(raw.CreatedAt, loc)
	return t
}

// MapAPITicket converts a raw ticket using the local time zone.
func MapAPITicket(raw models.Ticket) Ticket {
	return MapTicket(raw, time.Local)
}

// MapGrouped converts every group, keeping keys and order.
func MapGrouped(raw map[string][]models.Ticket, loc *time.Location) Grouped {
	out := make(Grouped, len(raw))
	for status, list := range raw {
		out[status] = MapList(list, loc)
	}
	return out
}

// MapList converts a flat list, keeping order.
func MapList(raw []models.Ticket, loc *time.Location) []Ticket {
	out := make([]Ticket, 0, len(raw))
	for _, r := range raw {
		out = append(out, MapTicket(r, loc))
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// formatTimestamp accepts ISO-8601 with or without zone; a value without a
// zone is read in loc.
func formatTimestamp(raw string, loc *time.Location) (time.Time, string) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts, ts.In(loc).Format(DisplayTimeLayout)
		}
	}
	return time.Time{}, InvalidDate
}
