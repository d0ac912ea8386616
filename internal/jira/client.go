// Package jira mirrors board tickets into a JIRA project.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/boardctl/internal/config"
	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/tickets"
)

// SignaturePrefix marks issue descriptions written by boardctl.
const SignaturePrefix = "Mirrored by boardctl from ticket"

// DoneStatus is the JIRA status a mirror is moved to once its ticket is done.
const DoneStatus = "Done"

const searchPageSize = 100

// Client handles interactions with the JIRA API
type Client struct {
	client *jira.Client
}

// NewClient creates a JIRA client authenticated with username and API token.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	logging.Debug("jira configuration",
		"url", cfg.Jira.BaseURL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return newClient(tp.Client(), cfg.Jira.BaseURL)
}

func newClient(hc *http.Client, baseURL string) (*Client, error) {
	client, err := jira.NewClient(hc, baseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating jira client: %w", err)
	}
	return &Client{client: client}, nil
}

// Mirror is a JIRA issue created for a board ticket.
type Mirror struct {
	Key        string `json:"key" yaml:"key"`
	Identifier string `json:"ticketIdentifier" yaml:"ticketIdentifier"`
	Status     string `json:"status" yaml:"status"`
}

var summaryIdentifier = regexp.MustCompile(`^\[([\w\-]+)\]`)

// ParseIdentifierFromSummary extracts "T-1" from "[T-1] Fix it". It returns
// "" when the summary carries no identifier.
func ParseIdentifierFromSummary(summary string) string {
	matches := summaryIdentifier.FindStringSubmatch(summary)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// Signature returns the description footer that marks a mirror.
func Signature(identifier string) string {
	return fmt.Sprintf("----\n%s %s", SignaturePrefix, identifier)
}

// Priority maps a display priority to the default JIRA priority scheme. The
// empty string means "leave the project default".
func Priority(p tickets.Priority) string {
	switch p {
	case tickets.PriorityBlocker:
		return "Highest"
	case tickets.PriorityHigh:
		return "High"
	case tickets.PriorityMedium:
		return "Medium"
	case tickets.PriorityLow:
		return "Low"
	default:
		return ""
	}
}

// IssueType picks the JIRA issue type from the ticket labels. Tickets labelled
// bug, story or feature get the matching type; everything else is a Task.
func IssueType(t tickets.Ticket) string {
	for _, candidate := range []string{"Bug", "Story", "Feature"} {
		for _, l := range t.Labels {
			if strings.EqualFold(l.Name, candidate) {
				return candidate
			}
		}
	}
	return "Task"
}

// labelName makes a board label usable as a JIRA label, which may not contain
// whitespace.
func labelName(name string) string {
	return strings.Join(strings.Fields(name), "-")
}

// BuildIssue assembles the JIRA issue that mirrors t in projectKey.
func BuildIssue(projectKey string, t tickets.Ticket) *jira.Issue {
	description := t.Description
	if description != "" {
		description += "\n\n"
	}
	description += Signature(t.TicketIdentifier)

	labels := make([]string, 0, len(t.Labels))
	for _, l := range t.Labels {
		if name := labelName(l.Name); name != "" {
			labels = append(labels, name)
		}
	}

	fields := &jira.IssueFields{
		Project:     jira.Project{Key: projectKey},
		Summary:     fmt.Sprintf("[%s] %s", t.TicketIdentifier, t.Title),
		Description: description,
		Type:        jira.IssueType{Name: IssueType(t)},
		Labels:      labels,
	}
	if p := Priority(t.Priority); p != "" {
		fields.Priority = &jira.Priority{Name: p}
	}

	return &jira.Issue{Fields: fields}
}

// MirroredIssues returns the existing mirrors in projectKey keyed by ticket
// identifier.
func (c *Client) MirroredIssues(ctx context.Context, projectKey string) (map[string]Mirror, error) {
	jql := fmt.Sprintf(`project = '%s' AND description ~ "%s"`, projectKey, SignaturePrefix)
	opts := &jira.SearchOptions{
		MaxResults: searchPageSize,
		Fields:     []string{"summary", "status"},
	}

	mirrors := make(map[string]Mirror)
	for {
		issues, resp, err := c.client.Issue.SearchWithContext(ctx, jql, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search jira issues: %v (status: %d)", err, statusCode(resp))
		}

		for _, issue := range issues {
			if issue.Fields == nil {
				continue
			}
			identifier := ParseIdentifierFromSummary(issue.Fields.Summary)
			if identifier == "" {
				continue
			}
			m := Mirror{Key: issue.Key, Identifier: identifier}
			if issue.Fields.Status != nil {
				m.Status = issue.Fields.Status.Name
			}
			mirrors[identifier] = m
		}

		opts.StartAt += len(issues)
		if len(issues) == 0 || resp == nil || opts.StartAt >= resp.Total {
			break
		}
	}

	logging.Debug("found jira mirrors", "project", projectKey, "count", len(mirrors))
	return mirrors, nil
}

// MirrorTicket creates the JIRA issue for t and returns its key.
func (c *Client) MirrorTicket(ctx context.Context, projectKey string, t tickets.Ticket) (string, error) {
	created, resp, err := c.client.Issue.CreateWithContext(ctx, BuildIssue(projectKey, t))
	if err != nil {
		return "", fmt.Errorf("failed to create jira ticket: %v (status: %d)", err, statusCode(resp))
	}

	logging.Info("created jira ticket",
		"ticket", t.TicketIdentifier,
		"jira_key", created.Key)
	return created.Key, nil
}

// CloseIssue moves an issue to DoneStatus through the first transition that
// leads there.
func (c *Client) CloseIssue(ctx context.Context, key string) error {
	transitions, resp, err := c.client.Issue.GetTransitionsWithContext(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to get transitions for %s: %v (status: %d)", key, err, statusCode(resp))
	}

	for _, tr := range transitions {
		if strings.EqualFold(tr.To.Name, DoneStatus) || strings.EqualFold(tr.Name, DoneStatus) {
			if resp, err := c.client.Issue.DoTransitionWithContext(ctx, key, tr.ID); err != nil {
				return fmt.Errorf("failed to transition %s: %v (status: %d)", key, err, statusCode(resp))
			}
			logging.Info("closed jira ticket", "jira_key", key)
			return nil
		}
	}

	return fmt.Errorf("no transition to %q available for %s", DoneStatus, key)
}

// Plan decides what a mirror run does: tickets without a mirror are created,
// and mirrors of DONE tickets that are not yet done are closed.
func Plan(list []tickets.Ticket, existing map[string]Mirror) (create []tickets.Ticket, toClose []Mirror) {
	for _, t := range list {
		m, ok := existing[t.TicketIdentifier]
		if !ok {
			create = append(create, t)
			continue
		}
		if strings.EqualFold(t.Status, "DONE") && !strings.EqualFold(m.Status, DoneStatus) {
			toClose = append(toClose, m)
		}
	}
	return create, toClose
}

func statusCode(resp *jira.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
