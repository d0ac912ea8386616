package cmd

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/boardctl/internal/jira"
	"github.com/danielolaszy/boardctl/internal/output"
	"github.com/danielolaszy/boardctl/internal/tickets"
)

// mockMirrorer implements mirrorer for testing.
type mockMirrorer struct {
	MirroredIssuesFunc func(string) (map[string]jira.Mirror, error)
	MirrorTicketFunc   func(string, tickets.Ticket) (string, error)
	CloseIssueFunc     func(string) error
}

func (m *mockMirrorer) MirroredIssues(_ context.Context, projectKey string) (map[string]jira.Mirror, error) {
	if m.MirroredIssuesFunc != nil {
		return m.MirroredIssuesFunc(projectKey)
	}
	return map[string]jira.Mirror{}, nil
}

func (m *mockMirrorer) MirrorTicket(_ context.Context, projectKey string, t tickets.Ticket) (string, error) {
	if m.MirrorTicketFunc != nil {
		return m.MirrorTicketFunc(projectKey, t)
	}
	return "", errors.New("MirrorTicket not implemented")
}

func (m *mockMirrorer) CloseIssue(_ context.Context, key string) error {
	if m.CloseIssueFunc != nil {
		return m.CloseIssueFunc(key)
	}
	return errors.New("CloseIssue not implemented")
}

func boardTickets() []tickets.Ticket {
	return []tickets.Ticket{
		{TicketIdentifier: "WEB-1", Title: "Fix login", Status: "TO DO"},
		{TicketIdentifier: "WEB-2", Title: "Ship it", Status: "DONE"},
		{TicketIdentifier: "WEB-3", Title: "Write docs", Status: "IN PROGRESS"},
	}
}

func TestMirrorTicketsSearchError(t *testing.T) {
	m := &mockMirrorer{
		MirroredIssuesFunc: func(string) (map[string]jira.Mirror, error) {
			return nil, errors.New("API error")
		},
	}

	_, err := mirrorTickets(context.Background(), m, "OPS", boardTickets(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
}

func TestMirrorTicketsCreatesMissingAndClosesDone(t *testing.T) {
	var created, closed []string
	m := &mockMirrorer{
		MirroredIssuesFunc: func(projectKey string) (map[string]jira.Mirror, error) {
			assert.Equal(t, "OPS", projectKey)
			return map[string]jira.Mirror{
				"WEB-2": {Key: "OPS-20", Identifier: "WEB-2", Status: "In Progress"},
				"WEB-3": {Key: "OPS-30", Identifier: "WEB-3", Status: "To Do"},
			}, nil
		},
		MirrorTicketFunc: func(_ string, t tickets.Ticket) (string, error) {
			created = append(created, t.TicketIdentifier)
			return "OPS-10", nil
		},
		CloseIssueFunc: func(key string) error {
			closed = append(closed, key)
			return nil
		},
	}

	report, err := mirrorTickets(context.Background(), m, "OPS", boardTickets(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"WEB-1"}, created)
	assert.Equal(t, []string{"OPS-20"}, closed)
	assert.Equal(t, []string{"OPS-10"}, report.Created)
	assert.Equal(t, []string{"OPS-20"}, report.Closed)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 3, report.Tickets)
	assert.Equal(t, 2, report.Existing)
	assert.Equal(t, "Mirrored 1 of 3 tickets into OPS, closed 1", report.summary())
}

func TestMirrorTicketsDryRunWritesNothing(t *testing.T) {
	m := &mockMirrorer{
		MirroredIssuesFunc: func(string) (map[string]jira.Mirror, error) {
			return map[string]jira.Mirror{"WEB-2": {Key: "OPS-20", Identifier: "WEB-2", Status: "To Do"}}, nil
		},
	}

	report, err := mirrorTickets(context.Background(), m, "OPS", boardTickets(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"WEB-1", "WEB-3"}, report.Created)
	assert.Equal(t, []string{"OPS-20"}, report.Closed)
	assert.Equal(t, "Would mirror 2 of 3 tickets into OPS, closed 1", report.summary())
}

func TestMirrorTicketsContinuesAfterFailure(t *testing.T) {
	m := &mockMirrorer{
		MirroredIssuesFunc: func(string) (map[string]jira.Mirror, error) {
			return map[string]jira.Mirror{"WEB-2": {Key: "OPS-20", Identifier: "WEB-2", Status: "To Do"}}, nil
		},
		MirrorTicketFunc: func(_ string, t tickets.Ticket) (string, error) {
			if t.TicketIdentifier == "WEB-1" {
				return "", errors.New("failed to create jira ticket")
			}
			return "OPS-31", nil
		},
		CloseIssueFunc: func(string) error {
			return errors.New("no transition")
		},
	}

	report, err := mirrorTickets(context.Background(), m, "OPS", boardTickets(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"OPS-31"}, report.Created)
	assert.Empty(t, report.Closed)
	assert.Equal(t, []string{"WEB-1", "WEB-2"}, report.Failed)
	assert.Contains(t, report.summary(), "2 failed: WEB-1, WEB-2")
}

func TestJiraMirrorRequiresFlags(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	res := execute(t, b, "", "jira", "mirror", "--jira-project", "OPS")
	assert.Equal(t, output.ExitGeneral, res.code)
	assert.Contains(t, res.stderr, "--board is required")

	res = execute(t, b, "", "jira", "mirror", "--board", "3")
	assert.Contains(t, res.stderr, "--jira-project is required")
}

func TestJiraMirrorRequiresCredentials(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})
	t.Setenv("JIRA_URL", "")
	t.Setenv("JIRA_USERNAME", "")
	t.Setenv("JIRA_TOKEN", "")

	res := execute(t, b, "", "jira", "mirror", "--board", "3", "--jira-project", "ops")
	assert.Equal(t, output.ExitGeneral, res.code)
	assert.Contains(t, res.stderr, "missing required environment variables")
}
