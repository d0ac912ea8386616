package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/boardctl/internal/config"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

func TestJiraClientCredentialValidation(t *testing.T) {
	testCases := []struct {
		name          string
		url           string
		username      string
		token         string
		errorContains string
	}{
		{
			name:          "Missing URL",
			username:      "test@example.com",
			token:         "test-token",
			errorContains: "JIRA_URL",
		},
		{
			name:          "Missing username",
			url:           "https://example.atlassian.net",
			token:         "test-token",
			errorContains: "JIRA_USERNAME",
		},
		{
			name:          "Missing token",
			url:           "https://example.atlassian.net",
			username:      "test@example.com",
			errorContains: "JIRA_TOKEN",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Jira: config.JiraConfig{BaseURL: tc.url, Username: tc.username, Token: tc.token}}
			_, err := NewClient(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}

	cfg := &config.Config{Jira: config.JiraConfig{BaseURL: "https://example.atlassian.net", Username: "u", Token: "t"}}
	_, err := NewClient(cfg)
	assert.NoError(t, err)
}

func TestParseIdentifierFromSummary(t *testing.T) {
	assert.Equal(t, "T-1", ParseIdentifierFromSummary("[T-1] Fix it"))
	assert.Equal(t, "WEB-42", ParseIdentifierFromSummary("[WEB-42] Dark mode"))
	assert.Equal(t, "", ParseIdentifierFromSummary("Fix it [T-1]"))
	assert.Equal(t, "", ParseIdentifierFromSummary(""))
}

func sampleTicket() tickets.Ticket {
	return tickets.Ticket{
		ID:               1,
		TicketIdentifier: "T-1",
		Title:            "Fix it",
		Priority:         tickets.PriorityHigh,
		Description:      "Login fails on Safari",
		Labels:           []models.Label{{Name: "bug"}, {Name: "needs review"}},
		Status:           "TO DO",
	}
}

func TestBuildIssue(t *testing.T) {
	issue := BuildIssue("OPS", sampleTicket())
	require.NotNil(t, issue.Fields)

	assert.Equal(t, "OPS", issue.Fields.Project.Key)
	assert.Equal(t, "[T-1] Fix it", issue.Fields.Summary)
	assert.Equal(t, "Bug", issue.Fields.Type.Name)
	assert.Equal(t, []string{"bug", "needs-review"}, issue.Fields.Labels)
	require.NotNil(t, issue.Fields.Priority)
	assert.Equal(t, "High", issue.Fields.Priority.Name)
	assert.True(t, strings.HasPrefix(issue.Fields.Description, "Login fails on Safari\n\n"))
	assert.True(t, strings.HasSuffix(issue.Fields.Description, Signature("T-1")))

	plain := sampleTicket()
	plain.Priority = tickets.PriorityNone
	plain.Labels = nil
	plain.Description = ""
	issue = BuildIssue("OPS", plain)
	assert.Nil(t, issue.Fields.Priority)
	assert.Equal(t, "Task", issue.Fields.Type.Name)
	assert.Equal(t, Signature("T-1"), issue.Fields.Description)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, "Highest", Priority(tickets.PriorityBlocker))
	assert.Equal(t, "Low", Priority(tickets.PriorityLow))
	assert.Equal(t, "", Priority(tickets.PriorityNone))
}

func TestPlan(t *testing.T) {
	list := []tickets.Ticket{
		{TicketIdentifier: "T-1", Status: "TO DO"},
		{TicketIdentifier: "T-2", Status: "DONE"},
		{TicketIdentifier: "T-3", Status: "DONE"},
		{TicketIdentifier: "T-4", Status: "IN PROGRESS"},
	}
	existing := map[string]Mirror{
		"T-2": {Key: "OPS-2", Identifier: "T-2", Status: "In Progress"},
		"T-3": {Key: "OPS-3", Identifier: "T-3", Status: "Done"},
		"T-4": {Key: "OPS-4", Identifier: "T-4", Status: "To Do"},
	}

	create, toClose := Plan(list, existing)
	require.Len(t, create, 1)
	assert.Equal(t, "T-1", create[0].TicketIdentifier)
	assert.Equal(t, []Mirror{existing["T-2"]}, toClose)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newClient(server.Client(), server.URL)
	require.NoError(t, err)
	return client
}

func TestMirroredIssuesPages(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Contains(t, r.URL.Query().Get("jql"), "project = 'OPS'")
		assert.Contains(t, r.URL.Query().Get("jql"), SignaturePrefix)

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("startAt") == "" || r.URL.Query().Get("startAt") == "0" {
			fmt.Fprint(w, `{"startAt":0,"maxResults":2,"total":3,"issues":[
				{"key":"OPS-1","fields":{"summary":"[T-1] Fix it","status":{"name":"To Do"}}},
				{"key":"OPS-9","fields":{"summary":"hand made","status":{"name":"To Do"}}}
			]}`)
			return
		}
		fmt.Fprint(w, `{"startAt":2,"maxResults":2,"total":3,"issues":[
			{"key":"OPS-2","fields":{"summary":"[T-2] Other","status":{"name":"Done"}}}
		]}`)
	})

	client := newTestClient(t, mux)
	mirrors, err := client.MirroredIssues(context.Background(), "OPS")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, map[string]Mirror{
		"T-1": {Key: "OPS-1", Identifier: "T-1", Status: "To Do"},
		"T-2": {Key: "OPS-2", Identifier: "T-2", Status: "Done"},
	}, mirrors)
}

func TestMirrorTicket(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)

		var payload struct {
			Fields struct {
				Summary string `json:"summary"`
				Project struct {
					Key string `json:"key"`
				} `json:"project"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "[T-1] Fix it", payload.Fields.Summary)
		assert.Equal(t, "OPS", payload.Fields.Project.Key)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"10001","key":"OPS-7"}`)
	})

	client := newTestClient(t, mux)
	key, err := client.MirrorTicket(context.Background(), "OPS", sampleTicket())
	require.NoError(t, err)
	assert.Equal(t, "OPS-7", key)
}

func TestMirrorTicketFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errorMessages":["bad"],"errors":{}}`)
	})

	client := newTestClient(t, mux)
	_, err := client.MirrorTicket(context.Background(), "OPS", sampleTicket())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestCloseIssue(t *testing.T) {
	var transitioned string
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue/OPS-2/transitions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"transitions":[
				{"id":"11","name":"Start","to":{"name":"In Progress"}},
				{"id":"31","name":"Finish","to":{"name":"Done"}}
			]}`)
			return
		}
		var payload struct {
			Transition struct {
				ID string `json:"id"`
			} `json:"transition"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		transitioned = payload.Transition.ID
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rest/api/2/issue/OPS-3/transitions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"transitions":[{"id":"11","name":"Start","to":{"name":"In Progress"}}]}`)
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.CloseIssue(context.Background(), "OPS-2"))
	assert.Equal(t, "31", transitioned)

	err := client.CloseIssue(context.Background(), "OPS-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transition")
}
