package tickets

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/boardctl/pkg/models"
)

func TestMapPriority(t *testing.T) {
	testCases := []struct {
		raw  string
		want Priority
	}{
		{"CRITICAL", PriorityHigh},
		{"MAJOR", PriorityMedium},
		{"MINOR", PriorityLow},
		{"BLOCKER", PriorityBlocker},
		{"critical", PriorityHigh},
		{"MEDIUM", PriorityNone},
		{"TRIVIAL", PriorityNone},
		{"", PriorityNone},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, MapPriority(tc.raw))
		})
	}
}

func TestPriorityClass(t *testing.T) {
	assert.Equal(t, "priority-high", PriorityHigh.Class())
	assert.Equal(t, "priority-blocker", PriorityBlocker.Class())
	assert.Equal(t, "", PriorityNone.Class())
}

func TestMapTicketEndToEnd(t *testing.T) {
	raw := models.Ticket{
		ID:                 1,
		TicketIdentifier:   "T-1",
		Summary:            "Fix it",
		Priority:           "CRITICAL",
		Labels:             []models.Label{},
		Reporter:           &models.TeamMember{ID: 2, FirstName: "A", LastName: "B", Email: "a@b.com"},
		Description:        "d",
		GithubDescription:  "",
		CreatedAt:          "2024-01-01T00:00:00Z",
		LinkedTicketIDs:    []int64{},
		Status:             "TO DO",
		LinkedPullRequests: []models.PullRequest{},
		LinkedWorkflowRuns: []models.WorkflowRun{},
	}

	got := MapTicket(raw, time.UTC)

	want := Ticket{
		ID:                 1,
		TicketIdentifier:   "T-1",
		Title:              "Fix it",
		Priority:           PriorityHigh,
		Labels:             []models.Label{},
		Reporter:           Reporter{ID: 2, Name: "A B", Email: "a@b.com"},
		Description:        "d",
		CreatedAt:          "1/1/2024, 12:00:00 AM",
		LinkedTicketIDs:    []int64{},
		Status:             "TO DO",
		LinkedPullRequests: []models.PullRequest{},
		LinkedWorkflowRuns: []models.WorkflowRun{},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Ticket{}, "Created")); diff != "" {
		t.Errorf("MapTicket mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Assignee)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.Created.UTC())
}

func TestMapTicketAssignee(t *testing.T) {
	raw := models.Ticket{
		Reporter: &models.TeamMember{FirstName: "R", LastName: "P"},
		Assignee: &models.TeamMember{FirstName: "Ada", LastName: "Lovelace", LoginInGithub: "ada"},
	}
	got := MapTicket(raw, time.UTC)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, Assignee{Name: "Ada Lovelace", AvatarURL: "", LoginID: "ada"}, *got.Assignee)
}

func TestMapTicketTimestamps(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	testCases := []struct {
		raw  string
		want string
	}{
		{"2024-03-05T14:07:09Z", "3/5/2024, 3:07:09 PM"},
		{"2024-03-05T14:07:09.123456", "3/5/2024, 2:07:09 PM"},
		{"not a date", InvalidDate},
		{"", InvalidDate},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got := MapTicket(models.Ticket{CreatedAt: tc.raw}, loc)
			assert.Equal(t, tc.want, got.CreatedAt)
		})
	}
}

func TestMapGroupedKeepsKeys(t *testing.T) {
	raw := map[string][]models.Ticket{
		"TO DO":  {{ID: 1, Reporter: &models.TeamMember{}}, {ID: 2, Reporter: &models.TeamMember{}}},
		"custom": {},
	}
	got := MapGrouped(raw, time.UTC)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 2}, []int64{got["TO DO"][0].ID, got["TO DO"][1].ID})
	assert.NotNil(t, got["custom"])
	assert.Empty(t, got["custom"])
}

func sampleGrouped() Grouped {
	return Grouped{
		"TO DO": {
			{ID: 1, TicketIdentifier: "WEB-1", Title: "Fix bug in login", Labels: []models.Label{{Name: "auth"}}},
			{ID: 2, TicketIdentifier: "WEB-2", Title: "Add dark mode", Assignee: &Assignee{Name: "Ada Lovelace"}},
		},
		"DONE": {
			{ID: 3, TicketIdentifier: "API-7", Title: "Rate limiting", Labels: []models.Label{{Name: "Backend"}}},
		},
		"IN PROGRESS": {},
	}
}

func TestFilterTicketsByTextBlankReturnsInput(t *testing.T) {
	grouped := sampleGrouped()
	for _, text := range []string{"", "   ", "\t\n"} {
		got := FilterTicketsByText(grouped, text)
		if diff := cmp.Diff(grouped, got); diff != "" {
			t.Errorf("blank filter %q changed input (-want +got):\n%s", text, diff)
		}
	}
}

func TestFilterTicketsByText(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want map[string][]int64
	}{
		{"title", "login", map[string][]int64{"TO DO": {1}, "DONE": {}, "IN PROGRESS": {}}},
		{"identifier", "api-", map[string][]int64{"TO DO": {}, "DONE": {3}, "IN PROGRESS": {}}},
		{"label", "BACKEND", map[string][]int64{"TO DO": {}, "DONE": {3}, "IN PROGRESS": {}}},
		{"assignee", "lovelace", map[string][]int64{"TO DO": {2}, "DONE": {}, "IN PROGRESS": {}}},
		{"no match keeps every group", "zzz", map[string][]int64{"TO DO": {}, "DONE": {}, "IN PROGRESS": {}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterTicketsByText(sampleGrouped(), tc.text)
			ids := make(map[string][]int64, len(got))
			for status, list := range got {
				ids[status] = []int64{}
				for _, tk := range list {
					ids[status] = append(ids[status], tk.ID)
				}
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestFilterTicketsByTextList(t *testing.T) {
	list := []Ticket{
		{ID: 1, TicketIdentifier: "WEB-1", Title: "Fix bug in login"},
		{ID: 2, TicketIdentifier: "WEB-2", Title: "Docs", Description: "mention the BUG tracker"},
		{ID: 3, TicketIdentifier: "WEB-3", Title: "CI", GithubDescription: "flaky bug on main"},
		{ID: 4, TicketIdentifier: "WEB-4", Title: "Unrelated"},
	}

	got := FilterTicketsByTextList(list, "BUG")
	ids := make([]int64, 0, len(got))
	for _, tk := range got {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)

	assert.Equal(t, list, FilterTicketsByTextList(list, " "))
	assert.Empty(t, FilterTicketsByTextList(list, "nothing matches"))
}

func TestFilterTicketsByTextListMissingDescription(t *testing.T) {
	// A ticket whose descriptions were null in JSON decodes to "" and is
	// simply not matched on those fields.
	list := MapList([]models.Ticket{{ID: 9, Summary: "x", Reporter: &models.TeamMember{}}}, time.UTC)
	assert.Empty(t, FilterTicketsByTextList(list, "desc"))
}

func TestStatusesFromGroupsAndOrder(t *testing.T) {
	grouped := Grouped{
		"done":              nil,
		"TO DO":             nil,
		"Custom Column":     nil,
		"IN PROGRESS":       nil,
		"ARCHIVE":           nil,
		"WAITING FOR MERGE": nil,
	}

	statuses := StatusesFromGroups(grouped)
	require.Len(t, statuses, 6)

	ordered := OrderStatuses(statuses)
	names := make([]string, 0, len(ordered))
	for _, s := range ordered {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"TO DO", "IN PROGRESS", "WAITING FOR MERGE", "DONE", "ARCHIVE", "CUSTOM COLUMN"}, names)

	for _, s := range ordered {
		if s.Name == "DONE" {
			assert.Equal(t, "done", s.ID, "id keeps the backend key")
			assert.Equal(t, "#8a2be2", s.Color)
		}
		if s.Name == "ARCHIVE" {
			assert.Equal(t, UnknownStatusColor, s.Color)
		}
	}
}

func TestConclusionIcon(t *testing.T) {
	success, weird := "success", "exploded"
	assert.Equal(t, "✅", ConclusionIcon(&success))
	assert.Equal(t, UnknownConclusionIcon, ConclusionIcon(&weird))
	assert.Equal(t, UnknownConclusionIcon, ConclusionIcon(nil))
}
