package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/boardctl/pkg/models"
)

func TestTeamFindByName(t *testing.T) {
	t.Run("empty name short-circuits", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s", r.URL)
		})
		team, err := client.Teams.FindByName(context.Background(), "")
		assert.NoError(t, err)
		assert.Nil(t, team)
	})

	t.Run("direct hit", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/teams", r.URL.Path)
			assert.Equal(t, "Core Platform", r.URL.Query().Get("teamName"))
			writeJSON(t, w, http.StatusOK, models.Team{ID: 5, Name: "Core Platform"})
		})
		team, err := client.Teams.FindByName(context.Background(), "Core Platform")
		require.NoError(t, err)
		assert.Equal(t, int64(5), team.ID)
	})

	t.Run("not found", func(t *testing.T) {
		var paths []string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			switch r.URL.Path {
			case "/teams":
				w.WriteHeader(http.StatusNotFound)
			case "/teams/all":
				writeJSON(t, w, http.StatusOK, []models.Team{{ID: 1, Name: "a"}})
			}
		})
		team, err := client.Teams.FindByName(context.Background(), "ghost")
		assert.NoError(t, err)
		assert.Nil(t, team)
		assert.Equal(t, []string{"/teams", "/teams/all"}, paths)
	})

	t.Run("not found still scans full list", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/teams":
				w.WriteHeader(http.StatusNotFound)
			case "/teams/all":
				writeJSON(t, w, http.StatusOK, []models.Team{{ID: 1, Name: "a"}, {ID: 9, Name: "Core Platform"}})
			}
		})
		team, err := client.Teams.FindByName(context.Background(), "Core Platform")
		require.NoError(t, err)
		require.NotNil(t, team)
		assert.Equal(t, int64(9), team.ID)
	})

	t.Run("falls back to full list", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/teams":
				w.WriteHeader(http.StatusInternalServerError)
			case "/teams/all":
				writeJSON(t, w, http.StatusOK, []models.Team{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
			}
		})
		team, err := client.Teams.FindByName(context.Background(), "b")
		require.NoError(t, err)
		assert.Equal(t, int64(2), team.ID)
	})

	t.Run("fallback misses keeps original error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/teams":
				w.WriteHeader(http.StatusBadGateway)
			case "/teams/all":
				writeJSON(t, w, http.StatusOK, []models.Team{{ID: 1, Name: "a"}})
			}
		})
		team, err := client.Teams.FindByName(context.Background(), "zzz")
		assert.Nil(t, team)
		assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	})
}

func TestTeamRemoveMember(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/teams/3/members/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, client.Teams.RemoveMember(context.Background(), 3, 9))
}

func TestMemberFindByName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("teamMemberName") == "Ada Lovelace" {
			writeJSON(t, w, http.StatusOK, models.TeamMember{ID: 4, FirstName: "Ada", LastName: "Lovelace"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	member, err := client.Members.FindByName(context.Background(), "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, int64(4), member.ID)

	member, err = client.Members.FindByName(context.Background(), "Nobody")
	assert.NoError(t, err)
	assert.Nil(t, member)
}

func TestMemberListsDegrade(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Equal(t, []models.TeamMember{}, client.Members.List(context.Background()))
	assert.Equal(t, []models.TeamMember{}, client.Members.ListByTeam(context.Background(), 1))
}

func TestTicketAssignEncodesMemberName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tickets/12/assign", r.URL.Path)
		assert.Equal(t, "memberName=Ada+Lovelace%26Co", r.URL.RawQuery)
		writeJSON(t, w, http.StatusOK, models.Ticket{ID: 12, Assignee: &models.TeamMember{FirstName: "Ada"}})
	})

	ticket, err := client.Tickets.Assign(context.Background(), 12, "Ada Lovelace&Co")
	require.NoError(t, err)
	assert.Equal(t, "Ada", ticket.Assignee.FirstName)
}

func TestTicketUpdateSendsPatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, map[string]any{"status": "DONE"}, fields)

		writeJSON(t, w, http.StatusOK, models.Ticket{ID: 1, Status: "DONE"})
	})

	ticket, err := client.Tickets.Update(context.Background(), 1, models.TicketRequest{Status: "DONE"})
	require.NoError(t, err)
	assert.Equal(t, "DONE", ticket.Status)
}

func TestTicketGroupedByStatus(t *testing.T) {
	t.Run("keys come from the backend", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/tickets/project-board/7/grouped-by-status", r.URL.Path)
			writeJSON(t, w, http.StatusOK, map[string][]models.Ticket{
				"TO DO":    {{ID: 1}},
				"CUSTOMER": {},
			})
		})
		grouped := client.Tickets.GroupedByStatus(context.Background(), 7)
		assert.Len(t, grouped, 2)
		assert.Contains(t, grouped, "CUSTOMER")
	})

	t.Run("failure yields empty map", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		grouped := client.Tickets.GroupedByStatus(context.Background(), 7)
		assert.NotNil(t, grouped)
		assert.Empty(t, grouped)
	})
}

func TestTicketReadManyDegrade(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()
	assert.Equal(t, []models.Ticket{}, client.Tickets.ListByProject(ctx, 1))
	assert.Equal(t, []models.Ticket{}, client.Tickets.ListByBoard(ctx, 1))
	assert.Equal(t, []models.TeamMember{}, client.Tickets.Reviewers(ctx, 1))
	assert.Equal(t, []models.Label{}, client.Labels.List(ctx))
	assert.Equal(t, []models.Label{}, client.Labels.ListByProject(ctx, 1))
	assert.Equal(t, []models.Board{}, client.Boards.ListByProject(ctx, 1))

	assert.Error(t, client.Tickets.Unassign(ctx, 1))
	assert.Error(t, client.Tickets.Delete(ctx, 1))
	assert.Error(t, client.Labels.Delete(ctx, 1))
	assert.Error(t, client.Boards.Delete(ctx, 1))
	_, err := client.Labels.Create(ctx, models.Label{Name: "bug"})
	assert.Error(t, err)
}

func TestBoardsListByProjectQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards", r.URL.Path)
		assert.Equal(t, "11", r.URL.Query().Get("projectId"))
		writeJSON(t, w, http.StatusOK, []models.Board{{ID: 1, Name: "Sprint"}, {ID: 2, Name: "Main", Default: true}})
	})

	boards := client.Boards.ListByProject(context.Background(), 11)
	require.Len(t, boards, 2)
	assert.Equal(t, int64(2), DefaultBoard(boards).ID)
}

func TestDefaultBoard(t *testing.T) {
	assert.Nil(t, DefaultBoard(nil))
	assert.Equal(t, int64(1), DefaultBoard([]models.Board{{ID: 1}, {ID: 2}}).ID)
	assert.Equal(t, int64(2), DefaultBoard([]models.Board{{ID: 1}, {ID: 2, Default: true}}).ID)
}
