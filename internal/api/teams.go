package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/pkg/models"
)

// TeamService handles /teams.
type TeamService struct {
	client *Client
}

// List returns every team, or an empty slice on failure.
func (s *TeamService) List(ctx context.Context) []models.Team {
	return Query(ctx, s.client, "/teams/all", nil, []models.Team{})
}

// Get returns the team with the given id.
func (s *TeamService) Get(ctx context.Context, id int64) (*models.Team, error) {
	return Command[*models.Team](ctx, s.client, http.MethodGet, fmt.Sprintf("/teams/%d", id), nil, nil)
}

// FindByName looks a team up by its exact name. An empty name yields
// (nil, nil). When the lookup endpoint fails, a 404 included, the full team
// list is scanned instead. A miss after a 404 is (nil, nil); a miss after
// any other failure returns that failure.
func (s *TeamService) FindByName(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, nil
	}

	team, err := Command[*models.Team](ctx, s.client, http.MethodGet, "/teams", url.Values{"teamName": {name}}, nil)
	if err == nil {
		return team, nil
	}

	logging.Warn("team lookup failed, scanning all teams", "name", name, "error", err)
	for _, t := range s.List(ctx) {
		if t.Name == name {
			found := t
			return &found, nil
		}
	}
	if IsNotFound(err) {
		logging.Warn("team not found", "name", name)
		return nil, nil
	}
	return nil, err
}

// Create creates a team.
func (s *TeamService) Create(ctx context.Context, req models.TeamRequest) (*models.Team, error) {
	return Command[*models.Team](ctx, s.client, http.MethodPost, "/teams", nil, req)
}

// Update patches the fields set in req.
func (s *TeamService) Update(ctx context.Context, id int64, req models.TeamRequest) (*models.Team, error) {
	return Command[*models.Team](ctx, s.client, http.MethodPatch, fmt.Sprintf("/teams/%d", id), nil, req)
}

// Delete removes a team.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/teams/%d", id), nil, nil)
}

// RemoveMember takes a member out of a team without deleting the member.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, memberID int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/teams/%d/members/%d", teamID, memberID), nil, nil)
}
