package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// MemberService handles /members.
type MemberService struct {
	client *Client
}

// List returns every team member, or an empty slice on failure.
func (s *MemberService) List(ctx context.Context) []models.TeamMember {
	return Query(ctx, s.client, "/members/all", nil, []models.TeamMember{})
}

// ListByTeam returns the members of a team, or an empty slice on failure.
func (s *MemberService) ListByTeam(ctx context.Context, teamID int64) []models.TeamMember {
	return Query(ctx, s.client, fmt.Sprintf("/members/team/%d", teamID), nil, []models.TeamMember{})
}

// Get returns the member with the given id.
func (s *MemberService) Get(ctx context.Context, id int64) (*models.TeamMember, error) {
	return Command[*models.TeamMember](ctx, s.client, http.MethodGet, fmt.Sprintf("/members/%d", id), nil, nil)
}

// FindByName looks a member up by display name. An empty name or a 404
// yields (nil, nil).
func (s *MemberService) FindByName(ctx context.Context, name string) (*models.TeamMember, error) {
	if name == "" {
		return nil, nil
	}
	member, err := Command[*models.TeamMember](ctx, s.client, http.MethodGet, "/members", url.Values{"teamMemberName": {name}}, nil)
	if IsNotFound(err) {
		return nil, nil
	}
	return member, err
}

// Create creates a member.
func (s *MemberService) Create(ctx context.Context, req models.TeamMemberRequest) (*models.TeamMember, error) {
	return Command[*models.TeamMember](ctx, s.client, http.MethodPost, "/members", nil, req)
}

// Update patches the fields set in req.
func (s *MemberService) Update(ctx context.Context, id int64, req models.TeamMemberRequest) (*models.TeamMember, error) {
	return Command[*models.TeamMember](ctx, s.client, http.MethodPatch, fmt.Sprintf("/members/%d", id), nil, req)
}

// Delete removes a member.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/members/%d", id), nil, nil)
}
