package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// TicketService handles /tickets.
type TicketService struct {
	client *Client
}

// GroupedByStatus returns the tickets of a board keyed by status, or an
// empty map on failure. The keys are exactly what the backend sent.
func (s *TicketService) GroupedByStatus(ctx context.Context, boardID int64) map[string][]models.Ticket {
	path := fmt.Sprintf("/tickets/project-board/%d/grouped-by-status", boardID)
	return Query(ctx, s.client, path, nil, map[string][]models.Ticket{})
}

// ListByProject returns all tickets of a project, or an empty slice.
func (s *TicketService) ListByProject(ctx context.Context, projectID int64) []models.Ticket {
	return Query(ctx, s.client, fmt.Sprintf("/tickets/project/%d", projectID), nil, []models.Ticket{})
}

// ListByBoard returns all tickets of a board, or an empty slice.
func (s *TicketService) ListByBoard(ctx context.Context, boardID int64) []models.Ticket {
	return Query(ctx, s.client, fmt.Sprintf("/tickets/project-board/%d", boardID), nil, []models.Ticket{})
}

// Reviewers returns the reviewers of a ticket, or an empty slice.
func (s *TicketService) Reviewers(ctx context.Context, ticketID int64) []models.TeamMember {
	return Query(ctx, s.client, fmt.Sprintf("/tickets/%d/reviewers", ticketID), nil, []models.TeamMember{})
}

// Get returns the ticket with the given id.
func (s *TicketService) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	return Command[*models.Ticket](ctx, s.client, http.MethodGet, fmt.Sprintf("/tickets/%d", id), nil, nil)
}

// Create creates a ticket.
func (s *TicketService) Create(ctx context.Context, req models.TicketRequest) (*models.Ticket, error) {
	return Command[*models.Ticket](ctx, s.client, http.MethodPost, "/tickets", nil, req)
}

// Update patches the fields set in req.
func (s *TicketService) Update(ctx context.Context, id int64, req models.TicketRequest) (*models.Ticket, error) {
	return Command[*models.Ticket](ctx, s.client, http.MethodPatch, fmt.Sprintf("/tickets/%d", id), nil, req)
}

// Delete removes a ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/tickets/%d", id), nil, nil)
}

// Assign assigns the ticket to the member with the given display name.
func (s *TicketService) Assign(ctx context.Context, id int64, memberName string) (*models.Ticket, error) {
	params := url.Values{"memberName": {memberName}}
	return Command[*models.Ticket](ctx, s.client, http.MethodPost, fmt.Sprintf("/tickets/%d/assign", id), params, nil)
}

// Unassign clears the ticket's assignee.
func (s *TicketService) Unassign(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodPost, fmt.Sprintf("/tickets/%d/unassign", id), nil, nil)
}
