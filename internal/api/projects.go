package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// ProjectService handles /projects.
type ProjectService struct {
	client *Client
}

// List returns every project, or an empty slice on failure.
func (s *ProjectService) List(ctx context.Context) []models.Project {
	return Query(ctx, s.client, "/projects/all", nil, []models.Project{})
}

// Get returns the project with the given id.
func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return Command[*models.Project](ctx, s.client, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// GetByName returns the project with the given full name.
func (s *ProjectService) GetByName(ctx context.Context, name string) (*models.Project, error) {
	params := url.Values{"projectName": {name}}
	return Command[*models.Project](ctx, s.client, http.MethodGet, "/projects", params, nil)
}

// Create creates a project and returns it as stored by the backend.
func (s *ProjectService) Create(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	return Command[*models.Project](ctx, s.client, http.MethodPost, "/projects", nil, req)
}

// Update patches the fields set in req.
func (s *ProjectService) Update(ctx context.Context, id int64, req models.ProjectRequest) (*models.Project, error) {
	return Command[*models.Project](ctx, s.client, http.MethodPatch, fmt.Sprintf("/projects/%d", id), nil, req)
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}
