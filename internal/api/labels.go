package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// LabelService handles /labels.
type LabelService struct {
	client *Client
}

// List returns every label, or an empty slice on failure.
func (s *LabelService) List(ctx context.Context) []models.Label {
	return Query(ctx, s.client, "/labels/all", nil, []models.Label{})
}

// ListByProject returns the labels defined for a project, or an empty slice.
func (s *LabelService) ListByProject(ctx context.Context, projectID int64) []models.Label {
	return Query(ctx, s.client, fmt.Sprintf("/labels/project/%d", projectID), nil, []models.Label{})
}

// Create creates a label.
func (s *LabelService) Create(ctx context.Context, label models.Label) (*models.Label, error) {
	return Command[*models.Label](ctx, s.client, http.MethodPost, "/labels", nil, label)
}

// Delete removes a label.
func (s *LabelService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/labels/%d", id), nil, nil)
}
