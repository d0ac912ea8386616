package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielolaszy/boardctl/pkg/models"
)

// BoardService handles /boards.
type BoardService struct {
	client *Client
}

// ListByProject returns the boards of a project, or an empty slice.
func (s *BoardService) ListByProject(ctx context.Context, projectID int64) []models.Board {
	params := url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
	return Query(ctx, s.client, "/boards", params, []models.Board{})
}

// Get returns the board with the given id.
func (s *BoardService) Get(ctx context.Context, id int64) (*models.Board, error) {
	return Command[*models.Board](ctx, s.client, http.MethodGet, fmt.Sprintf("/boards/%d", id), nil, nil)
}

// Create creates a board.
func (s *BoardService) Create(ctx context.Context, req models.BoardRequest) (*models.Board, error) {
	return Command[*models.Board](ctx, s.client, http.MethodPost, "/boards", nil, req)
}

// Delete removes a board.
func (s *BoardService) Delete(ctx context.Context, id int64) error {
	return Exec(ctx, s.client, http.MethodDelete, fmt.Sprintf("/boards/%d", id), nil, nil)
}

// DefaultBoard picks the board flagged as default, else the first one.
// It returns nil for an empty slice.
func DefaultBoard(boards []models.Board) *models.Board {
	for i := range boards {
		if boards[i].Default {
			return &boards[i]
		}
	}
	if len(boards) > 0 {
		return &boards[0]
	}
	return nil
}
