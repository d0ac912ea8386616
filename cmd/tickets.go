package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/api"
	"github.com/danielolaszy/boardctl/internal/output"
	"github.com/danielolaszy/boardctl/internal/render"
	"github.com/danielolaszy/boardctl/internal/state"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

const defaultPriority = "MEDIUM"

// priorityChoices are the values a ticket can be created or updated with.
// The backend stores them as sent; MapPriority only buckets its own table.
var priorityChoices = []string{"LOW", "MEDIUM", "MAJOR", "CRITICAL"}

var ticketRules = map[string]state.Rule{
	"summary":  state.Required("Summary is required"),
	"priority": state.OneOf("Priority must be one of "+strings.Join(priorityChoices, ", "), priorityChoices...),
}

// boardView is everything the board command loads, in load order.
type boardView struct {
	Project *models.Project `json:"project" yaml:"project"`
	Board   *models.Board   `json:"board" yaml:"board"`
	Labels  []models.Label  `json:"labels" yaml:"labels"`
	Tickets tickets.Grouped `json:"tickets" yaml:"tickets"`
}

func newTicketsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "Work with tickets and the project board",
	}

	cmd.AddCommand(
		newTicketBoardCmd(a),
		newTicketListCmd(a),
		newTicketShowCmd(a),
		newTicketCreateCmd(a),
		newTicketUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a ticket",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("ticket", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Tickets.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete ticket %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Ticket %d deleted", id))
			},
		},
		&cobra.Command{
			Use:   "assign <id> <member-name>",
			Short: "Assign a ticket to a member by display name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("ticket", args[0])
				if err != nil {
					return err
				}
				name := strings.TrimSpace(args[1])
				if name == "" {
					return &output.ValidationError{Fields: map[string]string{"memberName": "Member name is required"}}
				}
				ticket, err := a.client.Tickets.Assign(cmd.Context(), id, name)
				if err != nil {
					return fmt.Errorf("failed to assign ticket %d: %w", id, err)
				}
				return a.out.Success(ticket, fmt.Sprintf("Ticket %d assigned to %s", id, name))
			},
		},
		&cobra.Command{
			Use:   "unassign <id>",
			Short: "Clear a ticket's assignee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("ticket", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Tickets.Unassign(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to unassign ticket %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Ticket %d unassigned", id))
			},
		},
		&cobra.Command{
			Use:   "reviewers <id>",
			Short: "List the reviewers of a ticket",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("ticket", args[0])
				if err != nil {
					return err
				}
				reviewers, err := load(cmd.Context(), readMany(func(ctx context.Context) []models.TeamMember {
					return a.client.Tickets.Reviewers(ctx, id)
				}))
				if err != nil {
					return err
				}
				return a.out.Result(reviewers, func() string { return render.RenderMembers(reviewers) })
			},
		},
	)

	return cmd
}

func newTicketBoardCmd(a *app) *cobra.Command {
	var (
		projectID int64
		boardID   int64
		filter    string
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Render a project's kanban board",
		Long: `Render the tickets of a project board grouped by status.

The project, its boards and its labels are loaded first; the tickets of
the selected board (--board, else the default board) follow. Columns are
shown in workflow order and --filter keeps only matching cards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID <= 0 {
				return errors.New("--project is required")
			}

			view, err := loadBoard(cmd.Context(), a.client, projectID, boardID)
			if err != nil {
				return err
			}
			view.Tickets = tickets.FilterTicketsByText(view.Tickets, filter)

			return a.out.Result(view, func() string {
				return render.RenderBoard(view.Tickets, render.BoardOptions{Title: boardTitle(view)})
			})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().Int64Var(&boardID, "board", 0, "board id (defaults to the project's default board)")
	cmd.Flags().StringVar(&filter, "filter", "", "only show tickets matching this text")
	return cmd
}

// loadBoard loads a board view step by step. Each step waits for the one
// before it.
func loadBoard(ctx context.Context, client *api.Client, projectID, boardID int64) (*boardView, error) {
	project, err := load(ctx, func(ctx context.Context) (*models.Project, error) {
		return client.Projects.Get(ctx, projectID)
	})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound("project", fmt.Sprint(projectID))
	}

	boards, err := load(ctx, readMany(func(ctx context.Context) []models.Board {
		return client.Boards.ListByProject(ctx, projectID)
	}))
	if err != nil {
		return nil, err
	}

	var board *models.Board
	if boardID > 0 {
		for i := range boards {
			if boards[i].ID == boardID {
				board = &boards[i]
				break
			}
		}
		if board == nil {
			return nil, notFound("board", fmt.Sprint(boardID))
		}
	} else {
		board = api.DefaultBoard(boards)
		if board == nil {
			return nil, fmt.Errorf("project %s has no boards", project.Key)
		}
	}

	labels, err := load(ctx, readMany(func(ctx context.Context) []models.Label {
		return client.Labels.ListByProject(ctx, projectID)
	}))
	if err != nil {
		return nil, err
	}

	grouped, err := load(ctx, readMany(func(ctx context.Context) map[string][]models.Ticket {
		return client.Tickets.GroupedByStatus(ctx, board.ID)
	}))
	if err != nil {
		return nil, err
	}

	return &boardView{
		Project: project,
		Board:   board,
		Labels:  labels,
		Tickets: tickets.MapGrouped(grouped, time.Local),
	}, nil
}

func boardTitle(v *boardView) string {
	if v.Project == nil || v.Board == nil {
		return ""
	}
	return fmt.Sprintf("%s · %s", v.Project.Key, v.Board.Name)
}

func newTicketListCmd(a *app) *cobra.Command {
	var (
		projectID int64
		boardID   int64
		filter    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tickets of a project or board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(context.Context) ([]models.Ticket, error)
			switch {
			case boardID > 0:
				op = readMany(func(ctx context.Context) []models.Ticket {
					return a.client.Tickets.ListByBoard(ctx, boardID)
				})
			case projectID > 0:
				op = readMany(func(ctx context.Context) []models.Ticket {
					return a.client.Tickets.ListByProject(ctx, projectID)
				})
			default:
				return errors.New("--project or --board is required")
			}

			raw, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			list := tickets.FilterTicketsByTextList(tickets.MapList(raw, time.Local), filter)
			return a.out.Result(list, func() string { return render.RenderTickets(list) })
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().Int64Var(&boardID, "board", 0, "board id")
	cmd.Flags().StringVar(&filter, "filter", "", "only list tickets matching this text")
	return cmd
}

// ticketDetail is a ticket together with its reviewers.
type ticketDetail struct {
	tickets.Ticket `yaml:",inline"`
	Reviewers      []models.TeamMember `json:"reviewers" yaml:"reviewers"`
}

func newTicketShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket with its description, links and reviewers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ticket", args[0])
			if err != nil {
				return err
			}

			raw, err := load(cmd.Context(), func(ctx context.Context) (*models.Ticket, error) {
				return a.client.Tickets.Get(ctx, id)
			})
			if err != nil {
				return err
			}
			if raw == nil {
				return notFound("ticket", args[0])
			}
			reviewers, err := load(cmd.Context(), readMany(func(ctx context.Context) []models.TeamMember {
				return a.client.Tickets.Reviewers(ctx, id)
			}))
			if err != nil {
				return err
			}

			detail := ticketDetail{Ticket: tickets.MapAPITicket(*raw), Reviewers: reviewers}
			return a.out.Result(detail, func() string {
				return render.RenderTicketDetail(detail.Ticket, reviewers)
			})
		},
	}
}

type ticketFlags struct {
	summary     string
	description string
	priority    string
	status      string
	assignee    int64
	labels      []int64
	project     int64
	board       int64
}

func (f *ticketFlags) bind(cmd *cobra.Command, priorityDefault string) {
	cmd.Flags().StringVar(&f.summary, "summary", "", "ticket title")
	cmd.Flags().StringVar(&f.description, "description", "", "markdown description")
	cmd.Flags().StringVar(&f.priority, "priority", priorityDefault, "one of "+strings.Join(priorityChoices, ", "))
	cmd.Flags().StringVar(&f.status, "status", "", "status key, e.g. TO DO")
	cmd.Flags().Int64Var(&f.assignee, "assignee", 0, "assignee member id")
	cmd.Flags().Int64SliceVar(&f.labels, "labels", nil, "label ids")
	cmd.Flags().Int64Var(&f.project, "project", 0, "project id")
	cmd.Flags().Int64Var(&f.board, "board", 0, "board id")
}

func (f *ticketFlags) values() state.Values {
	return state.Values{
		"summary":     f.summary,
		"description": f.description,
		"priority":    f.priority,
		"status":      f.status,
	}
}

func (f *ticketFlags) request(cmd *cobra.Command, form *state.Form) models.TicketRequest {
	return models.TicketRequest{
		Summary:        form.String("summary"),
		Description:    form.String("description"),
		Priority:       strings.ToUpper(form.String("priority")),
		Status:         form.String("status"),
		AssigneeID:     optionalID(cmd, "assignee", f.assignee),
		LabelIDs:       f.labels,
		ProjectID:      f.project,
		ProjectBoardID: f.board,
	}
}

func newTicketCreateCmd(a *app) *cobra.Command {
	var f ticketFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(f.values(), ticketRules)
			if err != nil {
				return err
			}

			ticket, err := a.client.Tickets.Create(cmd.Context(), f.request(cmd, form))
			if err != nil {
				return fmt.Errorf("failed to create ticket: %w", err)
			}
			name := form.String("summary")
			if ticket != nil && ticket.TicketIdentifier != "" {
				name = ticket.TicketIdentifier
			}
			return a.out.Success(ticket, fmt.Sprintf("Ticket %s created", name))
		},
	}

	f.bind(cmd, defaultPriority)
	return cmd
}

func newTicketUpdateCmd(a *app) *cobra.Command {
	var f ticketFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ticket", args[0])
			if err != nil {
				return err
			}

			rules := map[string]state.Rule{"priority": ticketRules["priority"]}
			if cmd.Flags().Changed("summary") {
				rules["summary"] = ticketRules["summary"]
			}
			form, err := submit(f.values(), rules)
			if err != nil {
				return err
			}

			ticket, err := a.client.Tickets.Update(cmd.Context(), id, f.request(cmd, form))
			if err != nil {
				return fmt.Errorf("failed to update ticket %d: %w", id, err)
			}
			return a.out.Success(ticket, fmt.Sprintf("Ticket %d updated", id))
		},
	}

	f.bind(cmd, "")
	return cmd
}
