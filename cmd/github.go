package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/github"
	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/render"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

func newGitHubCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github",
		Short: "Look up linked pull requests and workflow runs on GitHub",
		Long: `Look up the GitHub records the backend linked to a ticket.

Requires GITHUB_TOKEN. Set GITHUB_DOMAIN for GitHub Enterprise.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "verify",
			Short: "Check that the GitHub token works",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				gh, err := github.NewClient(cmd.Context(), a.cfg)
				if err != nil {
					return fmt.Errorf("failed to initialize github client: %w", err)
				}
				login, err := gh.Verify(cmd.Context())
				if err != nil {
					return err
				}
				return a.out.Success(map[string]string{"login": login}, fmt.Sprintf("Authenticated to GitHub as %s", login))
			},
		},
		&cobra.Command{
			Use:   "checks <ticket-id>",
			Short: "Show the live state of a ticket's pull requests and workflow runs",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("ticket", args[0])
				if err != nil {
					return err
				}

				gh, err := github.NewClient(cmd.Context(), a.cfg)
				if err != nil {
					return fmt.Errorf("failed to initialize github client: %w", err)
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
				ticket := tickets.MapAPITicket(*raw)

				checks := gh.CheckTicket(cmd.Context(), ticket)
				failed := 0
				for _, c := range checks {
					if c.Error != "" {
						failed++
					}
				}
				logging.Info("checked linked github records",
					"ticket", ticket.TicketIdentifier,
					"count", len(checks),
					"failed", failed)

				return a.out.Result(checks, func() string { return render.RenderChecks(checks) })
			},
		},
	)

	return cmd
}
