package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/jira"
	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/tickets"
	"github.com/danielolaszy/boardctl/pkg/models"
)

// mirrorer is the part of the JIRA client a mirror run needs.
type mirrorer interface {
	MirroredIssues(ctx context.Context, projectKey string) (map[string]jira.Mirror, error)
	MirrorTicket(ctx context.Context, projectKey string, t tickets.Ticket) (string, error)
	CloseIssue(ctx context.Context, key string) error
}

// mirrorReport counts what a mirror run did.
type mirrorReport struct {
	Project  string   `json:"project" yaml:"project"`
	DryRun   bool     `json:"dryRun" yaml:"dryRun"`
	Tickets  int      `json:"tickets" yaml:"tickets"`
	Existing int      `json:"existing" yaml:"existing"`
	Created  []string `json:"created" yaml:"created"`
	Closed   []string `json:"closed" yaml:"closed"`
	Failed   []string `json:"failed" yaml:"failed"`
}

func (r mirrorReport) summary() string {
	verb := "Mirrored"
	if r.DryRun {
		verb = "Would mirror"
	}
	msg := fmt.Sprintf("%s %d of %d tickets into %s, closed %d",
		verb, len(r.Created), r.Tickets, r.Project, len(r.Closed))
	if len(r.Failed) > 0 {
		msg += fmt.Sprintf(", %d failed: %s", len(r.Failed), strings.Join(r.Failed, ", "))
	}
	return msg
}

func newJiraCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Mirror board tickets into JIRA",
	}
	cmd.AddCommand(newJiraMirrorCmd(a))
	return cmd
}

func newJiraMirrorCmd(a *app) *cobra.Command {
	var (
		boardID    int64
		projectKey string
		filter     string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Create JIRA issues for the tickets of a board",
		Long: `Mirror the tickets of a board into a JIRA project.

Every ticket without a mirror gets a JIRA issue titled "[KEY-1] summary"
carrying its description, priority, labels and a signature line that marks
it as mirrored. Mirrors of tickets in DONE are transitioned to Done.

Running it again only creates what is missing.

Requires JIRA_URL, JIRA_USERNAME and JIRA_TOKEN.

Example:
  boardctl jira mirror --board 3 --jira-project OPS --filter backend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if boardID <= 0 {
				return errors.New("--board is required")
			}
			projectKey = strings.ToUpper(strings.TrimSpace(projectKey))
			if projectKey == "" {
				return errors.New("--jira-project is required")
			}

			jiraClient, err := jira.NewClient(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize jira client: %w", err)
			}

			raw, err := load(cmd.Context(), readMany(func(ctx context.Context) []models.Ticket {
				return a.client.Tickets.ListByBoard(ctx, boardID)
			}))
			if err != nil {
				return err
			}
			list := tickets.FilterTicketsByTextList(tickets.MapList(raw, time.Local), filter)

			logging.Info("starting jira mirror",
				"board", boardID,
				"jira_project", projectKey,
				"tickets", len(list),
				"dry_run", dryRun)

			report, err := mirrorTickets(cmd.Context(), jiraClient, projectKey, list, dryRun)
			if err != nil {
				return err
			}
			if len(report.Failed) > 0 {
				a.out.Warn("%d tickets could not be mirrored", len(report.Failed))
			}
			return a.out.Success(report, report.summary())
		},
	}

	cmd.Flags().Int64Var(&boardID, "board", 0, "board id whose tickets are mirrored")
	cmd.Flags().StringVar(&projectKey, "jira-project", "", "JIRA project key, e.g. OPS")
	cmd.Flags().StringVar(&filter, "filter", "", "only mirror tickets matching this text")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing to JIRA")
	return cmd
}

// mirrorTickets creates the missing mirrors and closes those of finished
// tickets. A failure on one ticket is logged and counted; the run goes on.
func mirrorTickets(ctx context.Context, m mirrorer, projectKey string, list []tickets.Ticket, dryRun bool) (mirrorReport, error) {
	report := mirrorReport{
		Project: projectKey,
		DryRun:  dryRun,
		Tickets: len(list),
		Created: []string{},
		Closed:  []string{},
		Failed:  []string{},
	}

	existing, err := m.MirroredIssues(ctx, projectKey)
	if err != nil {
		return report, fmt.Errorf("failed to fetch existing mirrors: %w", err)
	}
	report.Existing = len(existing)

	create, toClose := jira.Plan(list, existing)
	logging.Debug("planned jira mirror",
		"jira_project", projectKey,
		"existing", len(existing),
		"to_create", len(create),
		"to_close", len(toClose))

	for _, t := range create {
		if dryRun {
			report.Created = append(report.Created, t.TicketIdentifier)
			continue
		}
		key, err := m.MirrorTicket(ctx, projectKey, t)
		if err != nil {
			logging.Error("failed to mirror ticket",
				"ticket", t.TicketIdentifier,
				"error", err)
			report.Failed = append(report.Failed, t.TicketIdentifier)
			continue
		}
		report.Created = append(report.Created, key)
	}

	for _, mirror := range toClose {
		if dryRun {
			report.Closed = append(report.Closed, mirror.Key)
			continue
		}
		if err := m.CloseIssue(ctx, mirror.Key); err != nil {
			logging.Error("failed to close jira ticket",
				"jira_key", mirror.Key,
				"ticket", mirror.Identifier,
				"error", err)
			report.Failed = append(report.Failed, mirror.Identifier)
			continue
		}
		report.Closed = append(report.Closed, mirror.Key)
	}

	logging.Info("jira mirror complete",
		"jira_project", projectKey,
		"created", len(report.Created),
		"closed", len(report.Closed),
		"failed", len(report.Failed))
	return report, nil
}
