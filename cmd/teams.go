package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/render"
	"github.com/danielolaszy/boardctl/internal/state"
	"github.com/danielolaszy/boardctl/pkg/models"
)

var teamRules = map[string]state.Rule{
	"name": state.Required("Team name is required"),
}

func newTeamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Manage teams",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all teams",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				teams, err := load(cmd.Context(), readMany(a.client.Teams.List))
				if err != nil {
					return err
				}
				return a.out.Result(teams, func() string { return render.RenderTeams(teams) })
			},
		},
		newTeamShowCmd(a),
		newTeamCreateCmd(a),
		newTeamUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a team",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("team", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Teams.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete team %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Team %d deleted", id))
			},
		},
		&cobra.Command{
			Use:   "remove-member <team-id> <member-id>",
			Short: "Remove a member from a team",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				teamID, err := parseID("team", args[0])
				if err != nil {
					return err
				}
				memberID, err := parseID("member", args[1])
				if err != nil {
					return err
				}
				if err := a.client.Teams.RemoveMember(cmd.Context(), teamID, memberID); err != nil {
					return fmt.Errorf("failed to remove member %d from team %d: %w", memberID, teamID, err)
				}
				return a.out.Success(map[string]int64{"teamId": teamID, "memberId": memberID},
					fmt.Sprintf("Member %d removed from team %d", memberID, teamID))
			},
		},
	)

	return cmd
}

func newTeamShowCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a team by id or --name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(context.Context) (*models.Team, error)
			switch {
			case len(args) == 1:
				id, err := parseID("team", args[0])
				if err != nil {
					return err
				}
				op = func(ctx context.Context) (*models.Team, error) { return a.client.Teams.Get(ctx, id) }
			case name != "":
				op = func(ctx context.Context) (*models.Team, error) { return a.client.Teams.FindByName(ctx, name) }
			default:
				return errors.New("a team id or --name is required")
			}

			team, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			if team == nil {
				return notFound("team", name)
			}
			return a.out.Result(team, func() string { return render.RenderTeams([]models.Team{*team}) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "look the team up by name")
	return cmd
}

func newTeamCreateCmd(a *app) *cobra.Command {
	var (
		name    string
		manager string
		members []int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(state.Values{
				"name":               name,
				"projectManagerName": manager,
			}, teamRules)
			if err != nil {
				return err
			}

			team, err := a.client.Teams.Create(cmd.Context(), models.TeamRequest{
				Name:               form.String("name"),
				ProjectManagerName: form.String("projectManagerName"),
				TeamMemberIDs:      members,
			})
			if err != nil {
				return fmt.Errorf("failed to create team: %w", err)
			}
			return a.out.Success(team, fmt.Sprintf("Team %s created", form.String("name")))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "team name")
	cmd.Flags().StringVar(&manager, "manager", "", "project manager name")
	cmd.Flags().Int64SliceVar(&members, "members", nil, "member ids to add")
	return cmd
}

func newTeamUpdateCmd(a *app) *cobra.Command {
	var (
		name    string
		manager string
		members []int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("team", args[0])
			if err != nil {
				return err
			}

			rules := map[string]state.Rule{}
			if cmd.Flags().Changed("name") {
				rules["name"] = teamRules["name"]
			}
			form, err := submit(state.Values{
				"name":               name,
				"projectManagerName": manager,
			}, rules)
			if err != nil {
				return err
			}

			team, err := a.client.Teams.Update(cmd.Context(), id, models.TeamRequest{
				Name:               form.String("name"),
				ProjectManagerName: form.String("projectManagerName"),
				TeamMemberIDs:      members,
			})
			if err != nil {
				return fmt.Errorf("failed to update team %d: %w", id, err)
			}
			return a.out.Success(team, fmt.Sprintf("Team %d updated", id))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "team name")
	cmd.Flags().StringVar(&manager, "manager", "", "project manager name")
	cmd.Flags().Int64SliceVar(&members, "members", nil, "replace the member ids")
	return cmd
}
