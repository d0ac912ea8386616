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

var memberRules = map[string]state.Rule{
	"firstName": state.Required("First name is required"),
	"lastName":  state.Required("Last name is required"),
	"email":     state.Email("Email is required", "Email is invalid"),
	"position":  state.Required("Position is required"),
	"teamId":    state.Required("Team is required"),
}

type memberFlags struct {
	firstName string
	lastName  string
	email     string
	position  string
	github    string
	avatar    string
	team      int64
}

func (f *memberFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.position, "position", "", "position, e.g. Developer")
	cmd.Flags().StringVar(&f.github, "github-login", "", "GitHub login")
	cmd.Flags().StringVar(&f.avatar, "avatar-url", "", "avatar image URL")
	cmd.Flags().Int64Var(&f.team, "team", 0, "team id")
}

func (f *memberFlags) values() state.Values {
	return state.Values{
		"firstName":     f.firstName,
		"lastName":      f.lastName,
		"email":         f.email,
		"position":      f.position,
		"loginInGithub": f.github,
		"avatarUrl":     f.avatar,
		"teamId":        f.team,
	}
}

func (f *memberFlags) request(cmd *cobra.Command, form *state.Form) models.TeamMemberRequest {
	return models.TeamMemberRequest{
		FirstName:     form.String("firstName"),
		LastName:      form.String("lastName"),
		Email:         form.String("email"),
		Position:      form.String("position"),
		LoginInGithub: form.String("loginInGithub"),
		AvatarURL:     form.String("avatarUrl"),
		TeamID:        optionalID(cmd, "team", f.team),
	}
}

func newMembersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Manage team members",
	}

	cmd.AddCommand(
		newMemberListCmd(a),
		newMemberShowCmd(a),
		newMemberCreateCmd(a),
		newMemberUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a member",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("member", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Members.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete member %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Member %d deleted", id))
			},
		},
	)

	return cmd
}

func newMemberListCmd(a *app) *cobra.Command {
	var team int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members, optionally of one team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := readMany(a.client.Members.List)
			if team > 0 {
				op = readMany(func(ctx context.Context) []models.TeamMember {
					return a.client.Members.ListByTeam(ctx, team)
				})
			}

			members, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			return a.out.Result(members, func() string { return render.RenderMembers(members) })
		},
	}

	cmd.Flags().Int64Var(&team, "team", 0, "only members of this team id")
	return cmd
}

func newMemberShowCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a member by id or --name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(context.Context) (*models.TeamMember, error)
			switch {
			case len(args) == 1:
				id, err := parseID("member", args[0])
				if err != nil {
					return err
				}
				op = func(ctx context.Context) (*models.TeamMember, error) { return a.client.Members.Get(ctx, id) }
			case name != "":
				op = func(ctx context.Context) (*models.TeamMember, error) { return a.client.Members.FindByName(ctx, name) }
			default:
				return errors.New("a member id or --name is required")
			}

			member, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			if member == nil {
				return notFound("member", name)
			}
			return a.out.Result(member, func() string { return render.RenderMembers([]models.TeamMember{*member}) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", `look the member up by display name, e.g. "Ada Lovelace"`)
	return cmd
}

func newMemberCreateCmd(a *app) *cobra.Command {
	var f memberFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(f.values(), memberRules)
			if err != nil {
				return err
			}

			member, err := a.client.Members.Create(cmd.Context(), f.request(cmd, form))
			if err != nil {
				return fmt.Errorf("failed to create member: %w", err)
			}
			return a.out.Success(member, fmt.Sprintf("Member %s %s created", form.String("firstName"), form.String("lastName")))
		},
	}

	f.bind(cmd)
	return cmd
}

func newMemberUpdateCmd(a *app) *cobra.Command {
	var f memberFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("member", args[0])
			if err != nil {
				return err
			}

			rules := map[string]state.Rule{}
			for flag, field := range map[string]string{
				"first-name": "firstName",
				"last-name":  "lastName",
				"email":      "email",
				"position":   "position",
				"team":       "teamId",
			} {
				if cmd.Flags().Changed(flag) {
					rules[field] = memberRules[field]
				}
			}
			form, err := submit(f.values(), rules)
			if err != nil {
				return err
			}

			member, err := a.client.Members.Update(cmd.Context(), id, f.request(cmd, form))
			if err != nil {
				return fmt.Errorf("failed to update member %d: %w", id, err)
			}
			return a.out.Success(member, fmt.Sprintf("Member %d updated", id))
		},
	}

	f.bind(cmd)
	return cmd
}
