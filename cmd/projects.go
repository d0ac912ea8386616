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

var projectRules = map[string]state.Rule{
	"key":              state.Required("Key is required"),
	"fullName":         state.Required("Name is required"),
	"teamName":         state.Required("Team name is required"),
	"projectOwnerName": state.Required("Project owner is required"),
}

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all projects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				projects, err := load(cmd.Context(), readMany(a.client.Projects.List))
				if err != nil {
					return err
				}
				return a.out.Result(projects, func() string { return render.RenderProjects(projects) })
			},
		},
		newProjectShowCmd(a),
		newProjectCreateCmd(a),
		newProjectUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("project", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Projects.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete project %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Project %d deleted", id))
			},
		},
	)

	return cmd
}

func newProjectShowCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a project by id or --name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(context.Context) (*models.Project, error)
			switch {
			case len(args) == 1:
				id, err := parseID("project", args[0])
				if err != nil {
					return err
				}
				op = func(ctx context.Context) (*models.Project, error) { return a.client.Projects.Get(ctx, id) }
			case name != "":
				op = func(ctx context.Context) (*models.Project, error) { return a.client.Projects.GetByName(ctx, name) }
			default:
				return errors.New("a project id or --name is required")
			}

			project, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			if project == nil {
				return notFound("project", name)
			}
			return a.out.Result(project, func() string { return render.RenderProjects([]models.Project{*project}) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "look the project up by name")
	return cmd
}

func newProjectCreateCmd(a *app) *cobra.Command {
	var req models.ProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(state.Values{
				"key":              req.Key,
				"fullName":         req.FullName,
				"projectOwnerName": req.ProjectOwnerName,
				"teamName":         req.TeamName,
			}, projectRules)
			if err != nil {
				return err
			}

			project, err := a.client.Projects.Create(cmd.Context(), models.ProjectRequest{
				Key:              form.String("key"),
				FullName:         form.String("fullName"),
				ProjectOwnerName: form.String("projectOwnerName"),
				TeamName:         form.String("teamName"),
			})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}
			return a.out.Success(project, fmt.Sprintf("Project %s created", form.String("key")))
		},
	}

	cmd.Flags().StringVar(&req.Key, "key", "", "short project key, e.g. WEB")
	cmd.Flags().StringVar(&req.FullName, "name", "", "project name")
	cmd.Flags().StringVar(&req.ProjectOwnerName, "owner", "", "project owner name")
	cmd.Flags().StringVar(&req.TeamName, "team", "", "team name")
	return cmd
}

func newProjectUpdateCmd(a *app) *cobra.Command {
	var req models.ProjectRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}

			rules := map[string]state.Rule{}
			for flag, field := range map[string]string{"key": "key", "name": "fullName", "team": "teamName", "owner": "projectOwnerName"} {
				if cmd.Flags().Changed(flag) {
					rules[field] = projectRules[field]
				}
			}
			form, err := submit(state.Values{
				"key":              req.Key,
				"fullName":         req.FullName,
				"projectOwnerName": req.ProjectOwnerName,
				"teamName":         req.TeamName,
			}, rules)
			if err != nil {
				return err
			}

			project, err := a.client.Projects.Update(cmd.Context(), id, models.ProjectRequest{
				Key:              form.String("key"),
				FullName:         form.String("fullName"),
				ProjectOwnerName: form.String("projectOwnerName"),
				TeamName:         form.String("teamName"),
			})
			if err != nil {
				return fmt.Errorf("failed to update project %d: %w", id, err)
			}
			return a.out.Success(project, fmt.Sprintf("Project %d updated", id))
		},
	}

	cmd.Flags().StringVar(&req.Key, "key", "", "short project key")
	cmd.Flags().StringVar(&req.FullName, "name", "", "project name")
	cmd.Flags().StringVar(&req.ProjectOwnerName, "owner", "", "project owner name")
	cmd.Flags().StringVar(&req.TeamName, "team", "", "team name")
	return cmd
}
