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

var boardRules = map[string]state.Rule{
	"name":      state.Required("Board name is required"),
	"projectId": state.Required("Project is required"),
}

func newBoardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage project boards",
	}

	cmd.AddCommand(
		newBoardListCmd(a),
		newBoardCreateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a board",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("board", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Boards.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete board %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Board %d deleted", id))
			},
		},
	)

	return cmd
}

func newBoardListCmd(a *app) *cobra.Command {
	var project int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the boards of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if project <= 0 {
				return errors.New("--project is required")
			}
			boards, err := load(cmd.Context(), readMany(func(ctx context.Context) []models.Board {
				return a.client.Boards.ListByProject(ctx, project)
			}))
			if err != nil {
				return err
			}
			return a.out.Result(boards, func() string { return render.RenderBoards(boards) })
		},
	}

	cmd.Flags().Int64Var(&project, "project", 0, "project id")
	return cmd
}

func newBoardCreateCmd(a *app) *cobra.Command {
	var (
		name    string
		project int64
		def     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(state.Values{"name": name, "projectId": project}, boardRules)
			if err != nil {
				return err
			}

			board, err := a.client.Boards.Create(cmd.Context(), models.BoardRequest{
				Name:      form.String("name"),
				ProjectID: project,
				Default:   def,
			})
			if err != nil {
				return fmt.Errorf("failed to create board: %w", err)
			}
			return a.out.Success(board, fmt.Sprintf("Board %s created", form.String("name")))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "board name")
	cmd.Flags().Int64Var(&project, "project", 0, "project id")
	cmd.Flags().BoolVar(&def, "default", false, "make this the project's default board")
	return cmd
}
