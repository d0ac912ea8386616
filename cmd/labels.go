package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/boardctl/internal/render"
	"github.com/danielolaszy/boardctl/internal/state"
	"github.com/danielolaszy/boardctl/pkg/models"
)

var labelRules = map[string]state.Rule{
	"name":  state.Required("Label name is required"),
	"color": state.Required("Color is required"),
}

func newLabelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labels",
		Aliases: []string{"label"},
		Short:   "Manage ticket labels",
	}

	cmd.AddCommand(
		newLabelListCmd(a),
		newLabelCreateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a label",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("label", args[0])
				if err != nil {
					return err
				}
				if err := a.client.Labels.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("failed to delete label %d: %w", id, err)
				}
				return a.out.Success(map[string]int64{"id": id}, fmt.Sprintf("Label %d deleted", id))
			},
		},
	)

	return cmd
}

func newLabelListCmd(a *app) *cobra.Command {
	var project int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels, optionally of one project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := readMany(a.client.Labels.List)
			if project > 0 {
				op = readMany(func(ctx context.Context) []models.Label {
					return a.client.Labels.ListByProject(ctx, project)
				})
			}

			labels, err := load(cmd.Context(), op)
			if err != nil {
				return err
			}
			return a.out.Result(labels, func() string { return render.RenderLabels(labels) })
		},
	}

	cmd.Flags().Int64Var(&project, "project", 0, "only labels of this project id")
	return cmd
}

func newLabelCreateCmd(a *app) *cobra.Command {
	var (
		name    string
		color   string
		project int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := submit(state.Values{"name": name, "color": color}, labelRules)
			if err != nil {
				return err
			}

			label, err := a.client.Labels.Create(cmd.Context(), models.Label{
				Name:      form.String("name"),
				Color:     form.String("color"),
				ProjectID: project,
			})
			if err != nil {
				return fmt.Errorf("failed to create label: %w", err)
			}
			return a.out.Success(label, fmt.Sprintf("Label %s created", form.String("name")))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "label name")
	cmd.Flags().StringVar(&color, "color", "", "label colour, e.g. #ff0000")
	cmd.Flags().Int64Var(&project, "project", 0, "project id")
	return cmd
}
