package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project workspace management",
	}
	cmd.AddCommand(
		newProjectListCommand(),
		newProjectInfoCommand(),
		newProjectCreateCommand(),
		newProjectUpdateCommand(),
		newProjectDeleteCommand(),
	)
	return cmd
}

var projectListView = listView{columns: output.ProjectColumns, wide: output.ProjectColumnsWide, empty: "No projects found."}

func newProjectListCommand() *cobra.Command {
	var (
		teamID int
		pages  pageFlags
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects you have access to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			projects, err := apiClient.Projects().List(cmd.Context(), teamID)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			paged, info := pages.apply(rt, projects)
			return rt.renderList(projectListView, paged, info)
		},
	}
	cmd.Flags().IntVarP(&teamID, "team", "t", 0, "Filter by team ID")
	pages.register(cmd)
	return cmd
}

func newProjectInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info PROJECT_ID",
		Short: "Show detailed information about a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ProjectID(args[0])
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			project, err := apiClient.Projects().Get(cmd.Context(), id)
			if err != nil {
				return fetchError(err, "Project", id)
			}
			return rt.renderObject(project, func() {
				output.WriteDetails(rt.Writer(), "Project Details: "+gjson.GetBytes(project, "name").String(), output.ProjectFields, project)
			})
		},
	}
}

func newProjectCreateCommand() *cobra.Command {
	var (
		name        string
		teamID      int
		description string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project in a team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if teamID <= 0 {
				return &validation.Error{Message: "Team ID must be positive"}
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			project, err := apiClient.Projects().Create(cmd.Context(), client.ProjectRequest{Name: name, TeamID: teamID, Description: description})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}
			return rt.renderObject(project, func() {
				output.Success(rt.Writer(), "Project '%s' created successfully!", gjson.GetBytes(project, "name").String())
				rt.printf("Project ID: %s\n", output.Highlight(gjson.GetBytes(project, "id").String()))
				rt.printf("Team ID: %s\n", gjson.GetBytes(project, "team_id").String())
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name")
	cmd.Flags().IntVarP(&teamID, "team", "t", 0, "Team ID to create project in")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newProjectUpdateCommand() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "update PROJECT_ID",
		Short: "Update project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ProjectID(args[0])
			if err != nil {
				return err
			}
			update := client.ProjectUpdate{}
			if name != "" {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if update.Name == nil && update.Description == nil {
				return &UsageError{Err: fmt.Errorf("at least one field to update must be provided")}
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			project, err := apiClient.Projects().Update(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("failed to update project: %w", err)
			}
			return rt.renderObject(project, func() {
				output.Success(rt.Writer(), "Project '%s' updated successfully!", gjson.GetBytes(project, "name").String())
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New project description (empty clears it)")
	return cmd
}

func newProjectDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ProjectID(args[0])
			if err != nil {
				return err
			}
			ok, err := rt.confirmDestructive(yes, fmt.Sprintf("Warning: This will permanently delete project %d", id))
			if err != nil || !ok {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Projects().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}
			output.Success(rt.Writer(), "Project %d deleted successfully!", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "confirm", "y", false, "Skip confirmation prompt")
	return cmd
}
