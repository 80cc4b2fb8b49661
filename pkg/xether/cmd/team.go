package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

func NewTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management and collaboration",
	}
	cmd.AddCommand(
		newTeamListCommand(),
		newTeamInfoCommand(),
		newTeamCreateCommand(),
		newTeamUpdateCommand(),
		newTeamMembersCommand(),
		newTeamAddMemberCommand(),
		newTeamRemoveMemberCommand(),
		newTeamDeleteCommand(),
	)
	return cmd
}

var teamListView = listView{columns: output.TeamColumns, wide: output.TeamColumnsWide, empty: "No teams found."}

func teamID(arg string) (int, error) {
	return validation.NumericID(arg, "Team")
}

func memberID(userID int) (int, error) {
	return validation.NumericID(strconv.Itoa(userID), "User")
}

func newTeamListCommand() *cobra.Command {
	var pages pageFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List teams you are a member of",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			teams, err := apiClient.Teams().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list teams: %w", err)
			}
			paged, info := pages.apply(rt, teams)
			return rt.renderList(teamListView, paged, info)
		},
	}
	pages.register(cmd)
	return cmd
}

func newTeamInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info TEAM_ID",
		Short: "Show detailed information about a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			team, err := apiClient.Teams().Get(cmd.Context(), id)
			if err != nil {
				return fetchError(err, "Team", id)
			}
			return rt.renderObject(team, func() {
				output.WriteDetails(rt.Writer(), "Team Details: "+gjson.GetBytes(team, "name").String(), output.TeamFields, team)
			})
		},
	}
}

func newTeamCreateCommand() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			team, err := apiClient.Teams().Create(cmd.Context(), client.TeamRequest{Name: name, Description: description})
			if err != nil {
				return fmt.Errorf("failed to create team: %w", err)
			}
			return rt.renderObject(team, func() {
				output.Success(rt.Writer(), "Team '%s' created successfully!", gjson.GetBytes(team, "name").String())
				rt.printf("Team ID: %s\n", output.Highlight(gjson.GetBytes(team, "id").String()))
				rt.printf("Owner ID: %s\n", gjson.GetBytes(team, "owner_id").String())
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Team name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Team description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTeamUpdateCommand() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "update TEAM_ID",
		Short: "Update team details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			update := client.TeamUpdate{}
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
			team, err := apiClient.Teams().Update(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("failed to update team: %w", err)
			}
			return rt.renderObject(team, func() {
				output.Success(rt.Writer(), "Team '%s' updated successfully!", gjson.GetBytes(team, "name").String())
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New team name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New team description (empty clears it)")
	return cmd
}

func newTeamMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members TEAM_ID",
		Short: "List all members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			members, err := apiClient.Teams().Members(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to list team members: %w", err)
			}
			view := listView{columns: output.MemberColumns, empty: fmt.Sprintf("No members found for team %d.", id)}
			return rt.renderList(view, members, "")
		},
	}
}

func newTeamAddMemberCommand() *cobra.Command {
	var (
		userID int
		role   string
	)
	cmd := &cobra.Command{
		Use:   "add-member TEAM_ID",
		Short: "Add a member to a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			if userID, err = memberID(userID); err != nil {
				return err
			}
			if role, err = validation.TeamRole(role); err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Teams().AddMember(cmd.Context(), id, client.MemberRequest{UserID: userID, Role: role}); err != nil {
				return fmt.Errorf("failed to add team member: %w", err)
			}
			output.Success(rt.Writer(), "User %d added to team %d as %s!", userID, id, role)
			return nil
		},
	}
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "User ID to add")
	cmd.Flags().StringVarP(&role, "role", "r", "viewer", "Role (admin, manager, developer, viewer)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTeamRemoveMemberCommand() *cobra.Command {
	var userID int
	cmd := &cobra.Command{
		Use:   "remove-member TEAM_ID",
		Short: "Remove a member from a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			if userID, err = memberID(userID); err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Teams().RemoveMember(cmd.Context(), id, userID); err != nil {
				return fmt.Errorf("failed to remove team member: %w", err)
			}
			output.Success(rt.Writer(), "User %d removed from team %d!", userID, id)
			return nil
		},
	}
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "User ID to remove")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTeamDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete TEAM_ID",
		Short: "Delete a team (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := teamID(args[0])
			if err != nil {
				return err
			}
			ok, err := rt.confirmDestructive(yes, fmt.Sprintf("Warning: This will permanently delete team %d", id))
			if err != nil || !ok {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Teams().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete team: %w", err)
			}
			output.Success(rt.Writer(), "Team %d deleted successfully!", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "confirm", "y", false, "Skip confirmation prompt")
	return cmd
}
