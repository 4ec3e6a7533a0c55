package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the activity catalog, campaigns, roles and users",
	}

	cmd.AddCommand(
		newAdminActivityCmd(app),
		newAdminSubactivityCmd(app),
		newAdminCampaignCmd(app),
		newAdminRoleCmd(app),
		newAdminUserCmd(app),
	)
	return cmd
}

func newAdminActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage activities",
	}

	var description string
	var order int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Catalog.CreateActivity(context.Background(), args[0], description, order)
			if err != nil {
				return err
			}
			fmt.Printf("Created activity '%s' (%s)\n", a.Name, a.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "Activity description")
	add.Flags().IntVar(&order, "order", 0, "Display order")

	var includeInactive bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Catalog.ListActivities(context.Background(), includeInactive)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(activities))
			for _, a := range activities {
				rows = append(rows, []string{
					formatter.TruncID(a.ID),
					a.Name,
					a.Description,
					strconv.Itoa(a.DisplayOrder),
					formatter.ActivePill(a.Active),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ID", "NOMBRE", "DESCRIPCIÓN", "ORDEN", "ESTADO"}, rows))
			return nil
		},
	}
	list.Flags().BoolVar(&includeInactive, "all", false, "Include deactivated activities")

	deactivate := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate an activity (history is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.DeactivateActivity(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deactivated activity %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, deactivate)
	return cmd
}

func newAdminSubactivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subactivity",
		Short: "Manage subactivities",
	}

	var activityID string
	var order int
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subactivity under an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Catalog.CreateSubactivity(context.Background(), activityID, args[0], order)
			if err != nil {
				return err
			}
			fmt.Printf("Created subactivity '%s' (%s)\n", s.Name, s.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&activityID, "activity", "", "Parent activity ID")
	add.Flags().IntVar(&order, "order", 0, "Display order")
	_ = add.MarkFlagRequired("activity")

	list := &cobra.Command{
		Use:   "list ACTIVITY_ID",
		Short: "List active subactivities of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := app.Catalog.ListSubactivities(context.Background(), args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(subs))
			for _, s := range subs {
				rows = append(rows, []string{formatter.TruncID(s.ID), s.Name, strconv.Itoa(s.DisplayOrder)})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NOMBRE", "ORDEN"}, rows))
			return nil
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a subactivity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.DeactivateSubactivity(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deactivated subactivity %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, deactivate)
	return cmd
}

func newAdminCampaignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Admin.CreateCampaign(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created campaign '%s' (%s)\n", c.Name, c.ID[:8])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaigns, err := app.Admin.ListCampaigns(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(campaigns))
			for _, c := range campaigns {
				rows = append(rows, []string{formatter.TruncID(c.ID), c.Name, formatter.HumanTimestamp(c.CreatedAt)})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NOMBRE", "CREADA"}, rows))
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename ID NEW_NAME",
		Short: "Rename a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.RenameCampaign(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed campaign %s to '%s'\n", args[0], args[1])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a campaign (refused while users are assigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.DeleteCampaign(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted campaign %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, rename, remove)
	return cmd
}

func newAdminRoleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Admin.CreateRole(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created role '%s' (%s)\n", r.Name, r.ID[:8])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := app.Admin.ListRoles(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(roles))
			for _, r := range roles {
				rows = append(rows, []string{formatter.TruncID(r.ID), r.Name})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NOMBRE"}, rows))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a role (refused while users are assigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.DeleteRole(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted role %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func newAdminUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var fullName, roleName, campaignName, password string
	add := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var roleID, campaignID *string
			if roleName != "" {
				roles, err := app.Admin.ListRoles(ctx)
				if err != nil {
					return err
				}
				for _, r := range roles {
					if r.Name == roleName {
						roleID = &r.ID
						break
					}
				}
				if roleID == nil {
					return fmt.Errorf("role '%s' not found", roleName)
				}
			}
			if campaignName != "" {
				c, err := app.resolveCampaign(ctx, campaignName)
				if err != nil {
					return err
				}
				campaignID = &c.ID
			}
			if password == "" {
				if err := passwordForm(&password).Run(); err != nil {
					return err
				}
			}

			u, err := app.Admin.CreateUser(ctx, args[0], password, fullName, roleID, campaignID)
			if err != nil {
				return err
			}
			fmt.Printf("Created user '%s' (%s)\n", u.Username, u.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&fullName, "name", "", "Full name")
	add.Flags().StringVar(&roleName, "role", "", "Role name")
	add.Flags().StringVar(&campaignName, "campaign", "", "Campaign name")
	add.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Admin.ListUsers(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					u.Username,
					u.FullName,
					formatter.OrDash(u.RoleName),
					formatter.OrDash(u.CampaignName),
					formatter.ActivePill(u.Active),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"USUARIO", "NOMBRE", "ROL", "CAMPAÑA", "ESTADO"}, rows))
			return nil
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate USERNAME",
		Short: "Deactivate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := app.resolveUser(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Admin.SetUserActive(ctx, u.ID, false); err != nil {
				return err
			}
			fmt.Printf("Deactivated user '%s'\n", u.Username)
			return nil
		},
	}

	activate := &cobra.Command{
		Use:   "activate USERNAME",
		Short: "Reactivate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := app.resolveUser(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Admin.SetUserActive(ctx, u.ID, true); err != nil {
				return err
			}
			fmt.Printf("Activated user '%s'\n", u.Username)
			return nil
		},
	}

	var newPassword string
	resetPassword := &cobra.Command{
		Use:   "reset-password USERNAME",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := app.resolveUser(ctx, args[0])
			if err != nil {
				return err
			}
			if newPassword == "" {
				if err := passwordForm(&newPassword).Run(); err != nil {
					return err
				}
			}
			if err := app.Admin.ResetPassword(ctx, u.ID, newPassword); err != nil {
				return err
			}
			fmt.Printf("Password updated for '%s'\n", u.Username)
			return nil
		},
	}
	resetPassword.Flags().StringVar(&newPassword, "password", "", "New password (prompted when omitted)")

	cmd.AddCommand(add, list, deactivate, activate, resetPassword)
	return cmd
}

// passwordForm prompts for a password without echoing it.
func passwordForm(password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(requireNonEmpty("contraseña")),
		),
	).WithTheme(jornadaHuhTheme()).WithShowHelp(false)
}
