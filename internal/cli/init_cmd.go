package cli

import (
	"context"
	"fmt"

	"github.com/dquispe/jornada/internal/seed"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var adminPassword string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed roles, the activity catalog and the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := seed.Run(context.Background(), app.UoW, adminPassword)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d roles, %d campaigns, %d activities, %d subactivities\n",
				res.Roles, res.Campaigns, res.Activities, res.Subactivities)
			if res.AdminCreated {
				fmt.Printf("Created admin account '%s'. Change its password with:\n", seed.DefaultAdminUsername)
				fmt.Println("  jornada admin user reset-password admin")
			} else {
				fmt.Println("Admin account already exists, left untouched.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&adminPassword, "admin-password", "cambiar123", "Initial password for the admin account")
	return cmd
}
