package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "jornada" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jornada",
		Short: "Workforce activity tracking for contact-center teams",
	}

	root.AddCommand(
		newInitCmd(app),
		newTrackCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newAdminCmd(app),
		newExportCmd(app),
	)

	return root
}
