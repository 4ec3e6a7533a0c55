package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var username, fromFlag, toFlag, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's entry history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.resolveUser(ctx, username)
			if err != nil {
				return err
			}
			from, to, err := parseRange(fromFlag, toFlag)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			n, err := app.Export.UserLogCSV(ctx, out, user.ID, from, to)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Printf("Wrote %d rows to %s\n", n, outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
