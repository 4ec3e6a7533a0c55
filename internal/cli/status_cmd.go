package cli

import (
	"context"
	"fmt"

	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var username, dayFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's day: summary and entry log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.resolveUser(ctx, username)
			if err != nil {
				return err
			}
			day, err := parseDay(dayFlag)
			if err != nil {
				return err
			}

			summary, err := app.Reports.DaySummary(ctx, user.ID, day)
			if err != nil {
				return err
			}
			if len(summary) == 0 {
				fmt.Printf("Sin registros para %s el %s.\n", user.FullName, day.Format(dayLayout))
				return nil
			}

			rows := make([][]string, 0, len(summary))
			for _, t := range summary {
				rows = append(rows, []string{t.ActivityName, formatter.HMS(t.TotalSec)})
			}
			fmt.Print(formatter.RenderBox(
				fmt.Sprintf("%s — %s", user.FullName, day.Format(dayLayout)),
				formatter.RenderTable([]string{"ACTIVIDAD", "TIEMPO"}, rows),
			))
			fmt.Println()

			log, err := app.Reports.DayLog(ctx, user.ID, day)
			if err != nil {
				return err
			}
			logRows := make([][]string, 0, len(log))
			for _, r := range log {
				logRows = append(logRows, []string{
					r.StartedAt.Local().Format("15:04:05"),
					r.ActivityName,
					formatter.OrDash(r.SubactivityName),
					formatter.HMSOrRunning(r.DurationSec),
					formatter.StatusPill(r.Status),
					formatter.OrDash(r.Note),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"INICIO", "ACTIVIDAD", "SUBACTIVIDAD", "DURACIÓN", "ESTADO", "NOTA"},
				logRows,
			))

			prod, err := app.Reports.ProductivitySummary(ctx, user.ID, day)
			if err != nil {
				return err
			}
			span := ""
			if prod.FirstStart != nil && prod.LastEnd != nil {
				span = fmt.Sprintf(" (%s a %s)",
					prod.FirstStart.Local().Format("15:04"),
					prod.LastEnd.Local().Format("15:04"))
			}
			fmt.Printf("\n%d registros, %d actividades, %s trabajadas%s\n",
				prod.EntryCount, prod.DistinctActivities, formatter.HMS(prod.WorkedSec), span)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username to inspect")
	cmd.Flags().StringVar(&dayFlag, "day", "", "Day to inspect (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
