package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reports for supervisors and administrators",
	}

	cmd.AddCommand(
		newReportStatsCmd(app),
		newReportTeamCmd(app),
		newReportKPIsCmd(app),
		newReportCampaignsCmd(app),
		newReportUsersCmd(app),
		newReportActivitiesCmd(app),
	)
	return cmd
}

func newReportStatsCmd(app *App) *cobra.Command {
	var username, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-activity statistics for one user over a range",
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

			stats, err := app.Reports.ActivityStats(ctx, user.ID, from, to)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Println("Sin registros en el rango.")
				return nil
			}

			rows := make([][]string, 0, len(stats))
			for _, st := range stats {
				rows = append(rows, []string{
					st.ActivityName,
					formatter.OrDash(st.SubactivityName),
					strconv.Itoa(st.EntryCount),
					formatter.HMS(st.TotalSec),
					formatter.HMS(st.AvgSec),
				})
			}
			fmt.Print(formatter.RenderBox(
				fmt.Sprintf("%s — %s a %s", user.FullName, from.Format(dayLayout), to.Format(dayLayout)),
				formatter.RenderTable([]string{"ACTIVIDAD", "SUBACTIVIDAD", "VECES", "TOTAL", "PROMEDIO"}, rows),
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newReportTeamCmd(app *App) *cobra.Command {
	var campaignName, dayFlag string
	var breakdown bool

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Supervisor view of one campaign's day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			campaign, err := app.resolveCampaign(ctx, campaignName)
			if err != nil {
				return err
			}
			day, err := parseDay(dayFlag)
			if err != nil {
				return err
			}

			members, err := app.Reports.SupervisorDashboard(ctx, campaign.ID, day)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(members))
			for _, m := range members {
				state := formatter.Dim("--")
				if m.Running {
					state = formatter.StyleGreen.Render("● en línea")
				}
				rows = append(rows, []string{
					m.FullName,
					formatter.ClockTimeOrDash(m.FirstStart),
					formatter.ClockTimeOrDash(m.LastEnd),
					formatter.HMS(m.SpanSec),
					formatter.HMS(m.EffectiveSec),
					state,
				})
			}
			fmt.Print(formatter.RenderBox(
				fmt.Sprintf("%s — %s", campaign.Name, day.Format(dayLayout)),
				formatter.RenderTable(
					[]string{"ASESOR", "INICIO", "FIN", "JORNADA", "EFECTIVO", "ESTADO"}, rows),
			))

			if breakdown {
				detail, err := app.Reports.TeamBreakdown(ctx, campaign.ID, day)
				if err != nil {
					return err
				}
				dRows := make([][]string, 0, len(detail))
				for _, r := range detail {
					dRows = append(dRows, []string{
						r.FullName,
						r.ActivityName,
						formatter.OrDash(r.SubactivityName),
						strconv.Itoa(r.EntryCount),
						formatter.HMS(r.TotalSec),
					})
				}
				fmt.Println()
				fmt.Print(formatter.RenderTable(
					[]string{"ASESOR", "ACTIVIDAD", "SUBACTIVIDAD", "VECES", "TOTAL"}, dRows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignName, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&dayFlag, "day", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Include per-activity detail")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func newReportKPIsCmd(app *App) *cobra.Command {
	var campaignName, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Top-line numbers over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			from, to, err := parseRange(fromFlag, toFlag)
			if err != nil {
				return err
			}
			campaignID, err := optionalCampaignID(ctx, app, campaignName)
			if err != nil {
				return err
			}

			k, err := app.Reports.AdminKPIs(ctx, from, to, campaignID)
			if err != nil {
				return err
			}
			content := formatter.RenderTable(
				[]string{"ASESORES", "CAMPAÑAS", "REGISTROS", "TOTAL", "PROMEDIO"},
				[][]string{{
					strconv.Itoa(k.TotalAsesores),
					strconv.Itoa(k.TotalCampaigns),
					strconv.Itoa(k.TotalEntries),
					formatter.HMS(k.TotalSec),
					formatter.HMS(k.AvgEntrySec),
				}},
			)
			fmt.Print(formatter.RenderBox(
				fmt.Sprintf("KPIs %s a %s", from.Format(dayLayout), to.Format(dayLayout)), content))
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignName, "campaign", "", "Restrict to one campaign")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	return cmd
}

func newReportCampaignsCmd(app *App) *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Time per campaign over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(fromFlag, toFlag)
			if err != nil {
				return err
			}
			list, err := app.Reports.ByCampaign(context.Background(), from, to)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, c := range list {
				rows = append(rows, []string{
					c.CampaignName,
					strconv.Itoa(c.AsesorCount),
					strconv.Itoa(c.EntryCount),
					formatter.HMS(c.TotalSec),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"CAMPAÑA", "ASESORES", "REGISTROS", "TOTAL"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	return cmd
}

func newReportUsersCmd(app *App) *cobra.Command {
	var campaignName, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Time per asesor over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			from, to, err := parseRange(fromFlag, toFlag)
			if err != nil {
				return err
			}
			campaignID, err := optionalCampaignID(ctx, app, campaignName)
			if err != nil {
				return err
			}
			list, err := app.Reports.ByUser(ctx, from, to, campaignID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, u := range list {
				rows = append(rows, []string{
					u.FullName,
					u.CampaignName,
					strconv.Itoa(u.DaysWorked),
					strconv.Itoa(u.EntryCount),
					formatter.HMS(u.TotalSec),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ASESOR", "CAMPAÑA", "DÍAS", "REGISTROS", "TOTAL"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignName, "campaign", "", "Restrict to one campaign")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	return cmd
}

func newReportActivitiesCmd(app *App) *cobra.Command {
	var campaignName, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Time per activity over a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			from, to, err := parseRange(fromFlag, toFlag)
			if err != nil {
				return err
			}
			campaignID, err := optionalCampaignID(ctx, app, campaignName)
			if err != nil {
				return err
			}
			list, err := app.Reports.ActivityBreakdown(ctx, from, to, campaignID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, a := range list {
				rows = append(rows, []string{
					a.ActivityName,
					strconv.Itoa(a.EntryCount),
					formatter.HMS(a.TotalSec),
					formatter.HMS(a.AvgSec),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ACTIVIDAD", "REGISTROS", "TOTAL", "PROMEDIO"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&campaignName, "campaign", "", "Restrict to one campaign")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (YYYY-MM-DD, default 7 days back)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (YYYY-MM-DD, default today)")
	return cmd
}

func optionalCampaignID(ctx context.Context, app *App, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}
	c, err := app.resolveCampaign(ctx, name)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}
