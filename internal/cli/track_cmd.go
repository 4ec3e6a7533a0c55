package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/service"
	"github.com/dquispe/jornada/internal/session"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Log in and track activities interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("track requires an interactive terminal")
			}
			return runTrackLoop(context.Background(), app)
		},
	}
}

func runTrackLoop(ctx context.Context, app *App) error {
	var username, password string
	if err := loginForm(&username, &password).Run(); err != nil {
		return err
	}
	user, err := app.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Hola, %s\n", formatter.Bold(user.FullName))

	clock := &session.Clock{}
	restored, err := app.Tracker.RestoreOpenActivity(ctx, clock, user.ID)
	if err != nil {
		return err
	}
	if restored {
		fmt.Printf("Actividad en curso recuperada: %s\n", formatter.Bold(clock.ActivityName))
	}

	for {
		closed, err := app.Tracker.CloseStaleDay(ctx, clock, user.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		if closed {
			fmt.Println(formatter.StyleYellow.Render("La jornada anterior quedó abierta y fue cerrada automáticamente."))
		}

		if clock.Open() {
			display, err := app.Tracker.SyncDisplay(ctx, clock, time.Now())
			if err != nil {
				if errors.Is(err, service.ErrNothingOpen) {
					continue
				}
				fmt.Println(formatter.StyleYellow.Render("La actividad fue cerrada desde otra sesión."))
				continue
			}
			action, err := runTimer(clock, display)
			if err != nil {
				return err
			}
			switch action {
			case timerStop:
				if err := app.Tracker.Stop(ctx, clock, user.ID); err != nil && !errors.Is(err, service.ErrNothingOpen) {
					return err
				}
				fmt.Println("Actividad detenida.")
				continue
			case timerKeepRunning:
				fmt.Println(formatter.Dim("La actividad sigue corriendo. Vuelve con 'jornada track'."))
				return nil
			case timerSwitch:
				// fall through to the picker
			}
		}

		done, err := pickAndStart(ctx, app, clock, user.ID)
		if err != nil {
			if errors.Is(err, service.ErrNoActivities) {
				return fmt.Errorf("no hay actividades configuradas; pide a un administrador ejecutar 'jornada init'")
			}
			return err
		}
		if done {
			fmt.Println(formatter.StyleGreen.Render("Jornada finalizada. Hasta mañana."))
			return nil
		}
	}
}

// pickAndStart walks the activity/subactivity/note forms and starts the
// choice. Returns true when the end-of-shift sentinel was chosen.
func pickAndStart(ctx context.Context, app *App, clock *session.Clock, userID string) (bool, error) {
	activities, err := app.Catalog.ListForTracking(ctx)
	if err != nil {
		return false, err
	}

	var activityID string
	if err := activitySelectForm(activities, &activityID).Run(); err != nil {
		return false, err
	}

	var chosen *domain.Activity
	for _, a := range activities {
		if a.ID == activityID {
			chosen = a
			break
		}
	}
	if chosen == nil {
		return false, fmt.Errorf("unknown activity selection")
	}

	var subactivityID, note *string
	if chosen.Name != domain.SentinelActivityName {
		subs, err := app.Catalog.ListSubactivities(ctx, activityID)
		if err != nil {
			return false, err
		}
		if len(subs) > 0 {
			var subID string
			if err := subactivitySelectForm(subs, &subID).Run(); err != nil {
				return false, err
			}
			subactivityID = domain.StrPtr(subID)
		}
		var noteText string
		if err := noteForm(&noteText).Run(); err != nil {
			return false, err
		}
		note = domain.StrPtr(noteText)
	}

	if err := app.Tracker.StartOrSwitch(ctx, clock, userID, activityID, subactivityID, note); err != nil {
		return false, err
	}
	return chosen.Name == domain.SentinelActivityName, nil
}
