package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/dquispe/jornada/internal/domain"
)

func jornadaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// loginForm collects credentials.
func loginForm(username, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Value(username).
				Validate(requireNonEmpty("usuario")),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(requireNonEmpty("contraseña")),
		),
	).WithTheme(jornadaHuhTheme()).WithShowHelp(false)
}

// activitySelectForm builds the activity picker from the active catalog.
func activitySelectForm(activities []*domain.Activity, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(activities))
	for _, a := range activities {
		label := a.Name
		if a.Description != "" {
			label = fmt.Sprintf("%s — %s", a.Name, a.Description)
		}
		options = append(options, huh.NewOption(label, a.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Actividad").
				Options(options...).
				Value(result),
		),
	).WithTheme(jornadaHuhTheme()).WithShowHelp(false)
}

// subactivitySelectForm builds the optional subactivity picker. The first
// option skips the subactivity.
func subactivitySelectForm(subs []*domain.Subactivity, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(subs)+1)
	options = append(options, huh.NewOption("(ninguna)", ""))
	for _, s := range subs {
		options = append(options, huh.NewOption(s.Name, s.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subactividad").
				Options(options...).
				Value(result),
		),
	).WithTheme(jornadaHuhTheme()).WithShowHelp(false)
}

// noteForm collects an optional free-text note.
func noteForm(note *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nota (opcional)").
				Placeholder("caso, ticket, referencia...").
				Value(note),
		),
	).WithTheme(jornadaHuhTheme()).WithShowHelp(false)
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", field)
		}
		return nil
	}
}
