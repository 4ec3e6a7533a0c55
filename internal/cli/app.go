package cli

import (
	"context"
	"fmt"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tracker service.TrackerService
	Reports service.ReportService
	Catalog service.CatalogService
	Admin   service.AdminService
	Auth    service.AuthService
	Export  service.ExportService

	// Users backs username lookups for commands addressing someone else's
	// data (supervisor and admin views).
	Users repository.UserRepo
	// Campaigns backs campaign name lookups for report filters.
	Campaigns repository.CampaignRepo
	// UoW runs the first-time seeding.
	UoW db.UnitOfWork

	// IsInteractive reports whether stdin is a terminal. The tracking loop
	// refuses to run without one.
	IsInteractive func() bool
}

// resolveUser turns a username into the full user record.
func (a *App) resolveUser(ctx context.Context, username string) (*domain.User, error) {
	u, err := a.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user '%s': %w", username, err)
	}
	return u, nil
}

// resolveCampaign turns a campaign name into its record.
func (a *App) resolveCampaign(ctx context.Context, name string) (*domain.Campaign, error) {
	c, err := a.Campaigns.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("campaign '%s': %w", name, err)
	}
	return c, nil
}
