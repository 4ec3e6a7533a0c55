package service

import (
	"context"
	"io"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/session"
)

// TrackerService drives the clock-in/clock-out loop. Every method takes the
// operator's session clock explicitly; on error the clock is left untouched.
type TrackerService interface {
	StartOrSwitch(ctx context.Context, clock *session.Clock, userID, activityID string, subactivityID, note *string) error
	Stop(ctx context.Context, clock *session.Clock, userID string) error
	RestoreOpenActivity(ctx context.Context, clock *session.Clock, userID string) (bool, error)
	CloseStaleDay(ctx context.Context, clock *session.Clock, userID string, now time.Time) (bool, error)
	SyncDisplay(ctx context.Context, clock *session.Clock, now time.Time) (session.Display, error)
}

type ReportService interface {
	DaySummary(ctx context.Context, userID string, day time.Time) ([]domain.ActivityTotal, error)
	DayLog(ctx context.Context, userID string, day time.Time) ([]domain.DayLogRow, error)
	ActivityStats(ctx context.Context, userID string, from, to time.Time) ([]domain.ActivityStat, error)
	ProductivitySummary(ctx context.Context, userID string, day time.Time) (*domain.ProductivitySummary, error)
	SupervisorDashboard(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamMemberDay, error)
	TeamBreakdown(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamBreakdownRow, error)
	AdminKPIs(ctx context.Context, from, to time.Time, campaignID *string) (*domain.AdminKPIs, error)
	ByCampaign(ctx context.Context, from, to time.Time) ([]domain.CampaignSummary, error)
	ByUser(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.UserRangeSummary, error)
	ActivityBreakdown(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.ActivityBreakdownRow, error)
	UserLog(ctx context.Context, userID string, from, to time.Time) ([]domain.UserLogRow, error)
}

// CatalogService manages the activity catalog agents clock into.
type CatalogService interface {
	CreateActivity(ctx context.Context, name, description string, displayOrder int) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, a *domain.Activity) error
	DeactivateActivity(ctx context.Context, id string) error
	ListActivities(ctx context.Context, includeInactive bool) ([]*domain.Activity, error)
	// ListForTracking returns the active activities or ErrNoActivities when
	// the catalog is empty, which blocks the tracking loop.
	ListForTracking(ctx context.Context) ([]*domain.Activity, error)
	CreateSubactivity(ctx context.Context, activityID, name string, displayOrder int) (*domain.Subactivity, error)
	UpdateSubactivity(ctx context.Context, s *domain.Subactivity) error
	DeactivateSubactivity(ctx context.Context, id string) error
	ListSubactivities(ctx context.Context, activityID string) ([]*domain.Subactivity, error)
}

// AdminService manages reference data and user accounts.
type AdminService interface {
	CreateCampaign(ctx context.Context, name string) (*domain.Campaign, error)
	RenameCampaign(ctx context.Context, id, name string) error
	DeleteCampaign(ctx context.Context, id string) error
	ListCampaigns(ctx context.Context) ([]*domain.Campaign, error)

	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	RenameRole(ctx context.Context, id, name string) error
	DeleteRole(ctx context.Context, id string) error
	ListRoles(ctx context.Context) ([]*domain.Role, error)

	CreateUser(ctx context.Context, username, password, fullName string, roleID, campaignID *string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	SetUserActive(ctx context.Context, id string, active bool) error
	ResetPassword(ctx context.Context, id, password string) error
	ListUsers(ctx context.Context) ([]*domain.UserDetail, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

// ExportService streams report data out of the system.
type ExportService interface {
	// UserLogCSV writes one user's ranged history as CSV and returns the
	// number of data rows written.
	UserLogCSV(ctx context.Context, w io.Writer, userID string, from, to time.Time) (int, error)
}
