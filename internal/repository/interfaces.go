package repository

import (
	"context"
	"time"

	"github.com/dquispe/jornada/internal/domain"
)

// SubactivityDetail is a subactivity joined with its parent activity name.
type SubactivityDetail struct {
	domain.Subactivity
	ActivityName string
}

// LedgerRepo persists activity ledger entries. Start and CloseOpen take
// their timestamps from the store's own clock so the display tier's clock
// never becomes authoritative; Create exists for callers that must supply
// explicit timestamps (seeding, backfills, tests).
type LedgerRepo interface {
	Create(ctx context.Context, e *domain.LedgerEntry) error
	Start(ctx context.Context, id, userID, activityID string, subactivityID, note *string) (*domain.LedgerEntry, error)
	CloseOpen(ctx context.Context, userID string) (int, error)
	CloseOpenAt(ctx context.Context, userID string, day time.Time, endAt time.Time, status domain.EntryStatus) (int, error)
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetOpen(ctx context.Context, userID string, day time.Time) (*domain.EntryDetail, error)
	CountOpen(ctx context.Context, userID string) (int, error)
	OpenElapsedSec(ctx context.Context, entryID string) (int, error)
	ListDay(ctx context.Context, userID string, day time.Time) ([]*domain.EntryDetail, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	Update(ctx context.Context, a *domain.Activity) error
	Deactivate(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	GetByName(ctx context.Context, name string) (*domain.Activity, error)
	ListActive(ctx context.Context) ([]*domain.Activity, error)
	ListAll(ctx context.Context) ([]*domain.Activity, error)
}

type SubactivityRepo interface {
	Create(ctx context.Context, s *domain.Subactivity) error
	Update(ctx context.Context, s *domain.Subactivity) error
	Deactivate(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Subactivity, error)
	ListActiveByActivity(ctx context.Context, activityID string) ([]*domain.Subactivity, error)
	ListAll(ctx context.Context) ([]SubactivityDetail, error)
}

// CampaignRepo and RoleRepo hard-delete, guarded by a usage count checked
// in the same transaction by the service layer.
type CampaignRepo interface {
	Create(ctx context.Context, c *domain.Campaign) error
	Update(ctx context.Context, c *domain.Campaign) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	GetByName(ctx context.Context, name string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	CountUsers(ctx context.Context, id string) (int, error)
}

type RoleRepo interface {
	Create(ctx context.Context, r *domain.Role) error
	Update(ctx context.Context, r *domain.Role) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	CountUsers(ctx context.Context, id string) (int, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*domain.UserDetail, error)
}

// ReportRepo runs the aggregation queries. Every aggregate counts an open
// entry as now − start on the store clock, re-evaluated per query; closed
// entries contribute their stored duration.
type ReportRepo interface {
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
