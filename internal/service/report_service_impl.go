package service

import (
	"context"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
)

type reportService struct {
	reports repository.ReportRepo
}

func NewReportService(reports repository.ReportRepo) ReportService {
	return &reportService{reports: reports}
}

func validRange(from, to time.Time) error {
	if to.Before(from) {
		return ErrInvalidRange
	}
	return nil
}

func (s *reportService) DaySummary(ctx context.Context, userID string, day time.Time) ([]domain.ActivityTotal, error) {
	return s.reports.DaySummary(ctx, userID, day)
}

func (s *reportService) DayLog(ctx context.Context, userID string, day time.Time) ([]domain.DayLogRow, error) {
	return s.reports.DayLog(ctx, userID, day)
}

func (s *reportService) ActivityStats(ctx context.Context, userID string, from, to time.Time) ([]domain.ActivityStat, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.ActivityStats(ctx, userID, from, to)
}

func (s *reportService) ProductivitySummary(ctx context.Context, userID string, day time.Time) (*domain.ProductivitySummary, error) {
	return s.reports.ProductivitySummary(ctx, userID, day)
}

func (s *reportService) SupervisorDashboard(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamMemberDay, error) {
	return s.reports.SupervisorDashboard(ctx, campaignID, day)
}

func (s *reportService) TeamBreakdown(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamBreakdownRow, error) {
	return s.reports.TeamBreakdown(ctx, campaignID, day)
}

func (s *reportService) AdminKPIs(ctx context.Context, from, to time.Time, campaignID *string) (*domain.AdminKPIs, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.AdminKPIs(ctx, from, to, campaignID)
}

func (s *reportService) ByCampaign(ctx context.Context, from, to time.Time) ([]domain.CampaignSummary, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.ByCampaign(ctx, from, to)
}

func (s *reportService) ByUser(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.UserRangeSummary, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.ByUser(ctx, from, to, campaignID)
}

func (s *reportService) ActivityBreakdown(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.ActivityBreakdownRow, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.ActivityBreakdown(ctx, from, to, campaignID)
}

func (s *reportService) UserLog(ctx context.Context, userID string, from, to time.Time) ([]domain.UserLogRow, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.reports.UserLog(ctx, userID, from, to)
}
