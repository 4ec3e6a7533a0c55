package domain

import "time"

// ActivityTotal is one row of a per-activity summary. Open entries
// contribute now − start at query time, so totals move between reads.
type ActivityTotal struct {
	ActivityName string
	TotalSec     int
}

// DayLogRow is one detail row of a user's daily log.
type DayLogRow struct {
	ActivityName    string
	SubactivityName *string
	Note            *string
	StartedAt       time.Time
	DurationSec     *int // nil while the entry is running
	Status          EntryStatus
}

// ActivityStat aggregates a user's entries per activity/subactivity over a
// date range.
type ActivityStat struct {
	ActivityName    string
	SubactivityName *string
	EntryCount      int
	TotalSec        int
	AvgSec          int
}

// ProductivitySummary condenses one user's day.
type ProductivitySummary struct {
	EntryCount         int
	DistinctActivities int
	FirstStart         *time.Time
	LastEnd            *time.Time
	WorkedSec          int
}

// TeamMemberDay is one supervisor-dashboard row: a team member's working
// day at a glance.
type TeamMemberDay struct {
	FullName     string
	FirstStart   *time.Time
	LastEnd      *time.Time
	SpanSec      int
	EffectiveSec int // excludes break activities
	Running      bool
}

// TeamBreakdownRow is a per-member, per-activity total for one campaign day.
type TeamBreakdownRow struct {
	FullName        string
	ActivityName    string
	SubactivityName *string
	EntryCount      int
	TotalSec        int
}

// AdminKPIs are the top-line numbers of the admin dashboard.
type AdminKPIs struct {
	TotalAsesores  int
	TotalCampaigns int
	TotalEntries   int
	TotalSec       int
	AvgEntrySec    int
}

// CampaignSummary aggregates closed time per campaign over a range.
type CampaignSummary struct {
	CampaignName string
	AsesorCount  int
	EntryCount   int
	TotalSec     int
}

// UserRangeSummary aggregates one user's closed time over a range.
type UserRangeSummary struct {
	FullName     string
	CampaignName string
	DaysWorked   int
	EntryCount   int
	TotalSec     int
}

// ActivityBreakdownRow aggregates closed time per activity over a range.
type ActivityBreakdownRow struct {
	ActivityName string
	EntryCount   int
	TotalSec     int
	AvgSec       int
}

// UserLogRow is one row of a ranged user history, also the CSV export shape.
type UserLogRow struct {
	Day             string
	ActivityName    string
	SubactivityName *string
	Note            *string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSec     *int
}
