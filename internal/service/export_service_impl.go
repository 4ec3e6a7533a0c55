package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
)

type exportService struct {
	reports repository.ReportRepo
}

func NewExportService(reports repository.ReportRepo) ExportService {
	return &exportService{reports: reports}
}

var csvHeader = []string{"day", "activity", "subactivity", "note", "started_at", "ended_at", "duration_sec", "duration_hms"}

// UserLogCSV writes the ranged history as CSV, one row per ledger entry.
// Running entries get empty end and duration columns.
func (s *exportService) UserLogCSV(ctx context.Context, w io.Writer, userID string, from, to time.Time) (int, error) {
	if to.Before(from) {
		return 0, ErrInvalidRange
	}
	rows, err := s.reports.UserLog(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Day,
			row.ActivityName,
			"",
			"",
			row.StartedAt.UTC().Format(time.RFC3339),
			"",
			"",
			"",
		}
		if row.SubactivityName != nil {
			record[2] = *row.SubactivityName
		}
		if row.Note != nil {
			record[3] = *row.Note
		}
		if row.EndedAt != nil {
			record[5] = row.EndedAt.UTC().Format(time.RFC3339)
		}
		if row.DurationSec != nil {
			record[6] = strconv.Itoa(*row.DurationSec)
			record[7] = domain.FormatHMS(*row.DurationSec)
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	return len(rows), nil
}
