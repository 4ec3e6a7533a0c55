package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/session"
	"github.com/google/uuid"
)

type trackerService struct {
	ledger        repository.LedgerRepo
	activities    repository.ActivityRepo
	subactivities repository.SubactivityRepo
	uow           db.UnitOfWork
	observer      UseCaseObserver
}

func NewTrackerService(
	ledger repository.LedgerRepo,
	activities repository.ActivityRepo,
	subactivities repository.SubactivityRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TrackerService {
	return &trackerService{
		ledger:        ledger,
		activities:    activities,
		subactivities: subactivities,
		uow:           uow,
		observer:      useCaseObserverOrNoop(observers),
	}
}

// StartOrSwitch closes whatever is open and starts the chosen activity. The
// close and the start are separate statements on purpose: if the start fails
// after the close succeeded, the ledger is left consistent (nothing open)
// and the clock untouched, so the operator just picks again.
//
// Choosing the end-of-shift sentinel instead runs close-start-close in one
// transaction and leaves the clock empty.
func (s *trackerService) StartOrSwitch(ctx context.Context, clock *session.Clock, userID, activityID string, subactivityID, note *string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "activity_id": activityID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-or-switch",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	act, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if !act.Active {
		return ErrActivityInactive
	}
	var sub *domain.Subactivity
	if subactivityID != nil {
		sub, err = s.subactivities.GetByID(ctx, *subactivityID)
		if err != nil {
			return err
		}
		if sub.ActivityID != activityID || !sub.Active {
			return ErrSubactivityMismatch
		}
	}

	if act.Name == domain.SentinelActivityName {
		fields["sentinel"] = true
		return s.endShift(ctx, clock, userID, activityID, note)
	}

	if _, err := s.ledger.CloseOpen(ctx, userID); err != nil {
		return fmt.Errorf("closing previous activity: %w", err)
	}
	entry, err := s.ledger.Start(ctx, uuid.New().String(), userID, activityID, subactivityID, note)
	if err != nil {
		return fmt.Errorf("starting activity: %w", err)
	}

	clock.ActivityID = act.ID
	clock.ActivityName = act.Name
	clock.Note = note
	clock.Subactivity = nil
	if sub != nil {
		clock.Subactivity = &sub.Name
	}
	start := entry.StartedAt
	clock.StartTime = &start
	clock.EntryID = entry.ID
	return nil
}

// endShift records the sentinel as a zero-length closed entry so the day log
// shows when the operator left, then empties the clock. The three writes
// commit together or not at all.
func (s *trackerService) endShift(ctx context.Context, clock *session.Clock, userID, activityID string, note *string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLedger := repository.NewSQLiteLedgerRepo(tx)
		if _, err := txLedger.CloseOpen(ctx, userID); err != nil {
			return err
		}
		if _, err := txLedger.Start(ctx, uuid.New().String(), userID, activityID, nil, note); err != nil {
			return err
		}
		_, err := txLedger.CloseOpen(ctx, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("ending shift: %w", err)
	}
	clock.Clear()
	return nil
}

func (s *trackerService) Stop(ctx context.Context, clock *session.Clock, userID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stop",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_id": userID},
		})
	}()

	n, err := s.ledger.CloseOpen(ctx, userID)
	if err != nil {
		return fmt.Errorf("stopping activity: %w", err)
	}
	if n == 0 {
		// The ledger had nothing open. Still reset the clock so a stale
		// local state cannot survive.
		clock.Clear()
		return ErrNothingOpen
	}
	clock.Clear()
	return nil
}

// RestoreOpenActivity rehydrates the clock from an entry left open on
// today's ledger, at most once per session. Returns true when something was
// restored.
func (s *trackerService) RestoreOpenActivity(ctx context.Context, clock *session.Clock, userID string) (bool, error) {
	if clock.Restored() {
		return false, nil
	}

	open, err := s.ledger.GetOpen(ctx, userID, time.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		clock.MarkRestored()
		return false, nil
	}
	// A row with an unreadable start time is treated as nothing to restore;
	// the entry stays in the ledger for an admin to fix.
	if errors.Is(err, repository.ErrCorruptTimestamp) {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:    "restore-open-activity",
			Success: false,
			Err:     err,
			Fields:  map[string]any{"user_id": userID},
		})
		clock.MarkRestored()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("restoring open activity: %w", err)
	}

	clock.ActivityID = open.ActivityID
	clock.ActivityName = open.ActivityName
	clock.Subactivity = open.SubactivityName
	clock.Note = open.Note
	start := open.StartedAt
	clock.StartTime = &start
	clock.EntryID = open.ID
	clock.MarkRestored()
	return true, nil
}

// CloseStaleDay force-closes entries the clock left open across midnight,
// stamping them at 23:59:59 of the day they started. Returns true when a
// closure happened.
func (s *trackerService) CloseStaleDay(ctx context.Context, clock *session.Clock, userID string, now time.Time) (closed bool, err error) {
	staleDay, ok := clock.StaleSince(now)
	if !ok {
		return false, nil
	}

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "close-stale-day",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_id": userID, "stale_day": staleDay.Format("2006-01-02")},
		})
	}()

	end := time.Date(staleDay.Year(), staleDay.Month(), staleDay.Day(), 23, 59, 59, 0, time.UTC)
	n, err := s.ledger.CloseOpenAt(ctx, userID, staleDay, end, domain.StatusAutoClosed)
	if err != nil {
		return false, fmt.Errorf("closing stale day: %w", err)
	}
	clock.Clear()
	return n > 0, nil
}

// SyncDisplay snapshots the store-reported elapsed seconds for the running
// entry. When the entry turns out to be gone, the clock is emptied so the
// caller drops back to the idle view.
func (s *trackerService) SyncDisplay(ctx context.Context, clock *session.Clock, now time.Time) (session.Display, error) {
	if !clock.Open() {
		return session.Display{}, ErrNothingOpen
	}
	sec, err := s.ledger.OpenElapsedSec(ctx, clock.EntryID)
	if errors.Is(err, repository.ErrNotFound) {
		clock.Clear()
		return session.Display{}, fmt.Errorf("running entry vanished: %w", err)
	}
	if err != nil {
		return session.Display{}, fmt.Errorf("syncing display: %w", err)
	}
	return session.NewDisplay(sec, now), nil
}
