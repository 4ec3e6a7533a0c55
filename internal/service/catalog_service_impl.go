package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	activities    repository.ActivityRepo
	subactivities repository.SubactivityRepo
}

func NewCatalogService(activities repository.ActivityRepo, subactivities repository.SubactivityRepo) CatalogService {
	return &catalogService{activities: activities, subactivities: subactivities}
}

func (s *catalogService) CreateActivity(ctx context.Context, name, description string, displayOrder int) (*domain.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("activity name must not be empty")
	}
	a := &domain.Activity{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(description),
		DisplayOrder: displayOrder,
		Active:       true,
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *catalogService) UpdateActivity(ctx context.Context, a *domain.Activity) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity name must not be empty")
	}
	return s.activities.Update(ctx, a)
}

func (s *catalogService) DeactivateActivity(ctx context.Context, id string) error {
	return s.activities.Deactivate(ctx, id)
}

func (s *catalogService) ListActivities(ctx context.Context, includeInactive bool) ([]*domain.Activity, error) {
	if includeInactive {
		return s.activities.ListAll(ctx)
	}
	return s.activities.ListActive(ctx)
}

func (s *catalogService) ListForTracking(ctx context.Context) ([]*domain.Activity, error) {
	list, err := s.activities.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoActivities
	}
	return list, nil
}

func (s *catalogService) CreateSubactivity(ctx context.Context, activityID, name string, displayOrder int) (*domain.Subactivity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("subactivity name must not be empty")
	}
	// Parent must exist; a dangling FK error would be less readable.
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	sub := &domain.Subactivity{
		ID:           uuid.New().String(),
		ActivityID:   activityID,
		Name:         name,
		DisplayOrder: displayOrder,
		Active:       true,
	}
	if err := s.subactivities.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *catalogService) UpdateSubactivity(ctx context.Context, sub *domain.Subactivity) error {
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("subactivity name must not be empty")
	}
	return s.subactivities.Update(ctx, sub)
}

func (s *catalogService) DeactivateSubactivity(ctx context.Context, id string) error {
	return s.subactivities.Deactivate(ctx, id)
}

func (s *catalogService) ListSubactivities(ctx context.Context, activityID string) ([]*domain.Subactivity, error) {
	return s.subactivities.ListActiveByActivity(ctx, activityID)
}
