package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type adminService struct {
	campaigns repository.CampaignRepo
	roles     repository.RoleRepo
	users     repository.UserRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewAdminService(
	campaigns repository.CampaignRepo,
	roles repository.RoleRepo,
	users repository.UserRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AdminService {
	return &adminService{
		campaigns: campaigns,
		roles:     roles,
		users:     users,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *adminService) CreateCampaign(ctx context.Context, name string) (*domain.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("campaign name must not be empty")
	}
	c := &domain.Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *adminService) RenameCampaign(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("campaign name must not be empty")
	}
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Name = name
	return s.campaigns.Update(ctx, c)
}

// DeleteCampaign hard-deletes a campaign, but only when no user references
// it. The count and the delete run in one transaction so an assignment
// cannot slip in between.
func (s *adminService) DeleteCampaign(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCampaigns := repository.NewSQLiteCampaignRepo(tx)
		n, err := txCampaigns.CountUsers(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("campaign has %d assigned users: %w", n, repository.ErrInUse)
		}
		return txCampaigns.Delete(ctx, id)
	})
}

func (s *adminService) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

func (s *adminService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role name must not be empty")
	}
	r := &domain.Role{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.roles.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *adminService) RenameRole(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("role name must not be empty")
	}
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	r.Name = name
	return s.roles.Update(ctx, r)
}

func (s *adminService) DeleteRole(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRoles := repository.NewSQLiteRoleRepo(tx)
		n, err := txRoles.CountUsers(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("role has %d assigned users: %w", n, repository.ErrInUse)
		}
		return txRoles.Delete(ctx, id)
	})
}

func (s *adminService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// CreateUser hashes the password with bcrypt and inserts the account. The
// uniqueness check and the insert share a transaction.
func (s *adminService) CreateUser(ctx context.Context, username, password, fullName string, roleID, campaignID *string) (user *domain.User, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-user",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"username": username},
		})
	}()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	if len(password) < 4 {
		return nil, fmt.Errorf("password must be at least 4 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		RoleID:       roleID,
		CampaignID:   campaignID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		exists, err := txUsers.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("username '%s': %w", username, repository.ErrDuplicate)
		}
		return txUsers.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *adminService) UpdateUser(ctx context.Context, u *domain.User) error {
	if strings.TrimSpace(u.FullName) == "" {
		return fmt.Errorf("full name must not be empty")
	}
	return s.users.Update(ctx, u)
}

func (s *adminService) SetUserActive(ctx context.Context, id string, active bool) error {
	return s.users.SetActive(ctx, id, active)
}

func (s *adminService) ResetPassword(ctx context.Context, id, password string) error {
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	u.PasswordHash = string(hash)
	return s.users.UpdatePassword(ctx, u.ID, u.PasswordHash)
}

func (s *adminService) ListUsers(ctx context.Context) ([]*domain.UserDetail, error) {
	return s.users.List(ctx)
}
