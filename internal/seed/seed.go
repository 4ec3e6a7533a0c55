// Package seed installs the reference data a fresh installation needs:
// the three roles, a default campaign, the activity catalog including the
// end-of-shift sentinel and break activities, and an administrator account.
// Seeding is idempotent; existing rows are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminUsername is the bootstrap administrator account.
const DefaultAdminUsername = "admin"

type seedActivity struct {
	name        string
	description string
	order       int
	subs        []string
}

var defaultActivities = []seedActivity{
	{"Seguimiento", "Atención y seguimiento de casos", 10, []string{"Reclamo", "Consulta", "Retención"}},
	{"Bandeja de Correo", "Gestión del buzón compartido", 20, nil},
	{"Capacitación", "Formación y entrenamiento", 30, nil},
	{"Reunión", "Reuniones de equipo", 40, nil},
	{"Break Salida", "Inicio de pausa", 80, nil},
	{"Regreso Break", "Fin de pausa", 81, nil},
	{domain.SentinelActivityName, "Fin de jornada", 99, nil},
}

// Result reports what the run actually inserted.
type Result struct {
	Roles         int
	Campaigns     int
	Activities    int
	Subactivities int
	AdminCreated  bool
}

// Run seeds the database inside one transaction.
func Run(ctx context.Context, uow db.UnitOfWork, adminPassword string) (*Result, error) {
	res := &Result{}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		roles := repository.NewSQLiteRoleRepo(tx)
		campaigns := repository.NewSQLiteCampaignRepo(tx)
		activities := repository.NewSQLiteActivityRepo(tx)
		subactivities := repository.NewSQLiteSubactivityRepo(tx)
		users := repository.NewSQLiteUserRepo(tx)

		adminRoleID := ""
		for _, name := range []string{domain.RoleAdmin, domain.RoleSupervisor, domain.RoleAsesor} {
			role, err := roles.GetByName(ctx, name)
			if errors.Is(err, repository.ErrNotFound) {
				role = &domain.Role{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
				if err := roles.Create(ctx, role); err != nil {
					return fmt.Errorf("seeding role %s: %w", name, err)
				}
				res.Roles++
			} else if err != nil {
				return err
			}
			if name == domain.RoleAdmin {
				adminRoleID = role.ID
			}
		}

		if _, err := campaigns.GetByName(ctx, "General"); errors.Is(err, repository.ErrNotFound) {
			c := &domain.Campaign{ID: uuid.New().String(), Name: "General", CreatedAt: time.Now().UTC()}
			if err := campaigns.Create(ctx, c); err != nil {
				return fmt.Errorf("seeding campaign: %w", err)
			}
			res.Campaigns++
		} else if err != nil {
			return err
		}

		for _, sa := range defaultActivities {
			act, err := activities.GetByName(ctx, sa.name)
			if errors.Is(err, repository.ErrNotFound) {
				act = &domain.Activity{
					ID:           uuid.New().String(),
					Name:         sa.name,
					Description:  sa.description,
					DisplayOrder: sa.order,
					Active:       true,
				}
				if err := activities.Create(ctx, act); err != nil {
					return fmt.Errorf("seeding activity %s: %w", sa.name, err)
				}
				res.Activities++
			} else if err != nil {
				return err
			}
			for i, subName := range sa.subs {
				sub := &domain.Subactivity{
					ID:           uuid.New().String(),
					ActivityID:   act.ID,
					Name:         subName,
					DisplayOrder: (i + 1) * 10,
					Active:       true,
				}
				err := subactivities.Create(ctx, sub)
				if errors.Is(err, repository.ErrDuplicate) {
					continue
				}
				if err != nil {
					return fmt.Errorf("seeding subactivity %s: %w", subName, err)
				}
				res.Subactivities++
			}
		}

		exists, err := users.UsernameExists(ctx, DefaultAdminUsername)
		if err != nil {
			return err
		}
		if !exists {
			hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hashing admin password: %w", err)
			}
			now := time.Now().UTC()
			admin := &domain.User{
				ID:           uuid.New().String(),
				Username:     DefaultAdminUsername,
				PasswordHash: string(hash),
				FullName:     "Administrador",
				RoleID:       &adminRoleID,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := users.Create(ctx, admin); err != nil {
				return fmt.Errorf("seeding admin user: %w", err)
			}
			res.AdminCreated = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
