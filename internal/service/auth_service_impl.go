package service

import (
	"context"
	"errors"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewAuthService(users repository.UserRepo, observers ...UseCaseObserver) AuthService {
	return &authService{users: users, observer: useCaseObserverOrNoop(observers)}
}

// Login verifies the credentials against the stored bcrypt hash. Unknown
// usernames and bad passwords both come back as ErrInvalidLogin; only an
// authenticated but deactivated account gets the more specific error.
func (s *authService) Login(ctx context.Context, username, password string) (user *domain.User, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "login",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"username": username},
		})
	}()

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}
	if !u.Active {
		return nil, ErrInactiveUser
	}
	return u, nil
}
