package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/idx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

var ErrBootstrapNotConfigured = errors.New("bootstrap credentials not configured")

// BootstrapService seeds the first super user account on an empty store so
// a fresh deployment has someone who can invite everyone else.
type BootstrapService struct {
	Store store.Store

	// Pre-configured initial credentials, typically from the environment.
	Email       string
	Password    string
	DisplayName string
}

// EnsureSuperUser creates the configured super user if and only if no
// accounts exist yet. On an already-populated store it is a no-op.
func (s *BootstrapService) EnsureSuperUser(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	if s.Email == "" || s.Password == "" {
		log.Warn("store is empty but no bootstrap credentials are configured")
		return ErrBootstrapNotConfigured
	}
	if len(s.Password) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		log.Error("failed to hash bootstrap password", slog.Any("error", err))
		return err
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        s.Email,
		PasswordHash: hash,
		DisplayName:  s.DisplayName,
		Role:         domain.RoleSuperUser,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Guard against a concurrent bootstrap racing us: re-check inside the
	// transaction before inserting.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Accounts().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}
		return tx.Accounts().CreateAccount(ctx, account)
	})
	if err != nil {
		log.Error("failed to create bootstrap super user", slog.Any("error", err))
		return err
	}

	log.Info("bootstrap super user created", slog.String("account_id", account.ID))
	return nil
}
