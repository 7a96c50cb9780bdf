package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

// MinPasswordLength is the minimum accepted plaintext length.
const MinPasswordLength = 8

// dummyHash is a syntactically valid Argon2id hash that no password will
// ever verify against. Burned on unknown-email logins so the response time
// does not reveal whether the email exists.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// CredentialsService authenticates accounts and manages their passwords.
type CredentialsService struct {
	Store store.Store
}

// Verify checks an email and password pair and returns the account when the
// credentials are valid and the account is active. Pending and rejected
// accounts never authenticate, regardless of the password.
func (s *CredentialsService) Verify(ctx context.Context, email, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account. On a miss, burn a hash comparison anyway so
	//    unknown emails take as long as wrong passwords.
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			log.Warn("login attempt for unknown email")
			return domain.Account{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch account by email", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 2. Status gates come before the password check. A correct password
	//    on a pending account must not leak anything beyond the status.
	switch account.Status {
	case domain.StatusActive:
		// fall through to password verification
	case domain.StatusPending:
		_ = cryptox.VerifyPassword(password, dummyHash)
		log.Warn("login attempt on pending account", slog.String("account_id", account.ID))
		return domain.Account{}, ErrAccountPending
	case domain.StatusRejected:
		_ = cryptox.VerifyPassword(password, dummyHash)
		log.Warn("login attempt on rejected account", slog.String("account_id", account.ID))
		return domain.Account{}, ErrAccountRejected
	default:
		return domain.Account{}, ErrInvalidCredentials
	}

	// 3. Verify the password against the stored hash.
	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempt with wrong password", slog.String("account_id", account.ID))
			return domain.Account{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Debug("credentials verified",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	return account, nil
}

// SetPassword replaces an account's password hash.
func (s *CredentialsService) SetPassword(ctx context.Context, accountID, password string) error {
	log := slogx.FromContext(ctx)

	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	if err := s.Store.Accounts().UpdateAccountPasswordHash(ctx, accountID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		log.Error("failed to update password hash",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("password updated", slog.String("account_id", accountID))
	return nil
}
