package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/idx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

// RegistrationService handles player self-registration and the approval
// queue that gates it.
type RegistrationService struct {
	Store store.Store
}

// RegisterPlayer creates a pending player account, linked to the roster
// entry whose name fuzzily matches the claimed name. The account cannot
// authenticate until an admin approves it.
func (s *RegistrationService) RegisterPlayer(
	ctx context.Context,
	email string,
	password string,
	claimedName string,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	email = strings.TrimSpace(email)
	claimedName = strings.TrimSpace(claimedName)
	if email == "" {
		return domain.Account{}, ErrInvalidEmail
	}
	if claimedName == "" {
		return domain.Account{}, ErrNoPlayerMatch
	}
	if len(password) < MinPasswordLength {
		return domain.Account{}, ErrWeakPassword
	}

	// 2. Refuse emails that already have an account.
	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		log.Warn("registration attempted with registered email")
		return domain.Account{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Find the roster entry the claimed name refers to. The first match
	//    in roster order wins.
	players, err := s.Store.Players().ListPlayers(ctx)
	if err != nil {
		log.Error("failed to list players", slog.Any("error", err))
		return domain.Account{}, err
	}

	var matched *domain.Player
	for i := range players {
		if domain.MatchesRosterName(claimedName, players[i].FullName) {
			matched = &players[i]
			break
		}
	}
	if matched == nil {
		log.Warn("registration with no roster match")
		return domain.Account{}, ErrNoPlayerMatch
	}

	// 4. A roster entry backs at most one account.
	if _, err := s.Store.Accounts().GetAccountByPlayerID(ctx, matched.ID); err == nil {
		log.Warn("registration for already-linked player",
			slog.String("player_id", matched.ID),
		)
		return domain.Account{}, ErrAlreadyLinked
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check player link", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 5. Hash the password and create the pending account.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  matched.FullName,
		Role:         domain.RolePlayer,
		Status:       domain.StatusPending,
		TeamID:       matched.TeamID,
		PlayerID:     &matched.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrDuplicateEmail
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("player registration pending approval",
		slog.String("account_id", account.ID),
		slog.String("player_id", matched.ID),
	)
	return account, nil
}

// ListPending returns accounts awaiting approval, oldest first.
func (s *RegistrationService) ListPending(ctx context.Context, requester domain.AuthorizationClaims) ([]domain.Account, error) {
	if !domain.CanManageInvitations(requester.Role) {
		return nil, ErrPolicyDenied
	}
	return s.Store.Accounts().ListAccountsByStatus(ctx, domain.StatusPending)
}

// Approve activates a pending account. Only pending accounts can be
// approved; approving an already-decided account fails.
func (s *RegistrationService) Approve(ctx context.Context, requester domain.AuthorizationClaims, accountID string) error {
	return s.decide(ctx, requester, accountID, domain.StatusActive)
}

// Reject marks a pending account rejected. The decision is terminal; the
// person can register again with a new email if it was made in error.
func (s *RegistrationService) Reject(ctx context.Context, requester domain.AuthorizationClaims, accountID string) error {
	return s.decide(ctx, requester, accountID, domain.StatusRejected)
}

func (s *RegistrationService) decide(
	ctx context.Context,
	requester domain.AuthorizationClaims,
	accountID string,
	to domain.Status,
) error {
	log := slogx.FromContext(ctx)

	if !domain.CanManageInvitations(requester.Role) {
		log.Warn("approval decision denied",
			slog.String("requester_role", string(requester.Role)),
		)
		return ErrPolicyDenied
	}

	// The transition is guarded by the current status, so a concurrent
	// decision on the same account cannot apply twice.
	err := s.Store.Accounts().TransitionAccountStatus(ctx, accountID, domain.StatusPending, to)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Either the account does not exist or it is no longer pending.
			if _, lookupErr := s.Store.Accounts().GetAccountByID(ctx, accountID); lookupErr != nil {
				if errors.Is(lookupErr, store.ErrNotFound) {
					return ErrAccountNotFound
				}
				return lookupErr
			}
			return ErrInvalidStatusChange
		}
		log.Error("failed to transition account status",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("registration decided",
		slog.String("account_id", accountID),
		slog.String("status", string(to)),
		slog.String("decided_by", requester.AccountID),
	)
	return nil
}
