package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/mail"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/idx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

// DefaultInvitationTTL is how long an invitation stays redeemable.
const DefaultInvitationTTL = 48 * time.Hour

// InvitationService mints, lists, revokes and redeems invitations.
type InvitationService struct {
	Store     store.Store
	Mailer    mail.Mailer
	PublicURL string
	TTL       time.Duration
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInvitationTTL
}

// Issue mints a single-use invitation for an email and role, stores its
// fingerprint and emails the raw token link to the recipient. The raw token
// is also returned so callers can surface the link directly.
func (s *InvitationService) Issue(
	ctx context.Context,
	requester domain.AuthorizationClaims,
	email string,
	role domain.Role,
	teamID *string,
) (domain.Invitation, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Policy gate: only admins and super users invite.
	if !domain.CanManageInvitations(requester.Role) {
		log.Warn("invitation denied by policy",
			slog.String("requester_role", string(requester.Role)),
		)
		return domain.Invitation{}, "", ErrPolicyDenied
	}

	// 2. Validate the requested role. Super user accounts are never created
	//    through invitations.
	if !role.Invitable() {
		return domain.Invitation{}, "", ErrInvalidRole
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Invitation{}, "", ErrInvalidEmail
	}

	// 3. The team, when given, must exist.
	var teamName string
	if teamID != nil {
		team, err := s.Store.Teams().GetTeamByID(ctx, *teamID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Invitation{}, "", ErrTeamNotFound
			}
			log.Error("failed to fetch team", slog.Any("error", err))
			return domain.Invitation{}, "", err
		}
		teamName = team.Name
	}

	// 4. Generate the token and fingerprint before opening the transaction.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, "", err
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		Email:     email,
		Role:      role,
		TeamID:    teamID,
		CreatedBy: requester.AccountID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 5. Check uniqueness and insert atomically: an email with an account or
	//    an open invitation cannot receive a second one.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Accounts().GetAccountByEmail(ctx, email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if _, err := tx.Invitations().GetPendingInvitationByEmail(ctx, email, now); err == nil {
			return ErrPendingInvitationExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		return domain.Invitation{}, "", err
	}

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(role)),
		slog.String("created_by", requester.AccountID),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	// 6. Deliver the email after the commit. Delivery failure does not undo
	//    the invitation; the link can still be handed over out of band.
	if s.Mailer != nil {
		msg := mail.InvitationEmail{
			RecipientEmail: email,
			Role:           string(role),
			TeamName:       teamName,
			RedemptionLink: strings.TrimRight(s.PublicURL, "/") + "/invite/" + token,
			InviterName:    requester.DisplayName,
		}
		if err := s.Mailer.SendInvitation(ctx, msg); err != nil {
			log.Error("failed to send invitation mail",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
	}

	return inv, token, nil
}

// Redeem consumes an invitation token and creates the active account it
// promised. Each invitation creates at most one account, even under
// concurrent redemption of the same token.
func (s *InvitationService) Redeem(
	ctx context.Context,
	token string,
	password string,
	displayName string,
) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Account{}, ErrInvitationNotFound
	}
	if len(password) < MinPasswordLength {
		return domain.Account{}, ErrWeakPassword
	}

	// 1. Look the invitation up by fingerprint, in any state, so the caller
	//    gets a precise failure.
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("redemption attempted with unknown token")
			return domain.Account{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := time.Now().UTC()
	switch inv.StatusAt(now) {
	case domain.InvitationUsed:
		log.Warn("redemption of used invitation", slog.String("invitation_id", inv.ID))
		return domain.Account{}, ErrInvitationAlreadyUsed
	case domain.InvitationExpired:
		log.Warn("redemption of expired invitation", slog.String("invitation_id", inv.ID))
		return domain.Account{}, ErrInvitationExpired
	}

	// 2. Hash the password outside the transaction; argon2 is slow.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        inv.Email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         inv.Role,
		Status:       domain.StatusActive,
		TeamID:       inv.TeamID,
		InvitedBy:    &inv.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 3. Consume the invitation and create the account atomically. Marking
	//    used comes first: its guard on used_at is what makes two racing
	//    redemptions resolve to exactly one account.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().MarkInvitationUsed(ctx, inv.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationAlreadyUsed
			}
			return err
		}
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info("invitation redeemed",
		slog.String("invitation_id", inv.ID),
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	return account, nil
}

// List returns all invitations with their derived status, newest first.
func (s *InvitationService) List(ctx context.Context, requester domain.AuthorizationClaims) ([]domain.Invitation, error) {
	if !domain.CanManageInvitations(requester.Role) {
		return nil, ErrPolicyDenied
	}
	return s.Store.Invitations().ListInvitations(ctx)
}

// Revoke deletes an invitation that has not been redeemed yet. A used
// invitation stays on record.
func (s *InvitationService) Revoke(ctx context.Context, requester domain.AuthorizationClaims, invitationID string) error {
	log := slogx.FromContext(ctx)

	if !domain.CanManageInvitations(requester.Role) {
		return ErrPolicyDenied
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if inv.UsedAt != nil {
		return ErrInvitationAlreadyUsed
	}

	if err := s.Store.Invitations().DeleteInvitation(ctx, invitationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to delete invitation",
			slog.String("invitation_id", invitationID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("invitation revoked",
		slog.String("invitation_id", invitationID),
		slog.String("revoked_by", requester.AccountID),
	)
	return nil
}
