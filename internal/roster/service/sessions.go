package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/pkg/jwtx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionService issues and reads signed session tokens. Tokens carry the
// account's identity facts at issuance time; a role change applies only when
// the account logs in again.
type SessionService struct {
	Signer   *jwtx.EdDSASigner
	Verifier jwtx.Verifier
	TTL      time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTTL
}

// Issue mints a session token for an account.
func (s *SessionService) Issue(ctx context.Context, account domain.Account, issuer string) (string, error) {
	log := slogx.FromContext(ctx)

	claims := jwtx.NewSessionClaims(
		account.ID,
		string(account.Role),
		account.TeamID,
		account.PlayerID,
		account.DisplayName,
		s.ttl(),
		issuer,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Debug("session issued",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)
	return token, nil
}

// ReadClaims verifies a session token and returns the authorization facts it
// carries. Verification is signature and expiry only; no store round-trip.
func (s *SessionService) ReadClaims(ctx context.Context, token string) (domain.AuthorizationClaims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session verification failed", slog.Any("error", err))
		return domain.AuthorizationClaims{}, ErrInvalidSession
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.AuthorizationClaims{}, ErrInvalidSession
	}

	return domain.AuthorizationClaims{
		AccountID:   claims.Subject,
		Role:        role,
		TeamID:      claims.TeamID,
		PlayerID:    claims.PlayerID,
		DisplayName: claims.DisplayName,
	}, nil
}
