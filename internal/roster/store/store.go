package store

import (
	"context"
	"errors"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable marks datastore connectivity failures, so operators can
	// tell "bad credentials" apart from "infrastructure down".
	ErrUnavailable = errors.New("store: datastore unavailable")
)

// Store is the root data access interface. Concrete drivers implement it.
// Sub-repositories keep concerns tidy; every component receives a Store by
// injection, there is no ambient singleton.
type Store interface {
	Accounts() Accounts
	Invitations() Invitations
	Players() Players
	Teams() Teams

	ApplyMigrations() error

	// WithTx executes fn within a transaction, committing when fn returns nil
	// and rolling back otherwise. Multi-step operations that must be atomic
	// (invitation redemption, registration) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store. It exposes the same repositories over
// the transaction plus explicit Commit/Rollback for callers that cannot use
// WithTx.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches the email case-insensitively; the stored
	// casing is preserved in the returned account.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByPlayerID returns the account linked to a roster player.
	GetAccountByPlayerID(ctx context.Context, playerID string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via
	// ULID). Returns ErrAlreadyExists on an email or player collision.
	CreateAccount(ctx context.Context, a domain.Account) error

	// TransitionAccountStatus moves an account from one status to another.
	// The update is guarded by the current status; ErrNotFound means no row
	// was in the expected state.
	TransitionAccountStatus(ctx context.Context, id string, from, to domain.Status) error

	// UpdateAccountPasswordHash overwrites the password hash and bumps
	// updated_at.
	UpdateAccountPasswordHash(ctx context.Context, id string, newHash string) error

	// ListAccountsByStatus returns accounts in the given status, oldest first.
	ListAccountsByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error)

	// IsEmpty reports whether there are no accounts yet.
	IsEmpty(ctx context.Context) (bool, error)
}

type Invitations interface {
	// CreateInvitation writes a new invitation (token_hash is the SHA-256
	// fingerprint of the opaque token).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash returns the invitation regardless of its
	// used/expired state so callers can report a precise failure.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetPendingInvitationByEmail returns an unused, unexpired invitation for
	// the email, if one exists.
	GetPendingInvitationByEmail(ctx context.Context, email string, now time.Time) (domain.Invitation, error)

	// MarkInvitationUsed stamps used_at, guarded by "used_at IS NULL" so two
	// concurrent redemptions cannot both succeed. ErrNotFound means the
	// invitation was already consumed (or never existed).
	MarkInvitationUsed(ctx context.Context, id string, usedAt time.Time) error

	// ListInvitations returns all invitations, newest first.
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)

	// DeleteInvitation removes an invitation by id.
	DeleteInvitation(ctx context.Context, id string) error

	// DeleteExpiredInvitations removes expired, unused invitations
	// (housekeeping). Used invitations are kept as an audit trail.
	DeleteExpiredInvitations(ctx context.Context, now time.Time) error
}

type Players interface {
	// GetPlayerByID returns a roster player by id.
	GetPlayerByID(ctx context.Context, id string) (domain.Player, error)

	// ListPlayers returns the full roster for registration matching.
	ListPlayers(ctx context.Context) ([]domain.Player, error)

	// CreatePlayer inserts a new roster player.
	CreatePlayer(ctx context.Context, p domain.Player) error
}

type Teams interface {
	// GetTeamByID returns a team by id.
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)

	// ListTeams returns all teams ordered by name.
	ListTeams(ctx context.Context) ([]domain.Team, error)

	// CreateTeam inserts a new team. Returns ErrAlreadyExists on a name
	// collision.
	CreateTeam(ctx context.Context, t domain.Team) error
}
