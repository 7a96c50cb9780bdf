package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, token_hash, email, role, team_id, created_by,
	expires_at, used_at, created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv    domain.Invitation
		role   string
		teamID sql.NullString
		usedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &inv.Email, &role, &teamID, &inv.CreatedBy,
		&inv.ExpiresAt, &usedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}

	if inv.Role, err = domain.ParseRole(role); err != nil {
		return domain.Invitation{}, err
	}
	inv.TeamID = stringPtr(teamID)
	inv.UsedAt = timePtr(usedAt)

	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (`+invitationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Email, inv.Role.String(),
		nullString(inv.TeamID), inv.CreatedBy,
		inv.ExpiresAt.UTC(), nullTimeOf(inv.UsedAt), now, now,
	)
	return mapErr(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapErr(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapErr(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetPendingInvitationByEmail(ctx context.Context, email string, now time.Time) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE email = ? AND used_at IS NULL AND expires_at > ?
		 ORDER BY created_at DESC LIMIT 1`,
		email, now.UTC(),
	)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapErr(err)
	}
	return inv, nil
}

// MarkInvitationUsed is the at-most-once guard: the WHERE clause only
// matches while used_at is still null, so of two concurrent redemptions
// exactly one sees a row update.
func (r *invitationsRepo) MarkInvitationUsed(ctx context.Context, id string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET used_at = ?, updated_at = ?
		 WHERE id = ? AND used_at IS NULL`,
		usedAt.UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE used_at IS NULL AND expires_at <= ?`,
		now.UTC(),
	)
	return mapErr(err)
}
