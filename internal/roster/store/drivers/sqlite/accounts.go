package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, password_hash, display_name, role, status,
	team_id, player_id, invited_by, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a                          domain.Account
		role, status               string
		teamID, playerID, invitedBy sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &role, &status,
		&teamID, &playerID, &invitedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	if a.Role, err = domain.ParseRole(role); err != nil {
		return domain.Account{}, err
	}
	if a.Status, err = domain.ParseStatus(status); err != nil {
		return domain.Account{}, err
	}
	a.TeamID = stringPtr(teamID)
	a.PlayerID = stringPtr(playerID)
	a.InvitedBy = stringPtr(invitedBy)

	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	// The email column carries the NOCASE collation, so this comparison is
	// case-insensitive while the stored value keeps its original casing.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByPlayerID(ctx context.Context, playerID string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE player_id = ?`, playerID)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.DisplayName,
		a.Role.String(), string(a.Status),
		nullString(a.TeamID), nullString(a.PlayerID), nullString(a.InvitedBy),
		now, now,
	)
	return mapErr(err)
}

func (r *accountsRepo) TransitionAccountStatus(ctx context.Context, id string, from, to domain.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(to), time.Now().UTC(), id, string(from),
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

func (r *accountsRepo) UpdateAccountPasswordHash(ctx context.Context, id string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), id,
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

func (r *accountsRepo) ListAccountsByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE status = ? ORDER BY created_at ASC`,
		string(status),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, mapErr(err)
	}
	return count == 0, nil
}
