package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
)

type playersRepo struct {
	db dbtx
}

func scanPlayer(row interface{ Scan(...any) error }) (domain.Player, error) {
	var (
		p      domain.Player
		teamID sql.NullString
	)
	err := row.Scan(&p.ID, &p.FullName, &teamID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Player{}, err
	}
	p.TeamID = stringPtr(teamID)
	return p, nil
}

func (r *playersRepo) GetPlayerByID(ctx context.Context, id string) (domain.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, full_name, team_id, created_at, updated_at FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err != nil {
		return domain.Player{}, mapErr(err)
	}
	return p, nil
}

func (r *playersRepo) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name, team_id, created_at, updated_at FROM players ORDER BY full_name ASC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playersRepo) CreatePlayer(ctx context.Context, p domain.Player) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (id, full_name, team_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.FullName, nullString(p.TeamID), now, now,
	)
	return mapErr(err)
}
