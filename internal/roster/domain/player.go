package domain

import "time"

// Player is a roster entry. The surrounding application owns the full player
// record; this core needs only enough to link self-registered accounts.
type Player struct {
	ID        string
	FullName  string
	TeamID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team is the tenant boundary resources are scoped to.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
