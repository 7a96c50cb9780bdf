package domain

import (
	"fmt"
	"time"
)

// Status is an account's lifecycle state. Only active accounts may
// authenticate. Pending and rejected are the self-registration approval
// states; both terminal transitions are one-way.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusActive, StatusPending, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown account status %q", s)
}

// Account is an authenticable identity.
type Account struct {
	ID           string
	Email        string // stored case-sensitively, matched case-insensitively
	PasswordHash string // argon2id PHC encoded
	DisplayName  string
	Role         Role
	Status       Status
	TeamID       *string // home team, the tenant boundary for coach edits
	PlayerID     *string // player-role accounts are scoped to one roster entry
	InvitedBy    *string // account that issued the invitation, if any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionView is the account as returned to callers: never the hash.
type SessionView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name,omitempty"`
	Role        Role    `json:"role"`
	TeamID      *string `json:"team_id,omitempty"`
	PlayerID    *string `json:"player_id,omitempty"`
}

// View projects the account into its caller-safe form.
func (a Account) View() SessionView {
	return SessionView{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        a.Role,
		TeamID:      a.TeamID,
		PlayerID:    a.PlayerID,
	}
}

// AuthorizationClaims are the identity facts a session token carries. They
// are a projection of the account at issuance time; role changes apply only
// on re-authentication.
type AuthorizationClaims struct {
	AccountID   string  `json:"account_id"`
	Role        Role    `json:"role"`
	TeamID      *string `json:"team_id,omitempty"`
	PlayerID    *string `json:"player_id,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
}
