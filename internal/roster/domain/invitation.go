package domain

import "time"

// Invitation is a single-use, time-bounded capability to create exactly one
// account with a pre-set role and team. The raw token is a bearer secret and
// is never stored; only its SHA-256 fingerprint is.
type Invitation struct {
	ID        string
	TokenHash string
	Email     string // the address the new account will bind to
	Role      Role
	TeamID    *string
	CreatedBy string
	ExpiresAt time.Time
	UsedAt    *time.Time // nil means still redeemable
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvitationStatus is derived for display, never stored.
type InvitationStatus string

const (
	InvitationPending InvitationStatus = "Pending"
	InvitationExpired InvitationStatus = "Expired"
	InvitationUsed    InvitationStatus = "Used"
)

// StatusAt derives the display status at the given instant.
func (i Invitation) StatusAt(now time.Time) InvitationStatus {
	switch {
	case i.UsedAt != nil:
		return InvitationUsed
	case now.After(i.ExpiresAt):
		return InvitationExpired
	default:
		return InvitationPending
	}
}

// RedeemableAt reports whether the invitation can still be redeemed.
func (i Invitation) RedeemableAt(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
