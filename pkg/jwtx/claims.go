package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the validity window for session tokens. Claims are a
// projection of the account at issuance time; role changes take effect only
// on re-authentication, so this bounds the staleness window.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionClaims are the facts a session token carries. Resource handlers
// authorize against these without a store round-trip; the signature alone
// attests integrity.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Role the account holds ("admin", "coach", "super_user", "viewer",
	// "player"). Subject is the account ID.
	Role string `json:"role"`

	// TeamID is the account's home team, if any.
	TeamID *string `json:"team_id,omitempty"`

	// PlayerID scopes player-role accounts to exactly one roster entry.
	PlayerID *string `json:"player_id,omitempty"`

	// DisplayName is carried for UI convenience only, never for authorization.
	DisplayName string `json:"name,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(
	accountID, role string,
	teamID, playerID *string,
	displayName string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:        role,
		TeamID:      teamID,
		PlayerID:    playerID,
		DisplayName: displayName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value.
func (c *SessionClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *SessionClaims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
