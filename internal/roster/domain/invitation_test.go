package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvitationStatusDerivation(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	used := now.Add(-time.Hour)

	t.Run("pending while unexpired and unused", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now.Add(time.Hour)}
		require.Equal(t, InvitationPending, inv.StatusAt(now))
		require.True(t, inv.RedeemableAt(now))
	})

	t.Run("expired once past expires_at", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now.Add(-time.Minute)}
		require.Equal(t, InvitationExpired, inv.StatusAt(now))
		require.False(t, inv.RedeemableAt(now))
	})

	t.Run("used wins over expired", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now.Add(-time.Minute), UsedAt: &used}
		require.Equal(t, InvitationUsed, inv.StatusAt(now))
		require.False(t, inv.RedeemableAt(now))
	})
}
