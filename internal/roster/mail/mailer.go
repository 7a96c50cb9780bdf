package mail

import "context"

// InvitationEmail carries everything the invitation message needs. The
// redemption link embeds the raw token; it is a bearer secret and must only
// travel to the invited address.
type InvitationEmail struct {
	RecipientEmail string
	Role           string
	TeamName       string // empty when the invitation has no team
	RedemptionLink string
	InviterName    string
}

// Mailer is the outbound email collaborator. Delivery is best-effort: the
// invitation flow logs failures but never rolls back invitation creation.
type Mailer interface {
	SendInvitation(ctx context.Context, msg InvitationEmail) error
}
