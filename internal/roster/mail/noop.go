package mail

import (
	"context"
	"log/slog"
)

// LogMailer logs invitation mail instead of delivering it. Used in dev
// environments and tests where no SMTP server is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendInvitation(ctx context.Context, msg InvitationEmail) error {
	m.logger.InfoContext(ctx, "invitation mail (not delivered)",
		"to", msg.RecipientEmail,
		"role", msg.Role,
		"team", msg.TeamName,
		"link", msg.RedemptionLink,
	)
	return nil
}
