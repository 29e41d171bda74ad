// internal/channel/discord.go
package channel

import (
	"context"

	"autoremind-core/internal/common/errors"
)

// DiscordInviteAdapter is not a send in the network sense: joining the bot's
// server is what subscribes a student, so the adapter only exposes the
// static invite URL. It implements Adapter for interface completeness.
type DiscordInviteAdapter struct {
	inviteURL string
}

func NewDiscordInviteAdapter(inviteURL string) (*DiscordInviteAdapter, error) {
	if inviteURL == "" {
		return nil, errors.NewConfigurationError("notifications.discord.invite_url is required")
	}
	return &DiscordInviteAdapter{inviteURL: inviteURL}, nil
}

func (a *DiscordInviteAdapter) Channel() string { return "discord" }

// InviteURL returns the static bot invite link.
func (a *DiscordInviteAdapter) InviteURL() string { return a.inviteURL }

// Send performs no I/O; the invite URL is returned as the message reference.
func (a *DiscordInviteAdapter) Send(_ context.Context, _, _, _ string) (*SendResult, error) {
	return &SendResult{Success: true, MessageID: a.inviteURL}, nil
}
