package notify

import (
	"context"
	"fmt"
	"log/slog"

	"devents/src-server/model"

	"github.com/bwmarrin/discordgo"
)

// Notifier announces newly created events to an outside audience. Failures
// are logged, never propagated: an announcement must not fail a persist.
type Notifier interface {
	EventCreated(ctx context.Context, event *model.Event)
}

// Discord posts event announcements to a single channel over the Discord REST
// API. No gateway connection is opened.
type Discord struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("NewDiscord: %w", err)
	}
	return &Discord{
		session:   session,
		channelID: channelID,
	}, nil
}

func (d *Discord) EventCreated(ctx context.Context, event *model.Event) {
	if _, err := d.session.ChannelMessageSendEmbed(
		d.channelID,
		event.ToDiscordEmbed(),
		discordgo.WithContext(ctx),
	); err != nil {
		slog.Error("can't announce event", "slug", event.Slug, "error", err)
	}
}

// Noop is used when Discord credentials are not configured.
type Noop struct{}

func (Noop) EventCreated(context.Context, *model.Event) {}
