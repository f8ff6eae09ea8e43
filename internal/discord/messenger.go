package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/learnkeybot/internal/stream"
)

// Messenger delivers plain text through a Session
type Messenger struct {
	session Session
}

// NewMessenger creates a Messenger for session
func NewMessenger(session Session) *Messenger {
	return &Messenger{session: session}
}

// Send posts text as a new message in channelID
func (m *Messenger) Send(ctx context.Context, channelID, text string) (stream.MessageRef, error) {
	msg, err := m.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return stream.MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return stream.MessageRef{ChannelID: channelID, MessageID: msg.ID}, nil
}

// Edit replaces the content of an existing message
func (m *Messenger) Edit(ctx context.Context, ref stream.MessageRef, text string) error {
	if _, err := m.session.ChannelMessageEdit(ref.ChannelID, ref.MessageID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %s: %w", ref.MessageID, err)
	}
	return nil
}
