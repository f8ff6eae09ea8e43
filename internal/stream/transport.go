package stream

import (
	"context"
	"strings"
)

// MessageRef identifies a message that can later be edited
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Transport is the chat surface previews and final answers are delivered to
type Transport interface {
	Send(ctx context.Context, channelID, text string) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, text string) error
}

// IsNotModified reports whether err is the transport refusing a no-op edit.
// Such edits are treated as successful.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not modified")
}
