package service

import (
	"context"

	"tg-relay/internal/models"
)

// Button is one inline control attached to a relayed message.
type Button struct {
	Text string
	Data string
}

// SendOptions carries the optional parts of an outbound send.
type SendOptions struct {
	// ReplyTo threads the message under this message id when > 0.
	ReplyTo int
	// Buttons renders an inline keyboard, one slice per row.
	Buttons [][]Button
	// ParseMode is the transport text formatting mode ("" = plain).
	ParseMode string
}

// Transport is the outbound side of the chat transport. Implementations
// make one bounded request per call; the router relies on that to keep
// the per-admin fan-out isolated.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string, opts *SendOptions) (int, error)
	SendMedia(ctx context.Context, chatID int64, content models.Content, opts *SendOptions) (int, error)
	ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error)
	LeaveChat(ctx context.Context, chatID int64) error
}
