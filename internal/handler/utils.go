package handler

import (
	"github.com/mymmrac/telego"

	"tg-relay/internal/models"
	"tg-relay/internal/service"
)

// contentFromMessage classifies a transport message into the content
// union, once, at the boundary. Everything the relay does not carry
// (stickers, polls, locations, ...) lands in the Unsupported variant.
func contentFromMessage(message telego.Message) models.Content {
	switch {
	case message.Text != "":
		return models.Content{Kind: models.ContentText, Text: message.Text}
	case len(message.Photo) > 0:
		// Telegram lists photo sizes smallest first.
		largest := message.Photo[len(message.Photo)-1]
		return models.Content{Kind: models.ContentPhoto, FileID: largest.FileID, Caption: message.Caption}
	case message.Document != nil:
		return models.Content{Kind: models.ContentDocument, FileID: message.Document.FileID, Caption: message.Caption}
	case message.Video != nil:
		return models.Content{Kind: models.ContentVideo, FileID: message.Video.FileID, Caption: message.Caption}
	case message.Voice != nil:
		return models.Content{Kind: models.ContentVoice, FileID: message.Voice.FileID, Caption: message.Caption}
	case message.Audio != nil:
		return models.Content{Kind: models.ContentAudio, FileID: message.Audio.FileID, Caption: message.Caption}
	default:
		return models.Content{Kind: models.ContentUnsupported}
	}
}

// senderName picks a display name for a user.
func senderName(user *telego.User) string {
	if user == nil {
		return "unknown"
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}

func inboundFromMessage(message telego.Message) service.InboundMessage {
	var senderID int64
	var name string
	if message.From != nil {
		senderID = message.From.ID
		name = senderName(message.From)
	}
	return service.InboundMessage{
		ChatID:     message.Chat.ID,
		ChatTitle:  message.Chat.Title,
		MessageID:  message.MessageID,
		SenderID:   senderID,
		SenderName: name,
		Content:    contentFromMessage(message),
	}
}
