package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg-relay/internal/models"
	"tg-relay/internal/service"
)

// TelegramTransport implements service.Transport on top of telego.
type TelegramTransport struct {
	bot *telego.Bot
}

// NewTransport wraps a telego client as the relay transport.
func NewTransport(bot *telego.Bot) *TelegramTransport {
	return &TelegramTransport{bot: bot}
}

func (t *TelegramTransport) SendText(ctx context.Context, chatID int64, text string, opts *service.SendOptions) (int, error) {
	params := &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	}
	applyOptions(params, opts)

	msg, err := t.bot.SendMessage(ctx, params)
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (t *TelegramTransport) SendMedia(ctx context.Context, chatID int64, content models.Content, opts *service.SendOptions) (int, error) {
	dest := telego.ChatID{ID: chatID}
	file := tu.FileFromID(content.FileID)
	replyParams, markup, parseMode := optionParts(opts)

	var (
		msg *telego.Message
		err error
	)

	switch content.Kind {
	case models.ContentPhoto:
		msg, err = t.bot.SendPhoto(ctx, &telego.SendPhotoParams{
			ChatID:          dest,
			Photo:           file,
			Caption:         content.Caption,
			ParseMode:       parseMode,
			ReplyParameters: replyParams,
			ReplyMarkup:     markup,
		})
	case models.ContentDocument:
		msg, err = t.bot.SendDocument(ctx, &telego.SendDocumentParams{
			ChatID:          dest,
			Document:        file,
			Caption:         content.Caption,
			ParseMode:       parseMode,
			ReplyParameters: replyParams,
			ReplyMarkup:     markup,
		})
	case models.ContentVideo:
		msg, err = t.bot.SendVideo(ctx, &telego.SendVideoParams{
			ChatID:          dest,
			Video:           file,
			Caption:         content.Caption,
			ParseMode:       parseMode,
			ReplyParameters: replyParams,
			ReplyMarkup:     markup,
		})
	case models.ContentVoice:
		msg, err = t.bot.SendVoice(ctx, &telego.SendVoiceParams{
			ChatID:          dest,
			Voice:           file,
			Caption:         content.Caption,
			ParseMode:       parseMode,
			ReplyParameters: replyParams,
			ReplyMarkup:     markup,
		})
	case models.ContentAudio:
		msg, err = t.bot.SendAudio(ctx, &telego.SendAudioParams{
			ChatID:          dest,
			Audio:           file,
			Caption:         content.Caption,
			ParseMode:       parseMode,
			ReplyParameters: replyParams,
			ReplyMarkup:     markup,
		})
	default:
		return 0, fmt.Errorf("cannot send content kind %q", content.Kind)
	}

	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (t *TelegramTransport) ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error) {
	msg, err := t.bot.ForwardMessage(ctx, &telego.ForwardMessageParams{
		ChatID:     telego.ChatID{ID: toChatID},
		FromChatID: telego.ChatID{ID: fromChatID},
		MessageID:  messageID,
	})
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (t *TelegramTransport) LeaveChat(ctx context.Context, chatID int64) error {
	return t.bot.LeaveChat(ctx, &telego.LeaveChatParams{
		ChatID: telego.ChatID{ID: chatID},
	})
}

func applyOptions(params *telego.SendMessageParams, opts *service.SendOptions) {
	replyParams, markup, parseMode := optionParts(opts)
	params.ReplyParameters = replyParams
	params.ReplyMarkup = markup
	params.ParseMode = parseMode
}

func optionParts(opts *service.SendOptions) (*telego.ReplyParameters, telego.ReplyMarkup, string) {
	if opts == nil {
		return nil, nil, ""
	}

	var replyParams *telego.ReplyParameters
	if opts.ReplyTo > 0 {
		replyParams = &telego.ReplyParameters{MessageID: opts.ReplyTo}
	}

	// Return an untyped nil when there is no keyboard: a typed-nil
	// pointer in the ReplyMarkup interface field would serialize as
	// an explicit null.
	if kb := inlineKeyboard(opts.Buttons); kb != nil {
		return replyParams, kb, opts.ParseMode
	}
	return replyParams, nil, opts.ParseMode
}

func inlineKeyboard(rows [][]service.Button) *telego.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}

	keyboard := make([][]telego.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telego.InlineKeyboardButton{
				Text:         b.Text,
				CallbackData: b.Data,
			})
		}
		keyboard = append(keyboard, buttons)
	}

	return &telego.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
