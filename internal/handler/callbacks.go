package handler

import (
	"errors"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-relay/internal/logger"
	"tg-relay/internal/service"
)

// onCallbackQuery handles control button presses on relayed messages.
func (h *Handler) onCallbackQuery(ctx *th.Context, query telego.CallbackQuery) error {
	result, err := h.controls.Activate(query.From.ID, query.Data)
	if err != nil {
		return h.answer(ctx, query.ID, controlErrorText(err))
	}

	// Strip the keyboard so a consumed control cannot fire again
	// against stale state. The toggle control stays live.
	if result.RemoveKeyboard && query.Message != nil {
		_, editErr := h.bot.EditMessageReplyMarkup(ctx.Context(), &telego.EditMessageReplyMarkupParams{
			ChatID:    telego.ChatID{ID: query.Message.GetChat().ID},
			MessageID: query.Message.GetMessageID(),
		})
		if editErr != nil {
			logger.Warningf("Failed to remove keyboard for callback %s: %v", query.ID, editErr)
		}
	}

	return h.answer(ctx, query.ID, result.Ack)
}

func controlErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return "❌ Admin permission required"
	case errors.Is(err, service.ErrGroupNotFound):
		return "⚠️ Group is no longer registered"
	case errors.Is(err, service.ErrValidation):
		return "⚠️ This button is no longer valid"
	default:
		logger.Errorf("Unexpected control error: %v", err)
		return "⚠️ Operation failed"
	}
}

func (h *Handler) answer(ctx *th.Context, queryID, text string) error {
	return h.bot.AnswerCallbackQuery(ctx.Context(), &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	})
}
