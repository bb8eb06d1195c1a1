package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-relay/internal/logger"
	"tg-relay/internal/service"
)

// onMessage routes a new message by chat type.
func (h *Handler) onMessage(ctx *th.Context, message telego.Message) error {
	// Skip if no sender information or sender is a bot
	if message.From == nil || message.From.IsBot {
		return nil
	}

	switch message.Chat.Type {
	case "private":
		return h.onPrivateMessage(ctx, message)
	case "group", "supergroup":
		h.router.HandleGroupMessage(ctx.Context(), inboundFromMessage(message))
		return nil
	}
	return nil
}

// onPrivateMessage handles direct chats: commands, admin replies and
// messages from ordinary users, which are relayed to every admin.
func (h *Handler) onPrivateMessage(ctx *th.Context, message telego.Message) error {
	userID := message.From.ID

	if strings.HasPrefix(message.Text, "/") {
		return h.handleCommand(ctx, message)
	}

	if !h.registry.IsAdmin(userID) {
		h.router.HandleUserMessage(ctx.Context(), inboundFromMessage(message))
		return nil
	}

	confirmation, err := h.dispatcher.DispatchReply(ctx.Context(), userID, contentFromMessage(message))
	if err != nil {
		return h.sendReplyError(ctx, userID, err)
	}

	_, err = h.transport.SendText(ctx.Context(), userID, confirmation, nil)
	return err
}

// sendReplyError maps a dispatch failure onto a user-facing message.
func (h *Handler) sendReplyError(ctx *th.Context, adminID int64, err error) error {
	var text string
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		text = "ℹ️ Tap a reply button on a relayed message first, then send your answer."
	case errors.Is(err, service.ErrGroupNotFound):
		text = "⚠️ The target group is no longer registered."
	case errors.Is(err, service.ErrUnsupportedContent):
		text = "❌ Unsupported message type. Send text, photo, document, video, voice or audio."
	case errors.Is(err, service.ErrTransport):
		text = fmt.Sprintf("❌ Delivery failed: %v", err)
	default:
		logger.Errorf("Unexpected dispatch error for admin %d: %v", adminID, err)
		text = "❌ Delivery failed."
	}

	_, sendErr := h.transport.SendText(ctx.Context(), adminID, text, nil)
	return sendErr
}

// onMyChatMember reacts to the bot being added to or removed from a group.
func (h *Handler) onMyChatMember(ctx *th.Context, update telego.Update) error {
	upd := update.MyChatMember
	if upd == nil {
		return nil
	}

	chat := upd.Chat
	if chat.Type != "group" && chat.Type != "supergroup" {
		return nil
	}

	switch upd.NewChatMember.MemberStatus() {
	case telego.MemberStatusMember, telego.MemberStatusAdministrator:
		return h.onBotJoinedGroup(ctx, chat)
	case telego.MemberStatusLeft, telego.MemberStatusBanned:
		if h.registry.RemoveGroup(chat.ID) {
			logger.Infof("Bot removed from group %s (%d), unregistered", chat.Title, chat.ID)
		}
	}
	return nil
}

// onBotJoinedGroup runs the admission gate and registers the group.
func (h *Handler) onBotJoinedGroup(ctx *th.Context, chat telego.Chat) error {
	if !h.registry.IsAdmitted(chat.ID) {
		logger.Warningf("Group %s (%d) is not admitted, leaving", chat.Title, chat.ID)
		if _, err := h.transport.SendText(ctx.Context(), chat.ID,
			"⚠️ This group is not allowed to use the relay. Leaving.", nil); err != nil {
			logger.Warningf("Failed to notify group %d before leaving: %v", chat.ID, err)
		}
		return h.transport.LeaveChat(ctx.Context(), chat.ID)
	}

	group := h.registry.RegisterGroup(chat.ID, chat.Title)

	if _, err := h.transport.SendText(ctx.Context(), chat.ID,
		"✅ Message forwarding is active\n"+
			"• Group messages are relayed to the administrators\n"+
			"• Use the buttons on relayed copies to reply", nil); err != nil {
		logger.Warningf("Failed to send welcome to group %d: %v", chat.ID, err)
	}

	notice := fmt.Sprintf("📌 New group joined:\nName: %s\nID: %d", group.Title, group.GroupID)
	for _, adminID := range h.registry.Admins() {
		if _, err := h.transport.SendText(ctx.Context(), adminID, notice, nil); err != nil {
			logger.Warningf("Failed to notify admin %d about group %d: %v", adminID, group.GroupID, err)
		}
	}
	return nil
}
