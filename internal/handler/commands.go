package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-relay/internal/logger"
	"tg-relay/internal/service"
)

const helpText = "ℹ️ Group relay bot\n\n" +
	"Messages from registered groups and from private users are relayed " +
	"to the administrators. Tap a button on a relayed copy, then send " +
	"your answer to deliver it back.\n\n" +
	"Admin commands:\n" +
	"/groups — list registered groups\n" +
	"/toggle <group id> — pause or resume forwarding\n" +
	"/allow <group id> — put a group on the allow-list\n" +
	"/block <group id> — block a group and leave it\n" +
	"/addadmin <user id> — add an administrator\n" +
	"/send <group id> <text> — send a message to a group"

// handleCommand dispatches a private-chat slash command.
func (h *Handler) handleCommand(ctx *th.Context, message telego.Message) error {
	fields := strings.Fields(message.Text)
	if len(fields) == 0 {
		return nil
	}

	cmd := fields[0]
	// Commands may arrive as /cmd@BotName.
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	args := fields[1:]
	userID := message.From.ID

	if cmd == "/start" || cmd == "/help" {
		return h.reply(ctx, userID, helpText)
	}

	if !h.registry.IsAdmin(userID) {
		return h.reply(ctx, userID, "❌ Admin permission required")
	}

	switch cmd {
	case "/groups":
		return h.cmdListGroups(ctx, userID)
	case "/toggle":
		return h.cmdToggle(ctx, userID, args)
	case "/allow":
		return h.cmdAllow(ctx, userID, args)
	case "/block":
		return h.cmdBlock(ctx, userID, args)
	case "/addadmin":
		return h.cmdAddAdmin(ctx, userID, args)
	case "/send":
		return h.cmdSend(ctx, userID, args)
	default:
		return h.reply(ctx, userID, "Unknown command. See /help")
	}
}

func (h *Handler) cmdListGroups(ctx *th.Context, adminID int64) error {
	groups := h.registry.Groups()
	if len(groups) == 0 {
		return h.reply(ctx, adminID, "No groups registered yet")
	}

	var sb strings.Builder
	sb.WriteString("📋 Registered groups:\n\n")
	for _, g := range groups {
		state := "active"
		if !g.Active {
			state = "paused"
		}
		sb.WriteString(fmt.Sprintf("🏷️ %s\nID: <code>%d</code>\nState: %s\nLast activity: %s\n━━━━━━━━━━━━━━\n",
			g.Title, g.GroupID, state, g.LastActivity.Format("01-02 15:04")))
	}

	_, err := h.transport.SendText(ctx.Context(), adminID, sb.String(), &service.SendOptions{ParseMode: "HTML"})
	return err
}

func (h *Handler) cmdToggle(ctx *th.Context, adminID int64, args []string) error {
	id, err := parseIDArg(args, "/toggle <group id>")
	if err != nil {
		return h.reply(ctx, adminID, err.Error())
	}

	active, err := h.registry.ToggleActive(id)
	if err != nil {
		return h.reply(ctx, adminID, fmt.Sprintf("⚠️ Group %d is not registered", id))
	}

	if active {
		return h.reply(ctx, adminID, fmt.Sprintf("▶️ Forwarding resumed for group %d", id))
	}
	return h.reply(ctx, adminID, fmt.Sprintf("⏸ Forwarding paused for group %d", id))
}

func (h *Handler) cmdAllow(ctx *th.Context, adminID int64, args []string) error {
	id, err := parseIDArg(args, "/allow <group id>")
	if err != nil {
		return h.reply(ctx, adminID, err.Error())
	}

	h.registry.Allow(id)
	return h.reply(ctx, adminID, fmt.Sprintf("✅ Group %d is on the allow-list", id))
}

func (h *Handler) cmdBlock(ctx *th.Context, adminID int64, args []string) error {
	id, err := parseIDArg(args, "/block <group id>")
	if err != nil {
		return h.reply(ctx, adminID, err.Error())
	}

	group, present := h.registry.Block(id)
	if present {
		// Tell the group before leaving, best-effort.
		if _, err := h.transport.SendText(ctx.Context(), id,
			"🚫 This group has been blocked. Leaving.", nil); err != nil {
			logger.Warningf("Failed to notify blocked group %d: %v", id, err)
		}
		if err := h.transport.LeaveChat(ctx.Context(), id); err != nil {
			logger.Warningf("Failed to leave blocked group %d: %v", id, err)
		}
		return h.reply(ctx, adminID, fmt.Sprintf("✅ Group %s (%d) blocked and left", group.Title, id))
	}

	return h.reply(ctx, adminID, fmt.Sprintf("✅ Group %d blocked", id))
}

func (h *Handler) cmdAddAdmin(ctx *th.Context, adminID int64, args []string) error {
	id, err := parseIDArg(args, "/addadmin <user id>")
	if err != nil {
		return h.reply(ctx, adminID, err.Error())
	}

	if !h.registry.AddAdmin(id) {
		return h.reply(ctx, adminID, "ℹ️ That user is already an administrator")
	}
	return h.reply(ctx, adminID, fmt.Sprintf("✅ Added user %d as administrator", id))
}

func (h *Handler) cmdSend(ctx *th.Context, adminID int64, args []string) error {
	if len(args) < 2 {
		return h.reply(ctx, adminID, "Usage: /send <group id> <text>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return h.reply(ctx, adminID, "❌ Invalid group id\nUsage: /send <group id> <text>")
	}

	group, ok := h.registry.Group(id)
	if !ok {
		return h.reply(ctx, adminID, fmt.Sprintf("⚠️ Group %d is not registered", id))
	}

	text := strings.Join(args[1:], " ")
	if _, err := h.transport.SendText(ctx.Context(), id, text, nil); err != nil {
		logger.Warningf("Direct send to group %d failed: %v", id, err)
		return h.reply(ctx, adminID, fmt.Sprintf("❌ Delivery failed: %v", err))
	}

	return h.reply(ctx, adminID, fmt.Sprintf("✅ Sent to group: %s", group.Title))
}

func (h *Handler) reply(ctx *th.Context, chatID int64, text string) error {
	_, err := h.transport.SendText(ctx.Context(), chatID, text, nil)
	return err
}

// parseIDArg validates the single numeric id argument of a command.
func parseIDArg(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("Usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("❌ Invalid id %q\nUsage: %s", args[0], usage)
	}
	return id, nil
}
