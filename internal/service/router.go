package service

import (
	"context"
	"fmt"

	"tg-relay/internal/logger"
	"tg-relay/internal/models"
	"tg-relay/internal/storage"
)

// InboundMessage is the transport-independent form of an arriving
// message, built once at the boundary.
type InboundMessage struct {
	ChatID     int64
	ChatTitle  string
	MessageID  int
	SenderID   int64
	SenderName string
	Content    models.Content
}

// Router classifies inbound messages and fans accepted ones out to
// every admin with the matching control buttons attached.
type Router struct {
	registry  *Registry
	transport Transport
	records   *storage.RelayRecordRepository
}

// NewRouter creates the inbound router.
func NewRouter(registry *Registry, transport Transport, records *storage.RelayRecordRepository) *Router {
	return &Router{
		registry:  registry,
		transport: transport,
		records:   records,
	}
}

// HandleGroupMessage relays a message that arrived in a group chat.
// Unknown and paused groups are dropped silently.
func (r *Router) HandleGroupMessage(ctx context.Context, msg InboundMessage) {
	group, ok := r.registry.TouchGroup(msg.ChatID)
	if !ok {
		logger.Warningf("Message from unregistered group %d, dropping", msg.ChatID)
		return
	}
	if !group.Active {
		logger.Debugf("Group %d is paused, dropping message %d", msg.ChatID, msg.MessageID)
		return
	}
	if msg.Content.Kind == models.ContentUnsupported {
		logger.Debugf("Unsupported content in group %d, message %d, dropping", msg.ChatID, msg.MessageID)
		return
	}

	buttons := r.groupControls(group, msg)

	for _, adminID := range r.registry.Admins() {
		if err := r.deliverGroupCopy(ctx, adminID, group, msg, buttons); err != nil {
			// Best-effort fan-out: one blocked admin must not stop the rest.
			logger.Warningf("Failed to relay group %d message %d to admin %d: %v",
				msg.ChatID, msg.MessageID, adminID, err)
			r.record(models.RelayDirectionInbound, group.GroupID, msg.SenderID, adminID, msg, models.RelayStatusFailed, err.Error())
			continue
		}
		r.record(models.RelayDirectionInbound, group.GroupID, msg.SenderID, adminID, msg, models.RelayStatusSuccess, "")
	}
}

// HandleUserMessage relays a private message from a non-admin user to
// every admin, independent of any group state.
func (r *Router) HandleUserMessage(ctx context.Context, msg InboundMessage) {
	if msg.Content.Kind == models.ContentUnsupported {
		logger.Debugf("Unsupported content from user %d, dropping", msg.SenderID)
		return
	}

	header := fmt.Sprintf("✉️ From %s (id %d)", msg.SenderName, msg.SenderID)
	buttons := [][]Button{{
		{
			Text: fmt.Sprintf("👤 Reply to %s", msg.SenderName),
			Data: models.CallbackData{Op: models.CallbackReplyUser, UserID: msg.SenderID}.Encode(),
		},
	}}

	for _, adminID := range r.registry.Admins() {
		var err error
		if msg.Content.Kind == models.ContentText {
			_, err = r.transport.SendText(ctx, adminID, header+"\n\n"+msg.Content.Text, &SendOptions{Buttons: buttons})
		} else {
			relayed := msg.Content
			relayed.Caption = captionWithHeader(header, msg.Content.Caption)
			_, err = r.transport.SendMedia(ctx, adminID, relayed, &SendOptions{Buttons: buttons})
		}
		if err != nil {
			logger.Warningf("Failed to relay user %d message to admin %d: %v", msg.SenderID, adminID, err)
			r.record(models.RelayDirectionInbound, 0, msg.SenderID, adminID, msg, models.RelayStatusFailed, err.Error())
			continue
		}
		r.record(models.RelayDirectionInbound, 0, msg.SenderID, adminID, msg, models.RelayStatusSuccess, "")
	}
}

// groupControls builds the control set attached to each admin's copy:
// reply-to-group always, reply-to-sender when the sender is known, and
// the activation toggle.
func (r *Router) groupControls(group models.Group, msg InboundMessage) [][]Button {
	rows := [][]Button{{
		{
			Text: "💬 Reply to group",
			Data: models.CallbackData{Op: models.CallbackReplyGroup, GroupID: group.GroupID}.Encode(),
		},
	}}

	if msg.SenderID != 0 {
		rows = append(rows, []Button{{
			Text: fmt.Sprintf("👤 Reply to %s", msg.SenderName),
			Data: models.CallbackData{
				Op:        models.CallbackReplyMessage,
				GroupID:   group.GroupID,
				UserID:    msg.SenderID,
				MessageID: msg.MessageID,
			}.Encode(),
		}})
	}

	rows = append(rows, []Button{{
		Text: "⏯ Toggle forwarding",
		Data: models.CallbackData{Op: models.CallbackToggle, GroupID: group.GroupID}.Encode(),
	}})

	return rows
}

// deliverGroupCopy sends one admin their copy of a group message. Text
// is natively forwarded with a companion caption message carrying the
// controls; media is re-sent by file id with the caption inline.
func (r *Router) deliverGroupCopy(ctx context.Context, adminID int64, group models.Group, msg InboundMessage, buttons [][]Button) error {
	header := fmt.Sprintf("From: %s", group.Title)

	if msg.Content.Kind == models.ContentText {
		forwardedID, err := r.transport.ForwardMessage(ctx, adminID, msg.ChatID, msg.MessageID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		if _, err := r.transport.SendText(ctx, adminID, header, &SendOptions{
			ReplyTo: forwardedID,
			Buttons: buttons,
		}); err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return nil
	}

	relayed := msg.Content
	relayed.Caption = captionWithHeader(header, msg.Content.Caption)
	if _, err := r.transport.SendMedia(ctx, adminID, relayed, &SendOptions{Buttons: buttons}); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

func (r *Router) record(direction string, groupID, userID, adminID int64, msg InboundMessage, status, detail string) {
	r.records.Insert(&models.RelayRecord{
		Direction: direction,
		GroupID:   groupID,
		UserID:    userID,
		AdminID:   adminID,
		MessageID: msg.MessageID,
		Kind:      msg.Content.Kind.String(),
		Status:    status,
		Detail:    detail,
	})
}

func captionWithHeader(header, caption string) string {
	if caption == "" {
		return header
	}
	return header + "\n" + caption
}
