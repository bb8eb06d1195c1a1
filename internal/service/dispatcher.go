package service

import (
	"context"
	"fmt"

	"tg-relay/internal/logger"
	"tg-relay/internal/models"
	"tg-relay/internal/storage"
)

// Dispatcher consumes an admin's pending action and delivers their
// free-form message to the recorded target.
type Dispatcher struct {
	registry  *Registry
	pending   *PendingStore
	transport Transport
	records   *storage.RelayRecordRepository
}

// NewDispatcher creates the reply dispatcher.
func NewDispatcher(registry *Registry, pending *PendingStore, transport Transport, records *storage.RelayRecordRepository) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		pending:   pending,
		transport: transport,
		records:   records,
	}
}

// DispatchReply routes the admin's message according to their pending
// action and returns a confirmation text. The pending action is
// consumed up front: any failure after that point requires the admin to
// re-arm via a control button.
func (d *Dispatcher) DispatchReply(ctx context.Context, adminID int64, content models.Content) (string, error) {
	action, ok := d.pending.Take(adminID)
	if !ok {
		return "", ErrSessionExpired
	}

	if content.Kind == models.ContentUnsupported {
		return "", ErrUnsupportedContent
	}

	switch action.Kind {
	case models.TargetUser:
		return d.sendToUser(ctx, adminID, action, content)
	case models.TargetGroup, models.TargetGroupMessage:
		return d.sendToGroup(ctx, adminID, action, content)
	default:
		return "", fmt.Errorf("%w: unknown target kind %d", ErrValidation, action.Kind)
	}
}

func (d *Dispatcher) sendToUser(ctx context.Context, adminID int64, action models.PendingAction, content models.Content) (string, error) {
	// User replies are never threaded.
	err := d.send(ctx, action.UserID, content, nil)
	if err != nil {
		d.record(adminID, action, content, models.RelayStatusFailed, err.Error())
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	d.record(adminID, action, content, models.RelayStatusSuccess, "")
	logger.Infof("Admin %d replied to user %d", adminID, action.UserID)
	return fmt.Sprintf("✅ Sent to user %d", action.UserID), nil
}

func (d *Dispatcher) sendToGroup(ctx context.Context, adminID int64, action models.PendingAction, content models.Content) (string, error) {
	group, ok := d.registry.Group(action.GroupID)
	if !ok {
		return "", ErrGroupNotFound
	}

	opts := &SendOptions{}
	if action.Kind == models.TargetGroupMessage {
		opts.ReplyTo = action.MessageID
	}

	if err := d.send(ctx, action.GroupID, content, opts); err != nil {
		d.record(adminID, action, content, models.RelayStatusFailed, err.Error())
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	d.record(adminID, action, content, models.RelayStatusSuccess, "")
	logger.Infof("Admin %d replied to group %d (threaded=%t)", adminID, action.GroupID, action.Kind == models.TargetGroupMessage)
	return fmt.Sprintf("✅ Sent to group: %s", group.Title), nil
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, content models.Content, opts *SendOptions) error {
	if content.Kind == models.ContentText {
		_, err := d.transport.SendText(ctx, chatID, content.Text, opts)
		return err
	}
	_, err := d.transport.SendMedia(ctx, chatID, content, opts)
	return err
}

func (d *Dispatcher) record(adminID int64, action models.PendingAction, content models.Content, status, detail string) {
	d.records.Insert(&models.RelayRecord{
		Direction: models.RelayDirectionReply,
		GroupID:   action.GroupID,
		UserID:    action.UserID,
		AdminID:   adminID,
		MessageID: action.MessageID,
		Kind:      content.Kind.String(),
		Status:    status,
		Detail:    detail,
	})
}
