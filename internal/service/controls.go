package service

import (
	"fmt"

	"tg-relay/internal/models"
)

// ControlResult tells the transport glue how to acknowledge a button
// press: toast text, and whether the keyboard should be stripped from
// the message so the control cannot fire again against stale state.
type ControlResult struct {
	Ack            string
	RemoveKeyboard bool
}

// Controls turns callback-button activations into pending-action writes
// (or a direct toggle), validated against the registry.
type Controls struct {
	registry *Registry
	pending  *PendingStore
}

// NewControls creates the control-button core.
func NewControls(registry *Registry, pending *PendingStore) *Controls {
	return &Controls{registry: registry, pending: pending}
}

// Activate handles one button press by the given user. The admin check
// runs before the payload is even parsed.
func (c *Controls) Activate(userID int64, payload string) (ControlResult, error) {
	if !c.registry.IsAdmin(userID) {
		return ControlResult{}, ErrPermissionDenied
	}

	data, err := models.ParseCallbackData(payload)
	if err != nil {
		return ControlResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch data.Op {
	case models.CallbackReplyGroup:
		group, ok := c.registry.Group(data.GroupID)
		if !ok {
			return ControlResult{}, ErrGroupNotFound
		}
		c.pending.Set(userID, models.PendingAction{
			Kind:    models.TargetGroup,
			GroupID: data.GroupID,
		})
		return ControlResult{
			Ack:            fmt.Sprintf("Send your reply for %s", group.Title),
			RemoveKeyboard: true,
		}, nil

	case models.CallbackReplyMessage:
		group, ok := c.registry.Group(data.GroupID)
		if !ok {
			return ControlResult{}, ErrGroupNotFound
		}
		c.pending.Set(userID, models.PendingAction{
			Kind:      models.TargetGroupMessage,
			GroupID:   data.GroupID,
			UserID:    data.UserID,
			MessageID: data.MessageID,
		})
		return ControlResult{
			Ack:            fmt.Sprintf("Send your reply for %s", group.Title),
			RemoveKeyboard: true,
		}, nil

	case models.CallbackReplyUser:
		// Private users are not registry-backed; nothing to validate.
		c.pending.Set(userID, models.PendingAction{
			Kind:   models.TargetUser,
			UserID: data.UserID,
		})
		return ControlResult{
			Ack:            "Send your reply for the user",
			RemoveKeyboard: true,
		}, nil

	case models.CallbackToggle:
		active, err := c.registry.ToggleActive(data.GroupID)
		if err != nil {
			return ControlResult{}, err
		}
		ack := "Forwarding paused"
		if active {
			ack = "Forwarding resumed"
		}
		// The toggle button stays live so it can be flipped back.
		return ControlResult{Ack: ack}, nil
	}

	return ControlResult{}, fmt.Errorf("%w: unhandled op %q", ErrValidation, data.Op)
}
