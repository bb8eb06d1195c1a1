package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-relay/internal/models"
)

func newControlsFixture() (*Registry, *PendingStore, *Controls) {
	registry := NewRegistry([]int64{1}, nil, nil)
	pending := NewPendingStore(0)
	return registry, pending, NewControls(registry, pending)
}

func TestControlsRejectNonAdminBeforeParse(t *testing.T) {
	_, pending, controls := newControlsFixture()

	// Even a garbage payload must not reach the parser for a stranger.
	_, err := controls.Activate(42, "not-a-payload")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.NotErrorIs(t, err, ErrValidation)

	_, ok := pending.Take(42)
	assert.False(t, ok)
}

func TestControlsReplyGroupArmsPending(t *testing.T) {
	registry, pending, controls := newControlsFixture()
	registry.RegisterGroup(100, "Ops")

	payload := models.CallbackData{Op: models.CallbackReplyGroup, GroupID: 100}.Encode()
	res, err := controls.Activate(1, payload)
	require.NoError(t, err)
	assert.Contains(t, res.Ack, "Ops")
	assert.True(t, res.RemoveKeyboard)

	action, ok := pending.Take(1)
	require.True(t, ok)
	assert.Equal(t, models.TargetGroup, action.Kind)
	assert.Equal(t, int64(100), action.GroupID)
}

func TestControlsReplyMessageCarriesTarget(t *testing.T) {
	registry, pending, controls := newControlsFixture()
	registry.RegisterGroup(100, "Ops")

	payload := models.CallbackData{
		Op:        models.CallbackReplyMessage,
		GroupID:   100,
		UserID:    42,
		MessageID: 55,
	}.Encode()
	res, err := controls.Activate(1, payload)
	require.NoError(t, err)
	assert.True(t, res.RemoveKeyboard)

	action, ok := pending.Take(1)
	require.True(t, ok)
	assert.Equal(t, models.TargetGroupMessage, action.Kind)
	assert.Equal(t, int64(100), action.GroupID)
	assert.Equal(t, int64(42), action.UserID)
	assert.Equal(t, 55, action.MessageID)
}

func TestControlsReplyUserNeedsNoGroup(t *testing.T) {
	_, pending, controls := newControlsFixture()

	payload := models.CallbackData{Op: models.CallbackReplyUser, UserID: 42}.Encode()
	res, err := controls.Activate(1, payload)
	require.NoError(t, err)
	assert.True(t, res.RemoveKeyboard)

	action, ok := pending.Take(1)
	require.True(t, ok)
	assert.Equal(t, models.TargetUser, action.Kind)
	assert.Equal(t, int64(42), action.UserID)
}

func TestControlsToggleFlipsActiveAndKeepsKeyboard(t *testing.T) {
	registry, _, controls := newControlsFixture()
	registry.RegisterGroup(100, "Ops")

	payload := models.CallbackData{Op: models.CallbackToggle, GroupID: 100}.Encode()

	res, err := controls.Activate(1, payload)
	require.NoError(t, err)
	assert.Equal(t, "Forwarding paused", res.Ack)
	assert.False(t, res.RemoveKeyboard, "toggle must stay pressable")

	res, err = controls.Activate(1, payload)
	require.NoError(t, err)
	assert.Equal(t, "Forwarding resumed", res.Ack)

	group, ok := registry.Group(100)
	require.True(t, ok)
	assert.True(t, group.Active)
}

func TestControlsMalformedPayload(t *testing.T) {
	_, pending, controls := newControlsFixture()

	for _, payload := range []string{"", "rg:100", "v1:rg:abc:0:0", "v0:rg:100:0:0"} {
		_, err := controls.Activate(1, payload)
		assert.ErrorIs(t, err, ErrValidation, "payload %q", payload)
	}

	_, ok := pending.Take(1)
	assert.False(t, ok, "no pending action may survive a rejected payload")
}

func TestControlsStaleButtonForGoneGroup(t *testing.T) {
	_, pending, controls := newControlsFixture()

	payload := models.CallbackData{Op: models.CallbackReplyGroup, GroupID: 100}.Encode()
	_, err := controls.Activate(1, payload)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, ok := pending.Take(1)
	assert.False(t, ok)
}

func TestControlsToggleGoneGroup(t *testing.T) {
	_, _, controls := newControlsFixture()

	payload := models.CallbackData{Op: models.CallbackToggle, GroupID: 100}.Encode()
	_, err := controls.Activate(1, payload)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
