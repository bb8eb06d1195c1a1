package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdmission(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []int64
		blocked  []int64
		groupID  int64
		admitted bool
	}{
		{name: "no lists admits everything", groupID: 100, admitted: true},
		{name: "allow-list admits member", allowed: []int64{100}, groupID: 100, admitted: true},
		{name: "allow-list rejects outsider", allowed: []int64{100}, groupID: 200, admitted: false},
		{name: "block-list rejects member", blocked: []int64{100}, groupID: 100, admitted: false},
		{name: "block-list alone admits others", blocked: []int64{100}, groupID: 200, admitted: true},
		{name: "blocked wins over allowed", allowed: []int64{100}, blocked: []int64{100}, groupID: 100, admitted: false},
		{name: "both lists, outsider rejected", allowed: []int64{100}, blocked: []int64{300}, groupID: 200, admitted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry([]int64{1}, tt.allowed, tt.blocked)
			assert.Equal(t, tt.admitted, r.IsAdmitted(tt.groupID))
		})
	}
}

func TestRegistryAllowBlockMutualExclusion(t *testing.T) {
	r := NewRegistry([]int64{1}, nil, nil)
	r.RegisterGroup(100, "Ops")

	r.Allow(100)
	assert.True(t, r.IsAdmitted(100))

	_, present := r.Block(100)
	assert.True(t, present, "block should evict the live group")
	assert.False(t, r.IsAdmitted(100))

	_, ok := r.Group(100)
	assert.False(t, ok, "blocked group must leave the registry")

	// Allowing again clears the block.
	r.Allow(100)
	assert.True(t, r.IsAdmitted(100))
}

func TestRegistryRegisterGroupIdempotent(t *testing.T) {
	r := NewRegistry([]int64{1}, nil, nil)

	first := r.RegisterGroup(100, "Ops")
	second := r.RegisterGroup(100, "Renamed")

	assert.Equal(t, first.Title, second.Title, "second register must be a no-op")
	assert.True(t, second.Active)
	assert.Len(t, r.Groups(), 1)
}

func TestRegistryToggleActive(t *testing.T) {
	r := NewRegistry([]int64{1}, nil, nil)
	r.RegisterGroup(100, "Ops")

	active, err := r.ToggleActive(100)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = r.ToggleActive(100)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = r.ToggleActive(999)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	err = r.SetActive(999, true)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestRegistryTouchGroup(t *testing.T) {
	r := NewRegistry([]int64{1}, nil, nil)
	before := r.RegisterGroup(100, "Ops")

	g, ok := r.TouchGroup(100)
	require.True(t, ok)
	assert.False(t, g.LastActivity.Before(before.LastActivity))

	_, ok = r.TouchGroup(999)
	assert.False(t, ok)
}

func TestRegistryAdmins(t *testing.T) {
	r := NewRegistry([]int64{3, 1}, nil, nil)

	assert.True(t, r.IsAdmin(1))
	assert.False(t, r.IsAdmin(2))

	assert.True(t, r.AddAdmin(2))
	assert.False(t, r.AddAdmin(2), "adding an existing admin is a no-op")

	assert.Equal(t, []int64{1, 2, 3}, r.Admins())
}

func TestRegistryRemoveGroup(t *testing.T) {
	r := NewRegistry([]int64{1}, nil, nil)
	r.RegisterGroup(100, "Ops")

	assert.True(t, r.RemoveGroup(100))
	assert.False(t, r.RemoveGroup(100))
	// Removal is not a block: the group may be re-admitted later.
	assert.True(t, r.IsAdmitted(100))
}
