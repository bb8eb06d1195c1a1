package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data CallbackData
	}{
		{name: "reply group", data: CallbackData{Op: CallbackReplyGroup, GroupID: -1001234567890}},
		{name: "reply message", data: CallbackData{Op: CallbackReplyMessage, GroupID: 100, UserID: 42, MessageID: 55}},
		{name: "reply user", data: CallbackData{Op: CallbackReplyUser, UserID: 42}},
		{name: "toggle", data: CallbackData{Op: CallbackToggle, GroupID: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.data.Encode()
			assert.LessOrEqual(t, len(encoded), 64, "must fit callback_data limit")

			decoded, err := ParseCallbackData(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestParseCallbackDataRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "too few parts", data: "v1:rg:100"},
		{name: "too many parts", data: "v1:rg:100:42:55:extra"},
		{name: "wrong version", data: "v2:rg:100:42:55"},
		{name: "unknown op", data: "v1:zz:100:42:55"},
		{name: "non numeric group", data: "v1:rg:abc:42:55"},
		{name: "non numeric user", data: "v1:rg:100:abc:55"},
		{name: "non numeric message", data: "v1:rg:100:42:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCallbackData(tt.data)
			assert.Error(t, err)
		})
	}
}
