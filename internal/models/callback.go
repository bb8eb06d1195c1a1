package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CallbackOp tags a control button payload.
type CallbackOp string

const (
	// CallbackReplyGroup arms a reply to the whole group.
	CallbackReplyGroup CallbackOp = "rg"
	// CallbackReplyMessage arms a reply threaded under a group message.
	CallbackReplyMessage CallbackOp = "rm"
	// CallbackReplyUser arms a reply to a private user.
	CallbackReplyUser CallbackOp = "ru"
	// CallbackToggle flips a group's active flag.
	CallbackToggle CallbackOp = "tg"
)

// callbackVersion prefixes every payload so stale buttons from older
// encodings are rejected instead of misparsed.
const callbackVersion = "v1"

// CallbackData is the decoded form of a control button payload.
// Encoded as "v1:<op>:<group>:<user>:<msg>", which stays well inside
// Telegram's 64 byte callback_data limit.
type CallbackData struct {
	Op        CallbackOp
	GroupID   int64
	UserID    int64
	MessageID int
}

// Encode renders the payload string attached to an inline button.
func (c CallbackData) Encode() string {
	return fmt.Sprintf("%s:%s:%d:%d:%d", callbackVersion, c.Op, c.GroupID, c.UserID, c.MessageID)
}

// ParseCallbackData decodes a control button payload.
func ParseCallbackData(data string) (CallbackData, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 5 {
		return CallbackData{}, fmt.Errorf("invalid callback data format: %q", data)
	}
	if parts[0] != callbackVersion {
		return CallbackData{}, fmt.Errorf("unsupported callback version: %q", parts[0])
	}

	op := CallbackOp(parts[1])
	switch op {
	case CallbackReplyGroup, CallbackReplyMessage, CallbackReplyUser, CallbackToggle:
	default:
		return CallbackData{}, fmt.Errorf("unknown callback op: %q", parts[1])
	}

	groupID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return CallbackData{}, fmt.Errorf("invalid group id in callback data: %w", err)
	}
	userID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return CallbackData{}, fmt.Errorf("invalid user id in callback data: %w", err)
	}
	messageID, err := strconv.Atoi(parts[4])
	if err != nil {
		return CallbackData{}, fmt.Errorf("invalid message id in callback data: %w", err)
	}

	return CallbackData{Op: op, GroupID: groupID, UserID: userID, MessageID: messageID}, nil
}
