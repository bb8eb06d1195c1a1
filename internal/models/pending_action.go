package models

import "time"

// TargetKind tells where an admin's next message goes.
type TargetKind int

const (
	// TargetGroup sends to a group without threading.
	TargetGroup TargetKind = iota
	// TargetGroupMessage sends to a group as a reply to a specific message.
	TargetGroupMessage
	// TargetUser sends to a private user.
	TargetUser
)

// PendingAction is a per-admin directive recorded when the admin taps a
// reply button. At most one exists per admin; a new one replaces it.
type PendingAction struct {
	Kind      TargetKind
	GroupID   int64
	UserID    int64
	MessageID int
	CreatedAt time.Time
}
