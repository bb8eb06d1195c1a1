package models

import "time"

// Group is a chat whose messages are relayed to the admins.
type Group struct {
	GroupID      int64
	Title        string
	Active       bool
	LastActivity time.Time
}
