package models

import "time"

// Relay record directions.
const (
	RelayDirectionInbound = "inbound" // group/user message fanned out to admins
	RelayDirectionReply   = "reply"   // admin reply delivered to a target
)

// Relay record statuses.
const (
	RelayStatusSuccess = "success"
	RelayStatusFailed  = "failed"
)

// RelayRecord is an audit row for one relay attempt. Records are
// write-only from the bot's point of view; nothing is loaded back into
// routing state at startup.
type RelayRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Direction string `gorm:"size:16;index"`
	GroupID   int64  `gorm:"index"`
	UserID    int64
	AdminID   int64
	MessageID int
	Kind      string `gorm:"size:16"`
	Status    string `gorm:"size:16"`
	Detail    string `gorm:"size:255"`
}
