package service

import "errors"

// Error taxonomy surfaced at the handler boundary. Every operation maps
// failures onto one of these so the callers can pick a user-facing
// acknowledgement with errors.Is.
var (
	ErrPermissionDenied   = errors.New("admin permission required")
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupInactive      = errors.New("group inactive")
	ErrSessionExpired     = errors.New("no pending reply session")
	ErrValidation         = errors.New("invalid argument")
	ErrTransport          = errors.New("transport send failed")
	ErrUnsupportedContent = errors.New("unsupported message type")
)
