package domain

import (
	"context"
	"time"
)

// Registration notice kinds published to the message bus.
const (
	NoticeRegistered  = "registration.registered"
	NoticeReactivated = "registration.reactivated"
	NoticeCancelled   = "registration.cancelled"
	NoticeCheckedIn   = "registration.checked_in"
)

// RegistrationNotice is published after a registration changes state.
type RegistrationNotice struct {
	Kind           string             `json:"kind"`
	RegistrationID string             `json:"registration_id"`
	EventID        string             `json:"event_id"`
	UserID         string             `json:"user_id"`
	Status         RegistrationStatus `json:"status"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// NoticePublisher sends registration notices to other services.
type NoticePublisher interface {
	Publish(ctx context.Context, n RegistrationNotice) error
}
