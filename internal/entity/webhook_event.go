package entity

import "time"

const EventInviteeCreated = "invitee.created"

// WebhookEvent existe só durante uma chamada de Event Intake; não é persistido.
type WebhookEvent struct {
	Kind        string
	Email       string
	Name        string
	ScheduledAt *time.Time
}

func (e WebhookEvent) IsBooking() bool {
	return e.Kind == EventInviteeCreated
}
