package domain

// Business validation constants
const (
	MaxTitleLength = 200
)

// Notification events sent to the notifier on session lifecycle changes
const (
	EventSessionRequested = "session.requested"
	EventSessionConfirmed = "session.confirmed"
	EventSessionCancelled = "session.cancelled"
)
