package domain

import "time"

type ID string

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Subscriber is a newsletter recipient. Records are never physically
// deleted; unsubscribing flips Status to inactive.
type Subscriber struct {
	ID           ID
	Email        string
	SubscribedAt time.Time
	Status       Status
}
