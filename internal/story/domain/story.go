package domain

import "time"

type ID string

// Story is a user-submitted short story. CreatedAt is assigned by the
// repository at insert time and never mutated afterwards.
type Story struct {
	ID        ID
	Title     string
	Author    string
	Content   string
	Tags      []string
	CreatedAt time.Time
}
