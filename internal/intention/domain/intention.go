package domain

import "time"

type ID string

// PrayerIntention is immutable once stored. ID and CreatedAt are always
// assigned by the store.
type PrayerIntention struct {
	ID        ID
	Name      string
	Intention string
	CreatedAt time.Time
}

type NewIntention struct {
	Name      string
	Intention string
}
