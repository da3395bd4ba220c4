package models

import "time"

type Confession struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	Crush     string    `db:"crush"`
	Hearts    int64     `db:"hearts"`
	CreatedAt time.Time `db:"created_at"`
}

// PracticeClaim records that a device used its single proposal practice.
// DeviceHash is a keyed hash of the device id, never the id itself.
type PracticeClaim struct {
	DeviceHash string    `db:"device_hash"`
	ClaimedAt  time.Time `db:"claimed_at"`
}
