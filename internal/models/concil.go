package models

import "time"

// ConcilGroup is a row of the concil table.
type ConcilGroup struct {
	ID     int64     `db:"id"`
	DValue time.Time `db:"dvalue"`
	UserID string    `db:"user_id"`
	Stamp  time.Time `db:"stamp"`
}

// ConcilMember is a row of the concil_ids table.
type ConcilMember struct {
	ConcilID int64  `db:"concil_id"`
	Type     string `db:"type"` // "E" entry, "B" bank line
	OtherID  int64  `db:"other_id"`
}
