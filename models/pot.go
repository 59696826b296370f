package models

import "time"

// GlobalPotID is the primary key of the one and only pot row. The row
// is seeded at startup; every spin mutates it under a row lock.
const GlobalPotID = 1

// GlobalPot is the shared pot every losing stake feeds and every win
// empties. Exactly one row exists.
type GlobalPot struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	PotTotalCents int64     `gorm:"not null;default:0" json:"pot_total_cents"`
	UpdatedAt     time.Time `json:"last_updated" gorm:"autoUpdateTime"`
}

// TableName keeps the singular name — there is only ever one pot.
func (GlobalPot) TableName() string { return "global_pot" }
