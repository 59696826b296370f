package models

import "time"

// Donation is the append-only ledger of charitable transfers. One row
// is created per winning spin with a selected charity, in the same
// transaction as the Spin row, so a win can never exist without its
// donation.
type Donation struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CharityID   string    `gorm:"type:uuid;index;not null" json:"charity_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
