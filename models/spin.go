package models

import (
	"encoding/json"
	"time"
)

// Spin is the immutable record of one play. Rows are inserted inside
// the spin transaction and never updated or deleted afterwards.
type Spin struct {
	ID         string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string          `gorm:"type:uuid;index;not null" json:"user_id"`
	BetAmount  int             `gorm:"not null" json:"bet_amount"`
	ResultGrid json.RawMessage `gorm:"type:jsonb;not null" json:"result_grid"` // 5×5 symbol grid
	Won        bool            `gorm:"not null;default:false" json:"won"`

	// Pot value captured at the moment of the win, zero on a loss
	PotAmountWonCents int64 `gorm:"not null;default:0" json:"pot_amount_won"`

	// Charity the pot was directed to; set only on winning spins where
	// the player had completed onboarding
	CharityID *string `gorm:"type:uuid;index" json:"charity_id"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
