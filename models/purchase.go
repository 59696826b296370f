package models

import "time"

const (
	// Payment processing is not wired up yet; every purchase stays
	// pending until a processor integration lands.
	PurchaseStatusPending = "pending"
)

// CreditPurchase records a player's intent to buy credits. No credits
// are granted while the payment flow is stubbed.
type CreditPurchase struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Credits     int       `gorm:"not null" json:"credits"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
