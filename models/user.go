package models

import (
	"time"

	"gorm.io/gorm"
)

// Credits granted to a freshly mirrored user so they can play before
// (stubbed) purchases exist. The daily scheduler tops players back up
// to the same floor.
const (
	SignupCreditGrant = 10
	DailyCreditFloor  = 10
)

// User is a local snapshot of identity data plus the game-owned state
// (credits, charity selection). Identity fields are populated by the
// sync worker from the profile service; credits and the charity
// selection are owned here and never overwritten by sync.
type User struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // the identity provider's UUID
	Username       string `gorm:"index;not null" json:"username"`
	Email          string `json:"email,omitempty"`

	Credits           int     `gorm:"not null;default:0;check:credits >= 0" json:"credits"`
	SelectedCharityID *string `gorm:"type:uuid;index" json:"selected_charity_id"` // nil until onboarding completes

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Soft delete so historical spins keep a resolvable owner
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
