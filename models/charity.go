package models

import (
	"time"

	"gorm.io/gorm"
)

// Charity is a catalog entry players can direct their winnings to.
// Only approved charities are shown to players or accepted as a
// selection; the spin path treats the catalog as read-only.
type Charity struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"` // public R2 URL
	LogoKey     string `json:"-"`        // R2 object key, kept so a replaced logo can be deleted
	Approved    bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
