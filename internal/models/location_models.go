package models

import "time"

// LocationAll is the sentinel scope key meaning "no location filter".
const LocationAll = "all"

// Location represents one restaurant site. Code is the short key used
// to scope every aggregate (see analytics.Scope).
type Location struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code" binding:"required"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Timezone  string    `json:"timezone" db:"timezone"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
