// internal/domain/artisan/entity.go
package artisan

import (
	"database/sql"
	"time"
)

// Artisan is the merchant who owns a customer directory and product
// inventory. Identity itself lives outside this service; this profile
// carries the display data used in catalogs and messages.
type Artisan struct {
	ID          string         `json:"id" db:"id"`
	DisplayName string         `json:"display_name" db:"display_name"`
	Email       sql.NullString `json:"email,omitempty" db:"email"`
	Phone       sql.NullString `json:"phone,omitempty" db:"phone"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
}
