// internal/domain/product/entity.go
package product

import (
	"database/sql"
	"time"
)

// Product is one item in an artisan's inventory, rendered into
// generated catalogs.
type Product struct {
	ID          string         `json:"id" db:"id"`
	ArtisanID   string         `json:"artisan_id" db:"artisan_id"`
	Name        string         `json:"name" db:"name"`
	Description sql.NullString `json:"description,omitempty" db:"description"`
	Category    sql.NullString `json:"category,omitempty" db:"category"`
	Price       float64        `json:"price" db:"price"`
	ImageURL    sql.NullString `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
