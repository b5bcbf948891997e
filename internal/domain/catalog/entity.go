// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql"
	"time"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatImage Format = "image"
)

// Valid reports whether the format is a supported catalog output.
func (f Format) Valid() bool {
	return f == FormatPDF || f == FormatImage
}

// Reference is the immutable value object identifying one generated
// catalog document. It is passed by value into a dispatch.
type Reference struct {
	URL         string    `json:"url"`
	Format      Format    `json:"format"`
	ItemCount   int       `json:"item_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Catalog is the persisted record of a generated catalog document.
type Catalog struct {
	ID          string    `json:"id" db:"id"`
	ArtisanID   string    `json:"artisan_id" db:"artisan_id"`
	Format      Format    `json:"format" db:"format"`
	URL         string    `json:"url" db:"url"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	ItemCount   int       `json:"item_count" db:"item_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Reference builds the dispatchable value object for this catalog.
func (c *Catalog) Reference() Reference {
	return Reference{
		URL:         c.URL,
		Format:      c.Format,
		ItemCount:   c.ItemCount,
		GeneratedAt: c.CreatedAt,
	}
}

type ShareStatus string

const (
	ShareStatusSent   ShareStatus = "sent"
	ShareStatusFailed ShareStatus = "failed"
)

// Share is one per-recipient record of a catalog dispatch, kept for the
// artisan's share history.
type Share struct {
	ID           string         `json:"id" db:"id"`
	ArtisanID    string         `json:"artisan_id" db:"artisan_id"`
	CustomerID   string         `json:"customer_id" db:"customer_id"`
	Phone        string         `json:"phone" db:"phone"`
	CatalogURL   string         `json:"catalog_url" db:"catalog_url"`
	Message      string         `json:"message" db:"message"`
	Status       ShareStatus    `json:"status" db:"status"`
	TransportRef sql.NullString `json:"transport_ref,omitempty" db:"transport_ref"`
	Error        sql.NullString `json:"error,omitempty" db:"error"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}
