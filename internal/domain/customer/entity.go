// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Customer is a pre-saved contact in an artisan's directory. Phone is
// stored in E.164 form and is unique per artisan; ID is immutable once
// assigned.
type Customer struct {
	ID        string `json:"id" db:"id"`
	ArtisanID string `json:"artisan_id" db:"artisan_id"`

	Name  string `json:"name" db:"name"`
	Phone string `json:"phone" db:"phone"`

	Notes sql.NullString `json:"notes,omitempty" db:"notes"`
	Tags  pq.StringArray `json:"tags,omitempty" db:"tags"`

	// Contact analytics, bumped after each successful catalog share
	ShareCount   int          `json:"share_count" db:"share_count"`
	LastSharedAt sql.NullTime `json:"last_shared_at,omitempty" db:"last_shared_at"`

	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty" db:"deleted_at"`
}

// HasTag reports whether the customer carries the tag. Tags are
// case-sensitive exact strings.
func (c *Customer) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagGroup is a derived tag->count grouping over a customer snapshot.
// It is recomputed on every aggregation and never persisted.
type TagGroup struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
