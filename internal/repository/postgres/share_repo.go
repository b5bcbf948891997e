// internal/repository/postgres/share_repo.go
package postgres

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"artisan-catalog-service/internal/domain/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type ShareRepository struct {
	db *pgxpool.Pool
}

func NewShareRepository(db *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{db: db}
}

// CreateBatch inserts one share record per dispatch outcome in a single
// round trip.
func (r *ShareRepository) CreateBatch(ctx context.Context, shares []catalog.Share) error {
	if len(shares) == 0 {
		return nil
	}

	query := `
		INSERT INTO whatsapp_shares (
			id, artisan_id, customer_id, phone, catalog_url,
			message, status, transport_ref, error, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for i := range shares {
		s := &shares[i]
		if s.ID == "" {
			s.ID = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		}
		batch.Queue(query,
			s.ID, s.ArtisanID, s.CustomerID, s.Phone, s.CatalogURL,
			s.Message, s.Status, s.TransportRef, s.Error, s.CreatedAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range shares {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert share record: %w", err)
		}
	}

	return nil
}

// ListByArtisan retrieves an artisan's share history, newest first.
func (r *ShareRepository) ListByArtisan(ctx context.Context, artisanID string, limit int) ([]catalog.Share, error) {
	query := `
		SELECT id, artisan_id, customer_id, phone, catalog_url,
		       message, status, transport_ref, error, created_at
		FROM whatsapp_shares
		WHERE artisan_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, artisanID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []catalog.Share
	for rows.Next() {
		var s catalog.Share
		err := rows.Scan(
			&s.ID, &s.ArtisanID, &s.CustomerID, &s.Phone, &s.CatalogURL,
			&s.Message, &s.Status, &s.TransportRef, &s.Error, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	return shares, nil
}
