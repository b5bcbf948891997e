// internal/repository/postgres/artisan_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"artisan-catalog-service/internal/domain/artisan"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArtisanRepository struct {
	db *pgxpool.Pool
}

func NewArtisanRepository(db *pgxpool.Pool) *ArtisanRepository {
	return &ArtisanRepository{db: db}
}

// FindByID retrieves an artisan profile.
func (r *ArtisanRepository) FindByID(ctx context.Context, id string) (*artisan.Artisan, error) {
	query := `
		SELECT id, display_name, email, phone, created_at, updated_at
		FROM artisans
		WHERE id = $1
	`

	var a artisan.Artisan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.DisplayName, &a.Email, &a.Phone, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find artisan: %w", err)
	}

	return &a, nil
}

// Upsert creates or updates an artisan profile. Identity comes from the
// auth token, so the row is created lazily on first profile write.
func (r *ArtisanRepository) Upsert(ctx context.Context, a *artisan.Artisan) error {
	query := `
		INSERT INTO artisans (id, display_name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    updated_at = $5
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.ID, a.DisplayName, a.Email, a.Phone, time.Now(),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert artisan: %w", err)
	}

	return nil
}
