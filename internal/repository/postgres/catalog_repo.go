// internal/repository/postgres/catalog_repo.go
package postgres

import (
	"context"
	"fmt"

	"artisan-catalog-service/internal/domain/catalog"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Create inserts a generated catalog record.
func (r *CatalogRepository) Create(ctx context.Context, c *catalog.Catalog) error {
	query := `
		INSERT INTO catalogs (id, artisan_id, format, url, storage_path, item_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.ID, c.ArtisanID, c.Format, c.URL, c.StoragePath, c.ItemCount,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}

	return nil
}

// FindByID retrieves a catalog by ID.
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Catalog, error) {
	query := `
		SELECT id, artisan_id, format, url, storage_path, item_count, created_at
		FROM catalogs
		WHERE id = $1
	`

	var c catalog.Catalog
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ArtisanID, &c.Format, &c.URL, &c.StoragePath, &c.ItemCount, &c.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog: %w", err)
	}

	return &c, nil
}

// ListByArtisan retrieves an artisan's catalog history, newest first.
func (r *CatalogRepository) ListByArtisan(ctx context.Context, artisanID string, limit int) ([]catalog.Catalog, error) {
	query := `
		SELECT id, artisan_id, format, url, storage_path, item_count, created_at
		FROM catalogs
		WHERE artisan_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, artisanID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	defer rows.Close()

	var catalogs []catalog.Catalog
	for rows.Next() {
		var c catalog.Catalog
		err := rows.Scan(&c.ID, &c.ArtisanID, &c.Format, &c.URL, &c.StoragePath, &c.ItemCount, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		catalogs = append(catalogs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalogs: %w", err)
	}

	return catalogs, nil
}
