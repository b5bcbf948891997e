// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"fmt"

	"artisan-catalog-service/internal/domain/product"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListByArtisan retrieves all products for an artisan in insertion
// order, feeding catalog rendering.
func (r *ProductRepository) ListByArtisan(ctx context.Context, artisanID string) ([]product.Product, error) {
	query := `
		SELECT id, artisan_id, name, description, category, price, image_url, created_at, updated_at
		FROM products
		WHERE artisan_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID, &p.ArtisanID, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}
