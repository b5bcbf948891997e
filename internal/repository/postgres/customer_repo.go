// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"artisan-catalog-service/internal/domain/customer"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `
	id, artisan_id, name, phone, notes, tags,
	share_count, last_shared_at, created_at, updated_at, deleted_at
`

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.ArtisanID, &c.Name, &c.Phone, &c.Notes, &c.Tags,
		&c.ShareCount, &c.LastSharedAt, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &c, nil
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, artisan_id, name, phone, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.ID, c.ArtisanID, c.Name, c.Phone, c.Notes, c.Tags,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL`
	return scanCustomer(r.db.QueryRow(ctx, query, id))
}

// ExistsByArtisanAndPhone checks whether a non-deleted customer with
// this normalized phone already exists for the artisan.
func (r *CustomerRepository) ExistsByArtisanAndPhone(ctx context.Context, artisanID, phone string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE artisan_id = $1 AND phone = $2 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, artisanID, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check phone existence: %w", err)
	}
	return exists, nil
}

// List retrieves customers for an artisan with optional filters,
// ordered by creation time so snapshots are stable between calls.
func (r *CustomerRepository) List(ctx context.Context, artisanID string, filters *customer.CustomerListFilters) ([]customer.Customer, int64, error) {
	where := `artisan_id = $1 AND deleted_at IS NULL`
	args := []interface{}{artisanID}

	if filters.Tag != "" {
		args = append(args, filters.Tag)
		where += fmt.Sprintf(` AND $%d = ANY(tags)`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR phone ILIKE $%d)`, len(args), len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + where + ` ORDER BY created_at ASC, id ASC`
	if filters.PageSize > 0 {
		args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// ListAll returns the artisan's full directory snapshot in stable
// order, used for tag aggregation and audience resolution.
func (r *CustomerRepository) ListAll(ctx context.Context, artisanID string) ([]customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE artisan_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, artisanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// FindByIDs retrieves the artisan's customers matching any of the ids.
// Unknown ids are simply absent from the result.
func (r *CustomerRepository) FindByIDs(ctx context.Context, artisanID string, ids []string) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE artisan_id = $1 AND id = ANY($2) AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, artisanID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers by id: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// Update updates a customer's editable fields.
func (r *CustomerRepository) Update(ctx context.Context, id string, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, notes = $3, tags = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, c.Name, c.Phone, c.Notes, c.Tags, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// MarkShared bumps contact analytics for customers who were
// successfully sent a catalog.
func (r *CustomerRepository) MarkShared(ctx context.Context, artisanID string, customerIDs []string) error {
	if len(customerIDs) == 0 {
		return nil
	}

	query := `
		UPDATE customers
		SET share_count = share_count + 1, last_shared_at = $1, updated_at = $1
		WHERE artisan_id = $2 AND id = ANY($3) AND deleted_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, time.Now(), artisanID, pq.Array(customerIDs)); err != nil {
		return fmt.Errorf("failed to update share stats: %w", err)
	}
	return nil
}

// SoftDelete soft deletes a customer.
func (r *CustomerRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE customers SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func collectCustomers(rows pgx.Rows) ([]customer.Customer, error) {
	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		err := rows.Scan(
			&c.ID, &c.ArtisanID, &c.Name, &c.Phone, &c.Notes, &c.Tags,
			&c.ShareCount, &c.LastSharedAt, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return customers, nil
}
