// internal/service/customer/customer.go
package customer

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"artisan-catalog-service/internal/domain/customer"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/pkg/phone"
	"artisan-catalog-service/internal/repository/postgres"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// CustomerService is the typed view over the customer store. It
// normalizes phone identifiers on the way in and enforces per-artisan
// phone uniqueness; it never mutates customers outside the update path.
type CustomerService struct {
	customerRepo       *postgres.CustomerRepository
	defaultCountryCode string
	logger             *zap.Logger
}

func NewCustomerService(customerRepo *postgres.CustomerRepository, defaultCountryCode string, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo:       customerRepo,
		defaultCountryCode: defaultCountryCode,
		logger:             logger,
	}
}

// CreateCustomer creates a new customer for an artisan.
func (s *CustomerService) CreateCustomer(ctx context.Context, artisanID string, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if req.Name == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "name is required")
	}

	normalized, err := phone.Normalize(req.Phone, s.defaultCountryCode)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	exists, err := s.customerRepo.ExistsByArtisanAndPhone(ctx, artisanID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("customer with phone number %s already exists: %w", normalized, xerrors.ErrConflict)
	}

	c := &customer.Customer{
		ID:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		ArtisanID: artisanID,
		Name:      req.Name,
		Phone:     normalized,
		Notes:     sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		Tags:      pq.StringArray(dedupeTags(req.Tags)),
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("customer_id", c.ID),
		zap.String("artisan_id", artisanID),
	)

	return c, nil
}

// GetCustomer retrieves a customer by ID, verifying ownership.
func (s *CustomerService) GetCustomer(ctx context.Context, artisanID, customerID string) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.ArtisanID != artisanID {
		return nil, xerrors.ErrUnauthorized
	}
	return c, nil
}

// ListCustomers retrieves customers for an artisan with filters.
func (s *CustomerService) ListCustomers(ctx context.Context, artisanID string, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	customers, total, err := s.customerRepo.List(ctx, artisanID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &customer.CustomerListResponse{
		Customers:  customers,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateCustomer updates a customer's name, phone, notes or tags.
func (s *CustomerService) UpdateCustomer(ctx context.Context, artisanID, customerID string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.ArtisanID != artisanID {
		return nil, xerrors.ErrUnauthorized
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "name cannot be empty")
		}
		c.Name = *req.Name
	}
	if req.Phone != nil {
		normalized, err := phone.Normalize(*req.Phone, s.defaultCountryCode)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		if normalized != c.Phone {
			exists, err := s.customerRepo.ExistsByArtisanAndPhone(ctx, artisanID, normalized)
			if err != nil {
				return nil, fmt.Errorf("failed to check phone existence: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("phone number already in use by another customer: %w", xerrors.ErrConflict)
			}
		}
		c.Phone = normalized
	}
	if req.Notes != nil {
		c.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}
	if req.Tags != nil {
		c.Tags = pq.StringArray(dedupeTags(req.Tags))
	}

	if err := s.customerRepo.Update(ctx, customerID, c); err != nil {
		s.logger.Error("failed to update customer", zap.Error(err))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info("customer updated",
		zap.String("customer_id", customerID),
		zap.String("artisan_id", artisanID),
	)

	return s.customerRepo.FindByID(ctx, customerID)
}

// DeleteCustomer soft deletes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, artisanID, customerID string) error {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.ArtisanID != artisanID {
		return xerrors.ErrUnauthorized
	}

	if err := s.customerRepo.SoftDelete(ctx, customerID); err != nil {
		s.logger.Error("failed to delete customer", zap.Error(err))
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted",
		zap.String("customer_id", customerID),
		zap.String("artisan_id", artisanID),
	)

	return nil
}

// AddTag adds a tag to a customer.
func (s *CustomerService) AddTag(ctx context.Context, artisanID, customerID, tag string) error {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.ArtisanID != artisanID {
		return xerrors.ErrUnauthorized
	}
	if c.HasTag(tag) {
		return fmt.Errorf("tag already exists: %w", xerrors.ErrConflict)
	}

	c.Tags = append(c.Tags, tag)
	return s.customerRepo.Update(ctx, customerID, c)
}

// RemoveTag removes a tag from a customer.
func (s *CustomerService) RemoveTag(ctx context.Context, artisanID, customerID, tag string) error {
	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.ArtisanID != artisanID {
		return xerrors.ErrUnauthorized
	}

	kept := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	c.Tags = pq.StringArray(kept)

	return s.customerRepo.Update(ctx, customerID, c)
}

// dedupeTags drops duplicate tags while preserving first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
