// internal/service/dispatch/service.go
package dispatch

import (
	"context"
	"time"

	"artisan-catalog-service/internal/domain/artisan"
	"artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/domain/customer"
	domain "artisan-catalog-service/internal/domain/dispatch"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/service/message"
	"artisan-catalog-service/internal/service/segment"

	"go.uber.org/zap"
)

// Directory is the customer store view the dispatch pipeline consumes.
type Directory interface {
	ListAll(ctx context.Context, artisanID string) ([]customer.Customer, error)
	FindByIDs(ctx context.Context, artisanID string, ids []string) ([]customer.Customer, error)
	MarkShared(ctx context.Context, artisanID string, customerIDs []string) error
}

// ProfileStore resolves the artisan profile used for the default
// message template.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*artisan.Artisan, error)
}

// ShareLog persists per-recipient dispatch records for share history.
type ShareLog interface {
	CreateBatch(ctx context.Context, shares []catalog.Share) error
	ListByArtisan(ctx context.Context, artisanID string, limit int) ([]catalog.Share, error)
}

// Limiter throttles dispatches per artisan.
type Limiter interface {
	AllowDispatch(ctx context.Context, artisanID string) (bool, int64, error)
}

// Service wires audience resolution, personalization and the executor
// into the two operations exposed to the API layer.
type Service struct {
	directory Directory
	profiles  ProfileStore
	shares    ShareLog
	executor  *Executor
	limiter   Limiter
	logger    *zap.Logger
}

func NewService(directory Directory, profiles ProfileStore, shares ShareLog, executor *Executor, limiter Limiter, logger *zap.Logger) *Service {
	return &Service{
		directory: directory,
		profiles:  profiles,
		shares:    shares,
		executor:  executor,
		limiter:   limiter,
		logger:    logger,
	}
}

// GetTagGroups computes the current tag groupings for an artisan's
// directory. Always recomputed from a fresh snapshot; a stale grouping
// would misstate audience sizes.
func (s *Service) GetTagGroups(ctx context.Context, artisanID string) ([]customer.TagGroup, error) {
	customers, err := s.directory.ListAll(ctx, artisanID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list customers")
	}
	return segment.Aggregate(customers), nil
}

// DispatchCatalog resolves the audience, personalizes the message per
// recipient and executes the bulk send, returning the full summary.
// All recipients failing is a valid summary, not an error; only
// whole-request problems (empty selection, rate limit) fail upfront.
func (s *Service) DispatchCatalog(ctx context.Context, artisanID string, sel domain.AudienceSelection, ref catalog.Reference, template string) (*domain.Summary, error) {
	if err := sel.Validate(); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	allowed, remaining, err := s.limiter.AllowDispatch(ctx, artisanID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to check dispatch rate limit")
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	snapshot, err := s.snapshot(ctx, artisanID, sel)
	if err != nil {
		return nil, err
	}

	recipients, err := segment.Resolve(sel, snapshot)
	if err != nil {
		return nil, err
	}

	job := domain.Job{
		Catalog:         ref,
		Recipients:      recipients,
		MessageTemplate: template,
		DefaultTemplate: message.DefaultTemplate(s.artisanName(ctx, artisanID)),
	}

	s.logger.Info("dispatching catalog",
		zap.String("artisan_id", artisanID),
		zap.String("selection_mode", string(sel.Mode)),
		zap.Int("recipients", len(recipients)),
		zap.Int64("dispatches_remaining", remaining),
	)

	summary, err := s.executor.Dispatch(ctx, job)
	if err != nil {
		return nil, err
	}

	s.recordOutcomes(ctx, artisanID, ref, job, summary)

	return summary, nil
}

// ShareHistory lists past per-recipient dispatch records.
func (s *Service) ShareHistory(ctx context.Context, artisanID string, limit int) ([]catalog.Share, error) {
	if limit < 1 || limit > 200 {
		limit = 20
	}
	shares, err := s.shares.ListByArtisan(ctx, artisanID, limit)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list shares")
	}
	return shares, nil
}

// snapshot fetches the customer set the resolver will work against.
// The ByIds path goes through the directory's id lookup; everything
// else uses the full listing.
func (s *Service) snapshot(ctx context.Context, artisanID string, sel domain.AudienceSelection) ([]customer.Customer, error) {
	if sel.Mode == domain.SelectByIDs {
		if len(sel.CustomerIDs) == 0 {
			return nil, xerrors.ErrEmptySelection
		}
		customers, err := s.directory.FindByIDs(ctx, artisanID, sel.CustomerIDs)
		if err != nil {
			return nil, xerrors.Wrap(err, "failed to fetch customers by id")
		}
		return customers, nil
	}

	customers, err := s.directory.ListAll(ctx, artisanID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list customers")
	}
	return customers, nil
}

// artisanName falls back to a generic display name when the profile is
// missing, matching how shares behave for artisans who never filled in
// their profile.
func (s *Service) artisanName(ctx context.Context, artisanID string) string {
	a, err := s.profiles.FindByID(ctx, artisanID)
	if err != nil || a == nil || a.DisplayName == "" {
		return "Our Artisan"
	}
	return a.DisplayName
}

// recordOutcomes persists share history and bumps contact analytics for
// successfully reached customers. Both are best-effort: a bookkeeping
// failure must not turn a completed dispatch into an error.
func (s *Service) recordOutcomes(ctx context.Context, artisanID string, ref catalog.Reference, job domain.Job, summary *domain.Summary) {
	shares := make([]catalog.Share, 0, len(summary.Outcomes))
	var sentIDs []string

	// Outcomes are index-aligned with job.Recipients.
	for i, out := range summary.Outcomes {
		share := catalog.Share{
			ArtisanID:  artisanID,
			CustomerID: out.CustomerID,
			Phone:      out.Phone,
			CatalogURL: ref.URL,
			Message:    message.Render(job.MessageTemplate, job.Recipients[i], job.DefaultTemplate),
			Status:     catalog.ShareStatusFailed,
			CreatedAt:  time.Now(),
		}
		if out.Status == domain.StatusSent {
			share.Status = catalog.ShareStatusSent
			share.TransportRef.String = out.TransportRef
			share.TransportRef.Valid = out.TransportRef != ""
			sentIDs = append(sentIDs, out.CustomerID)
		} else {
			share.Error.String = out.Error
			share.Error.Valid = out.Error != ""
		}
		shares = append(shares, share)
	}

	if err := s.shares.CreateBatch(ctx, shares); err != nil {
		s.logger.Error("failed to record share history", zap.Error(err))
	}

	if len(sentIDs) > 0 {
		if err := s.directory.MarkShared(ctx, artisanID, sentIDs); err != nil {
			s.logger.Error("failed to update customer share stats", zap.Error(err))
		}
	}
}
