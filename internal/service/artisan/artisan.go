// internal/service/artisan/artisan.go
package artisan

import (
	"context"

	domain "artisan-catalog-service/internal/domain/artisan"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"artisan-catalog-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type ArtisanService struct {
	artisanRepo *postgres.ArtisanRepository
	logger      *zap.Logger
}

func NewArtisanService(artisanRepo *postgres.ArtisanRepository, logger *zap.Logger) *ArtisanService {
	return &ArtisanService{
		artisanRepo: artisanRepo,
		logger:      logger,
	}
}

// GetProfile retrieves the artisan's display profile.
func (s *ArtisanService) GetProfile(ctx context.Context, artisanID string) (*domain.Artisan, error) {
	a, err := s.artisanRepo.FindByID(ctx, artisanID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateProfile creates or replaces the artisan's display profile. The
// row is keyed by the authenticated identity, so the first update also
// creates it.
func (s *ArtisanService) UpdateProfile(ctx context.Context, artisanID string, req domain.UpdateProfileRequest) (*domain.Artisan, error) {
	if req.DisplayName == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "display_name is required")
	}

	a := &domain.Artisan{
		ID:          artisanID,
		DisplayName: req.DisplayName,
	}
	a.Email.String = req.Email
	a.Email.Valid = req.Email != ""
	a.Phone.String = req.Phone
	a.Phone.Valid = req.Phone != ""

	if err := s.artisanRepo.Upsert(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("artisan profile updated", zap.String("artisan_id", artisanID))

	return a, nil
}
