// internal/service/catalog/service.go
package catalog

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"artisan-catalog-service/internal/domain/artisan"
	domain "artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/domain/product"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ProductSource lists the inventory a catalog is rendered from.
type ProductSource interface {
	ListByArtisan(ctx context.Context, artisanID string) ([]product.Product, error)
}

// CatalogStore persists generated catalog records.
type CatalogStore interface {
	Create(ctx context.Context, c *domain.Catalog) error
	FindByID(ctx context.Context, id string) (*domain.Catalog, error)
	ListByArtisan(ctx context.Context, artisanID string, limit int) ([]domain.Catalog, error)
}

// ProfileStore resolves the artisan name printed on the catalog.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*artisan.Artisan, error)
}

// Uploader stores rendered catalog bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Renderer produces catalog bytes in one output format.
type Renderer interface {
	Render(artisanName string, products []product.Product) ([]byte, string, error)
}

type Service struct {
	products  ProductSource
	catalogs  CatalogStore
	profiles  ProfileStore
	uploader  Uploader
	renderers map[domain.Format]Renderer
	logger    *zap.Logger
}

func NewService(products ProductSource, catalogs CatalogStore, profiles ProfileStore, uploader Uploader, renderers map[domain.Format]Renderer, logger *zap.Logger) *Service {
	return &Service{
		products:  products,
		catalogs:  catalogs,
		profiles:  profiles,
		uploader:  uploader,
		renderers: renderers,
		logger:    logger,
	}
}

// Generate renders the artisan's current inventory into a catalog
// document, uploads it and records it in catalog history.
func (s *Service) Generate(ctx context.Context, artisanID string, format domain.Format) (*domain.Catalog, error) {
	if !format.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, fmt.Sprintf("unsupported catalog format %q", format))
	}

	renderer, ok := s.renderers[format]
	if !ok {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, fmt.Sprintf("no renderer for format %q", format))
	}

	products, err := s.products.ListByArtisan(ctx, artisanID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list products")
	}
	if len(products) == 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "no products to include in catalog")
	}

	data, contentType, err := renderer.Render(s.artisanName(ctx, artisanID), products)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to render catalog")
	}

	key := fmt.Sprintf("catalogs/%s/%s.%s", artisanID, uuid.NewString(), extensionFor(format))
	url, err := s.uploader.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to upload catalog")
	}

	cat := &domain.Catalog{
		ID:          ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		ArtisanID:   artisanID,
		Format:      format,
		URL:         url,
		StoragePath: key,
		ItemCount:   len(products),
	}
	if err := s.catalogs.Create(ctx, cat); err != nil {
		return nil, xerrors.Wrap(err, "failed to record catalog")
	}

	s.logger.Info("catalog generated",
		zap.String("artisan_id", artisanID),
		zap.String("catalog_id", cat.ID),
		zap.String("format", string(format)),
		zap.Int("item_count", cat.ItemCount),
	)

	return cat, nil
}

// History lists previously generated catalogs, newest first.
func (s *Service) History(ctx context.Context, artisanID string, limit int) ([]domain.Catalog, error) {
	if limit < 1 || limit > 200 {
		limit = 20
	}
	catalogs, err := s.catalogs.ListByArtisan(ctx, artisanID, limit)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to list catalogs")
	}
	return catalogs, nil
}

// ResolveReference turns a dispatch request's catalog fields into the
// reference the executor attaches. A catalog ID wins over a raw URL;
// the ID must belong to the requesting artisan.
func (s *Service) ResolveReference(ctx context.Context, artisanID, catalogID, catalogURL string) (domain.Reference, error) {
	if catalogID != "" {
		cat, err := s.catalogs.FindByID(ctx, catalogID)
		if err != nil {
			return domain.Reference{}, xerrors.Wrap(err, "failed to find catalog")
		}
		if cat.ArtisanID != artisanID {
			return domain.Reference{}, xerrors.ErrUnauthorized
		}
		return cat.Reference(), nil
	}

	if catalogURL == "" {
		return domain.Reference{}, xerrors.Wrap(xerrors.ErrInvalidInput, "catalog_id or catalog_url is required")
	}

	return domain.Reference{
		URL:         catalogURL,
		Format:      domain.FormatPDF,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *Service) artisanName(ctx context.Context, artisanID string) string {
	a, err := s.profiles.FindByID(ctx, artisanID)
	if err != nil || a == nil || a.DisplayName == "" {
		return "Our Artisan"
	}
	return a.DisplayName
}

func extensionFor(format domain.Format) string {
	if format == domain.FormatImage {
		return "png"
	}
	return "pdf"
}
