package catalog

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"artisan-catalog-service/internal/domain/artisan"
	domain "artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/domain/product"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducts struct {
	products []product.Product
}

func (f *fakeProducts) ListByArtisan(ctx context.Context, artisanID string) ([]product.Product, error) {
	return f.products, nil
}

type fakeCatalogStore struct {
	created *domain.Catalog
	byID    map[string]*domain.Catalog
}

func (f *fakeCatalogStore) Create(ctx context.Context, c *domain.Catalog) error {
	c.CreatedAt = time.Now()
	f.created = c
	return nil
}

func (f *fakeCatalogStore) FindByID(ctx context.Context, id string) (*domain.Catalog, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeCatalogStore) ListByArtisan(ctx context.Context, artisanID string, limit int) ([]domain.Catalog, error) {
	var out []domain.Catalog
	for _, c := range f.byID {
		if c.ArtisanID == artisanID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeProfilesStore struct {
	artisan *artisan.Artisan
}

func (f *fakeProfilesStore) FindByID(ctx context.Context, id string) (*artisan.Artisan, error) {
	if f.artisan == nil {
		return nil, xerrors.ErrNotFound
	}
	return f.artisan, nil
}

type fakeUploader struct {
	key         string
	contentType string
	data        []byte
}

func (f *fakeUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.key = key
	f.data = data
	f.contentType = contentType
	return "https://cdn.example.com/" + key, nil
}

type fakeRenderer struct {
	gotName     string
	gotProducts []product.Product
	data        []byte
	contentType string
}

func (f *fakeRenderer) Render(artisanName string, products []product.Product) ([]byte, string, error) {
	f.gotName = artisanName
	f.gotProducts = products
	return f.data, f.contentType, nil
}

func testProducts() []product.Product {
	return []product.Product{
		{ID: "p1", ArtisanID: "a1", Name: "Clay Pot", Price: 450},
		{ID: "p2", ArtisanID: "a1", Name: "Woven Basket", Price: 320,
			Description: sql.NullString{String: "Hand woven cane basket", Valid: true}},
	}
}

func newCatalogService(products *fakeProducts, store *fakeCatalogStore, uploader *fakeUploader, renderer *fakeRenderer) *Service {
	return NewService(
		products,
		store,
		&fakeProfilesStore{artisan: &artisan.Artisan{ID: "a1", DisplayName: "Meera Crafts"}},
		uploader,
		map[domain.Format]Renderer{domain.FormatPDF: renderer},
		zap.NewNop(),
	)
}

func TestGenerateRendersUploadsAndRecords(t *testing.T) {
	products := &fakeProducts{products: testProducts()}
	store := &fakeCatalogStore{byID: map[string]*domain.Catalog{}}
	uploader := &fakeUploader{}
	renderer := &fakeRenderer{data: []byte("%PDF-1.4"), contentType: "application/pdf"}
	svc := newCatalogService(products, store, uploader, renderer)

	cat, err := svc.Generate(context.Background(), "a1", domain.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "Meera Crafts", renderer.gotName)
	assert.Len(t, renderer.gotProducts, 2)

	assert.Equal(t, []byte("%PDF-1.4"), uploader.data)
	assert.Equal(t, "application/pdf", uploader.contentType)
	assert.Contains(t, uploader.key, "catalogs/a1/")
	assert.Contains(t, uploader.key, ".pdf")

	require.NotNil(t, store.created)
	assert.Equal(t, "a1", cat.ArtisanID)
	assert.Equal(t, domain.FormatPDF, cat.Format)
	assert.Equal(t, 2, cat.ItemCount)
	assert.Equal(t, "https://cdn.example.com/"+uploader.key, cat.URL)
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	svc := newCatalogService(&fakeProducts{products: testProducts()},
		&fakeCatalogStore{}, &fakeUploader{}, &fakeRenderer{})

	_, err := svc.Generate(context.Background(), "a1", "docx")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestGenerateRejectsFormatWithoutRenderer(t *testing.T) {
	svc := newCatalogService(&fakeProducts{products: testProducts()},
		&fakeCatalogStore{}, &fakeUploader{}, &fakeRenderer{})

	// Valid format, but only the PDF renderer is registered.
	_, err := svc.Generate(context.Background(), "a1", domain.FormatImage)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestGenerateRejectsEmptyInventory(t *testing.T) {
	svc := newCatalogService(&fakeProducts{}, &fakeCatalogStore{}, &fakeUploader{}, &fakeRenderer{})

	_, err := svc.Generate(context.Background(), "a1", domain.FormatPDF)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestResolveReferencePrefersCatalogID(t *testing.T) {
	store := &fakeCatalogStore{byID: map[string]*domain.Catalog{
		"cat1": {ID: "cat1", ArtisanID: "a1", Format: domain.FormatPDF,
			URL: "https://cdn.example.com/cat1.pdf", ItemCount: 3, CreatedAt: time.Now()},
	}}
	svc := newCatalogService(&fakeProducts{}, store, &fakeUploader{}, &fakeRenderer{})

	ref, err := svc.ResolveReference(context.Background(), "a1", "cat1", "https://elsewhere.example.com/x.pdf")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/cat1.pdf", ref.URL)
	assert.Equal(t, 3, ref.ItemCount)
}

func TestResolveReferenceChecksOwnership(t *testing.T) {
	store := &fakeCatalogStore{byID: map[string]*domain.Catalog{
		"cat1": {ID: "cat1", ArtisanID: "someone-else"},
	}}
	svc := newCatalogService(&fakeProducts{}, store, &fakeUploader{}, &fakeRenderer{})

	_, err := svc.ResolveReference(context.Background(), "a1", "cat1", "")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestResolveReferenceFallsBackToURL(t *testing.T) {
	svc := newCatalogService(&fakeProducts{}, &fakeCatalogStore{byID: map[string]*domain.Catalog{}},
		&fakeUploader{}, &fakeRenderer{})

	ref, err := svc.ResolveReference(context.Background(), "a1", "", "https://cdn.example.com/manual.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/manual.pdf", ref.URL)

	_, err = svc.ResolveReference(context.Background(), "a1", "", "")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestPDFRendererProducesDocument(t *testing.T) {
	renderer := NewPDFRenderer()

	data, contentType, err := renderer.Render("Meera Crafts", testProducts())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTruncateNeverSplitsMultiByteRunes(t *testing.T) {
	long := strings.Repeat("हस्तकला", 40)

	got := truncate(long, 20)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 20, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	// Short strings pass through untouched.
	assert.Equal(t, "मिट्टी के बर्तन", truncate("मिट्टी के बर्तन", 160))
}

func TestImageRendererProducesPNG(t *testing.T) {
	renderer := NewImageRenderer("")

	data, contentType, err := renderer.Render("Meera Crafts", testProducts())
	require.NoError(t, err)

	assert.Equal(t, "image/png", contentType)
	require.True(t, len(data) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
