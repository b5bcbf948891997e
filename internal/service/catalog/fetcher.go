// internal/service/catalog/fetcher.go
package catalog

import (
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // WebP decode support
)

// imageFetcher downloads product images for embedding in rendered
// catalogs. Fetch failures are tolerated upstream; a catalog without a
// picture beats no catalog.
type imageFetcher struct {
	client *http.Client
}

func newImageFetcher() *imageFetcher {
	return &imageFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *imageFetcher) Fetch(url string) (image.Image, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching product image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching product image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding product image: %w", err)
	}

	return img, nil
}
