// internal/service/catalog/renderer_image.go
package catalog

import (
	"bytes"
	"fmt"
	"image"

	"artisan-catalog-service/internal/domain/product"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

const (
	imgCanvasWidth  = 1200
	imgHeaderHeight = 150
	imgCardWidth    = 560
	imgCardHeight   = 340
	imgCardGap      = 27
	imgThumbHeight  = 220
)

// ImageRenderer renders a product catalog as a single shareable PNG,
// products laid out two to a row.
type ImageRenderer struct {
	fontPath string
	fetcher  *imageFetcher
}

// NewImageRenderer creates an image renderer. fontPath may be empty, in
// which case a built-in bitmap face is used.
func NewImageRenderer(fontPath string) *ImageRenderer {
	return &ImageRenderer{fontPath: fontPath, fetcher: newImageFetcher()}
}

func (r *ImageRenderer) Render(artisanName string, products []product.Product) ([]byte, string, error) {
	rows := (len(products) + 1) / 2
	height := imgHeaderHeight + rows*(imgCardHeight+imgCardGap) + imgCardGap

	dc := gg.NewContext(imgCanvasWidth, height)

	// Background
	dc.SetRGB255(248, 244, 238)
	dc.Clear()

	// Header band
	dc.SetRGB255(92, 64, 51)
	dc.DrawRectangle(0, 0, imgCanvasWidth, imgHeaderHeight)
	dc.Fill()

	r.setFont(dc, 42)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(artisanName, imgCanvasWidth/2, 58, 0.5, 0.5)
	r.setFont(dc, 24)
	dc.SetRGB255(232, 220, 210)
	dc.DrawStringAnchored("Product Catalog", imgCanvasWidth/2, 108, 0.5, 0.5)

	for i := range products {
		col := i % 2
		row := i / 2
		x := float64(imgCardGap + col*(imgCardWidth+imgCardGap))
		y := float64(imgHeaderHeight + imgCardGap + row*(imgCardHeight+imgCardGap))
		r.renderCard(dc, x, y, &products[i])
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), "image/png", nil
}

func (r *ImageRenderer) renderCard(dc *gg.Context, x, y float64, p *product.Product) {
	dc.SetRGB255(255, 255, 255)
	dc.DrawRoundedRectangle(x, y, imgCardWidth, imgCardHeight, 12)
	dc.Fill()

	if p.ImageURL.Valid && p.ImageURL.String != "" {
		if img, err := r.fetcher.Fetch(p.ImageURL.String); err == nil {
			dc.DrawImage(scaleToFit(img, imgCardWidth-24, imgThumbHeight), int(x)+12, int(y)+12)
		}
	}

	textY := y + imgThumbHeight + 44

	r.setFont(dc, 26)
	dc.SetRGB255(40, 40, 40)
	dc.DrawStringAnchored(truncate(p.Name, 34), x+20, textY, 0, 0.5)

	r.setFont(dc, 24)
	dc.SetRGB255(92, 64, 51)
	dc.DrawStringAnchored(fmt.Sprintf("Rs. %.2f", p.Price), x+20, textY+40, 0, 0.5)

	if p.Category.Valid && p.Category.String != "" {
		r.setFont(dc, 18)
		dc.SetRGB255(130, 130, 130)
		dc.DrawStringAnchored(p.Category.String, x+imgCardWidth-20, textY+40, 1, 0.5)
	}
}

func (r *ImageRenderer) setFont(dc *gg.Context, size float64) {
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, size); err == nil {
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// scaleToFit scales src down to fit the box, preserving aspect ratio.
func scaleToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
