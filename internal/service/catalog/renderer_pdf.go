// internal/service/catalog/renderer_pdf.go
package catalog

import (
	"bytes"
	"fmt"
	"image/png"
	"unicode/utf8"

	"artisan-catalog-service/internal/domain/product"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a product catalog as an A4 PDF, one product row
// per entry with an optional thumbnail.
type PDFRenderer struct {
	fetcher *imageFetcher
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{fetcher: newImageFetcher()}
}

func (r *PDFRenderer) Render(artisanName string, products []product.Product) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(92, 64, 51)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(10, 12)
	pdf.CellFormat(190, 10, artisanName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(10)
	pdf.CellFormat(190, 8, "Product Catalog", "", 1, "C", false, 0, "")

	pdf.SetY(50)
	pdf.SetTextColor(40, 40, 40)

	for i := range products {
		r.renderProduct(pdf, i, &products[i])
	}

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(190, 6, fmt.Sprintf("%d products - reply to this message to place an order", len(products)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("writing PDF: %w", err)
	}

	return buf.Bytes(), "application/pdf", nil
}

func (r *PDFRenderer) renderProduct(pdf *gofpdf.Fpdf, idx int, p *product.Product) {
	const rowHeight = 36.0

	if pdf.GetY()+rowHeight > 270 {
		pdf.AddPage()
		pdf.SetY(20)
	}

	top := pdf.GetY()
	textX := 14.0

	if p.ImageURL.Valid && p.ImageURL.String != "" {
		if img, err := r.fetcher.Fetch(p.ImageURL.String); err == nil {
			var buf bytes.Buffer
			if png.Encode(&buf, img) == nil {
				name := fmt.Sprintf("product-%d", idx)
				opts := gofpdf.ImageOptions{ImageType: "PNG"}
				pdf.RegisterImageOptionsReader(name, opts, &buf)
				pdf.ImageOptions(name, 12, top, 28, 28, false, opts, 0, "")
				textX = 46
			}
		}
	}

	pdf.SetXY(textX, top)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, p.Name, "", 1, "L", false, 0, "")

	if p.Category.Valid && p.Category.String != "" {
		pdf.SetX(textX)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, p.Category.String, "", 1, "L", false, 0, "")
		pdf.SetTextColor(40, 40, 40)
	}

	if p.Description.Valid && p.Description.String != "" {
		pdf.SetX(textX)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(210-textX-14, 5, truncate(p.Description.String, 160), "", "L", false)
	}

	pdf.SetX(textX)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Rs. %.2f", p.Price), "", 1, "L", false, 0, "")

	bottom := pdf.GetY()
	if bottom < top+rowHeight {
		bottom = top + rowHeight
	}
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(12, bottom, 198, bottom)
	pdf.SetY(bottom + 4)
}

// truncate shortens s to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
