// internal/domain/catalog/dto.go
package catalog

type GenerateCatalogRequest struct {
	Format Format `json:"format" binding:"required"`
}

type CatalogListResponse struct {
	Catalogs []Catalog `json:"catalogs"`
	Total    int       `json:"total"`
}

type ShareListResponse struct {
	Shares []Share `json:"shares"`
	Total  int     `json:"total"`
}
