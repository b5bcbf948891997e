// internal/domain/dispatch/dto.go
package dispatch

type DispatchCatalogRequest struct {
	Selection       AudienceSelection `json:"selection" binding:"required"`
	CatalogID       string            `json:"catalog_id"`
	CatalogURL      string            `json:"catalog_url"`
	MessageTemplate string            `json:"message_template"`
}
