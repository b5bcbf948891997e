// internal/handlers/catalog/catalog.go
package catalog

import (
	"net/http"
	"strconv"

	domain "artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/middleware"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/pkg/response"
	service "artisan-catalog-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.Service
}

func NewCatalogHandler(catalogService *service.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GenerateCatalog renders the artisan's inventory into a shareable
// catalog document.
func (h *CatalogHandler) GenerateCatalog(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	var req domain.GenerateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.catalogService.Generate(c.Request.Context(), artisanID, req.Format)
	if err != nil {
		status := http.StatusInternalServerError
		if xerrors.Is(err, xerrors.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		response.Error(c, status, "failed to generate catalog", err)
		return
	}

	response.Success(c, http.StatusCreated, "catalog generated", result)
}

// ListCatalogs retrieves the artisan's catalog history
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	catalogs, err := h.catalogService.History(c.Request.Context(), artisanID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list catalogs", err)
		return
	}

	response.Success(c, http.StatusOK, "catalogs retrieved", domain.CatalogListResponse{
		Catalogs: catalogs,
		Total:    len(catalogs),
	})
}
