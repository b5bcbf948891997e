// internal/handlers/dispatch/dispatch.go
package dispatch

import (
	"net/http"
	"strconv"

	domain "artisan-catalog-service/internal/domain/dispatch"
	"artisan-catalog-service/internal/middleware"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/pkg/phone"
	"artisan-catalog-service/internal/pkg/response"
	catalogsvc "artisan-catalog-service/internal/service/catalog"
	service "artisan-catalog-service/internal/service/dispatch"

	"github.com/gin-gonic/gin"
)

type DispatchHandler struct {
	dispatchService *service.Service
	catalogService  *catalogsvc.Service
}

func NewDispatchHandler(dispatchService *service.Service, catalogService *catalogsvc.Service) *DispatchHandler {
	return &DispatchHandler{
		dispatchService: dispatchService,
		catalogService:  catalogService,
	}
}

// GetTagGroups returns the artisan's current tag groupings with
// distinct customer counts.
func (h *DispatchHandler) GetTagGroups(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	groups, err := h.dispatchService.GetTagGroups(c.Request.Context(), artisanID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to compute tag groups", err)
		return
	}

	response.Success(c, http.StatusOK, "tag groups retrieved", gin.H{
		"groups": groups,
		"count":  len(groups),
	})
}

// DispatchCatalog resolves the selected audience and sends the catalog
// to every recipient, returning the per-recipient summary.
func (h *DispatchHandler) DispatchCatalog(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	var req domain.DispatchCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ref, err := h.catalogService.ResolveReference(c.Request.Context(), artisanID, req.CatalogID, req.CatalogURL)
	if err != nil {
		response.Error(c, statusFor(err), "failed to resolve catalog", err)
		return
	}

	summary, err := h.dispatchService.DispatchCatalog(c.Request.Context(), artisanID, req.Selection, ref, req.MessageTemplate)
	if err != nil {
		response.Error(c, statusFor(err), "failed to dispatch catalog", err)
		return
	}

	response.Success(c, http.StatusOK, "catalog dispatched", summary)
}

// ShareHistory lists past per-recipient dispatch records with masked
// phone numbers.
func (h *DispatchHandler) ShareHistory(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	shares, err := h.dispatchService.ShareHistory(c.Request.Context(), artisanID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list shares", err)
		return
	}

	// Phone numbers are masked on the way out; share history is a
	// review surface, not a contact export.
	for i := range shares {
		shares[i].Phone = phone.Mask(shares[i].Phone)
	}

	response.Success(c, http.StatusOK, "shares retrieved", gin.H{
		"shares": shares,
		"total":  len(shares),
	})
}

func statusFor(err error) int {
	switch {
	case xerrors.Is(err, xerrors.ErrEmptySelection):
		return http.StatusBadRequest
	case xerrors.Is(err, xerrors.ErrInvalidJob), xerrors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case xerrors.Is(err, xerrors.ErrRateLimited):
		return http.StatusTooManyRequests
	case xerrors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, xerrors.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
