// internal/handlers/profile/profile.go
package profile

import (
	"net/http"

	domain "artisan-catalog-service/internal/domain/artisan"
	"artisan-catalog-service/internal/middleware"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/pkg/response"
	service "artisan-catalog-service/internal/service/artisan"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	artisanService *service.ArtisanService
}

func NewProfileHandler(artisanService *service.ArtisanService) *ProfileHandler {
	return &ProfileHandler{
		artisanService: artisanService,
	}
}

// GetProfile retrieves the authenticated artisan's profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	result, err := h.artisanService.GetProfile(c.Request.Context(), artisanID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "profile not set up yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", result)
}

// UpdateProfile creates or updates the artisan's profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.artisanService.UpdateProfile(c.Request.Context(), artisanID, req)
	if err != nil {
		status := http.StatusInternalServerError
		if xerrors.Is(err, xerrors.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		response.Error(c, status, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", result)
}
