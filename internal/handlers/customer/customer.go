// internal/handlers/customer/customer.go
package customer

import (
	"net/http"

	"artisan-catalog-service/internal/domain/customer"
	"artisan-catalog-service/internal/middleware"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/pkg/response"
	service "artisan-catalog-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), artisanID, &req)
	if err != nil {
		response.Error(c, statusFor(err, http.StatusBadRequest), "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created successfully", result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), artisanID, customerID)
	if err != nil {
		response.Error(c, statusFor(err, http.StatusNotFound), "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// ListCustomers retrieves customers with filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), artisanID, &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// UpdateCustomer updates a customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), artisanID, customerID, &req)
	if err != nil {
		response.Error(c, statusFor(err, http.StatusBadRequest), "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated successfully", result)
}

// DeleteCustomer soft deletes a customer
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), artisanID, customerID); err != nil {
		response.Error(c, statusFor(err, http.StatusBadRequest), "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted successfully", nil)
}

// AddTag adds a tag to a customer
func (h *CustomerHandler) AddTag(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	var req struct {
		Tag string `json:"tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.customerService.AddTag(c.Request.Context(), artisanID, customerID, req.Tag); err != nil {
		response.Error(c, statusFor(err, http.StatusBadRequest), "failed to add tag", err)
		return
	}

	response.Success(c, http.StatusOK, "tag added successfully", nil)
}

// RemoveTag removes a tag from a customer
func (h *CustomerHandler) RemoveTag(c *gin.Context) {
	artisanID := middleware.MustGetArtisanID(c)

	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	tag := c.Query("tag")
	if tag == "" {
		response.Error(c, http.StatusBadRequest, "tag is required", nil)
		return
	}

	if err := h.customerService.RemoveTag(c.Request.Context(), artisanID, customerID, tag); err != nil {
		response.Error(c, statusFor(err, http.StatusBadRequest), "failed to remove tag", err)
		return
	}

	response.Success(c, http.StatusOK, "tag removed successfully", nil)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error, fallback int) int {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, xerrors.ErrUnauthorized):
		return http.StatusForbidden
	case xerrors.Is(err, xerrors.ErrConflict):
		return http.StatusConflict
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return fallback
	}
}
