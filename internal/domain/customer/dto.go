// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	Name  string   `json:"name" binding:"required,max=255"`
	Phone string   `json:"phone" binding:"required,max=20"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

type UpdateCustomerRequest struct {
	Name  *string  `json:"name" binding:"omitempty,max=255"`
	Phone *string  `json:"phone" binding:"omitempty,max=20"`
	Notes *string  `json:"notes"`
	Tags  []string `json:"tags"`
}

type CustomerListFilters struct {
	Tag      string `form:"tag"`
	Search   string `form:"search"` // matches name or phone
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type CustomerListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
