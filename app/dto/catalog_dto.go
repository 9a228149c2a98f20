package dto

// TeamDTO represents an installation team in API responses
type TeamDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name" example:"Team North"`
	Color    *string `json:"color,omitempty" example:"#2d6cdf"`
	IsActive *bool   `json:"is_active"`
}

// FitterDTO represents a fitter in API responses
type FitterDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name" example:"Mark Taylor"`
	Phone    *string `json:"phone,omitempty"`
	TeamID   *uint   `json:"team_id,omitempty"`
	IsActive *bool   `json:"is_active"`
}

// SalespersonDTO represents a salesperson in API responses
type SalespersonDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name" example:"Dave Wilson"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active"`
}

// ListStaffResponse returns the staff directory
type ListStaffResponse struct {
	Message      string           `json:"message"`
	Teams        []TeamDTO        `json:"teams,omitempty"`
	Fitters      []FitterDTO      `json:"fitters,omitempty"`
	Salespersons []SalespersonDTO `json:"salespersons,omitempty"`
}

// BrandDTO represents an appliance brand in API responses
type BrandDTO struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name" example:"Bosch"`
	Website *string `json:"website,omitempty"`
}

// CategoryDTO represents an appliance category in API responses
type CategoryDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name" example:"Ovens"`
	Description *string `json:"description,omitempty"`
}

// ProductDTO represents a catalog product in API responses
type ProductDTO struct {
	ID        uint     `json:"id"`
	ModelCode string   `json:"model_code" example:"HBA5360S0B"`
	Name      string   `json:"name" example:"Bosch Series 6 built-in oven"`
	Price     *float64 `json:"price,omitempty"`
	Brand     *string  `json:"brand,omitempty"`
	Category  *string  `json:"category,omitempty"`
}

// ListProductsRequest filters for listing catalog products
type ListProductsRequest struct {
	BrandID    *uint `json:"brand_id,omitempty"`
	CategoryID *uint `json:"category_id,omitempty"`
	Page       uint  `json:"page,omitempty"`
	PageSize   uint  `json:"page_size,omitempty"`
}

// ListProductsResponse returns a page of catalog products
type ListProductsResponse struct {
	Message  string       `json:"message"`
	Products []ProductDTO `json:"products"`
	Total    int64        `json:"total"`
}

// ListBrandsResponse returns all appliance brands
type ListBrandsResponse struct {
	Message string     `json:"message"`
	Brands  []BrandDTO `json:"brands"`
}

// ListCategoriesResponse returns all appliance categories
type ListCategoriesResponse struct {
	Message    string        `json:"message"`
	Categories []CategoryDTO `json:"categories"`
}
