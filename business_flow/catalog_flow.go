// Package businessflow contains the core business logic and use cases for staff directory and catalog reads
package businessflow

import (
	"context"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
)

// CatalogFlow serves the staff directory and the appliance catalog
type CatalogFlow interface {
	ListStaff(ctx context.Context) (*dto.ListStaffResponse, error)
	ListProducts(ctx context.Context, request *dto.ListProductsRequest) (*dto.ListProductsResponse, error)
	ListBrands(ctx context.Context) (*dto.ListBrandsResponse, error)
	ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error)
}

// CatalogFlowImpl implements the catalog business flow
type CatalogFlowImpl struct {
	teamRepo        repository.TeamRepository
	fitterRepo      repository.FitterRepository
	salespersonRepo repository.SalespersonRepository
	productRepo     repository.ProductRepository
}

// NewCatalogFlow creates a new catalog flow instance
func NewCatalogFlow(
	teamRepo repository.TeamRepository,
	fitterRepo repository.FitterRepository,
	salespersonRepo repository.SalespersonRepository,
	productRepo repository.ProductRepository,
) CatalogFlow {
	return &CatalogFlowImpl{
		teamRepo:        teamRepo,
		fitterRepo:      fitterRepo,
		salespersonRepo: salespersonRepo,
		productRepo:     productRepo,
	}
}

// ListStaff returns active teams, fitters and salespersons in one payload
func (cf *CatalogFlowImpl) ListStaff(ctx context.Context) (*dto.ListStaffResponse, error) {
	active := true
	filter := models.StaffFilter{IsActive: &active}

	teams, err := cf.teamRepo.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("STAFF_LIST_FAILED", "Failed to list teams", err)
	}
	fitters, err := cf.fitterRepo.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("STAFF_LIST_FAILED", "Failed to list fitters", err)
	}
	salespersons, err := cf.salespersonRepo.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("STAFF_LIST_FAILED", "Failed to list salespersons", err)
	}

	resp := &dto.ListStaffResponse{Message: "Staff retrieved successfully"}
	for _, team := range teams {
		resp.Teams = append(resp.Teams, dto.TeamDTO{
			ID:       team.ID,
			Name:     team.Name,
			Color:    team.Color,
			IsActive: team.IsActive,
		})
	}
	for _, fitter := range fitters {
		resp.Fitters = append(resp.Fitters, dto.FitterDTO{
			ID:       fitter.ID,
			Name:     fitter.Name,
			Phone:    fitter.Phone,
			TeamID:   fitter.TeamID,
			IsActive: fitter.IsActive,
		})
	}
	for _, salesperson := range salespersons {
		resp.Salespersons = append(resp.Salespersons, dto.SalespersonDTO{
			ID:       salesperson.ID,
			Name:     salesperson.Name,
			Email:    salesperson.Email,
			Phone:    salesperson.Phone,
			IsActive: salesperson.IsActive,
		})
	}
	return resp, nil
}

func (cf *CatalogFlowImpl) ListProducts(ctx context.Context, request *dto.ListProductsRequest) (*dto.ListProductsResponse, error) {
	limit, offset, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	active := true
	filter := models.ProductFilter{
		BrandID:    request.BrandID,
		CategoryID: request.CategoryID,
		IsActive:   &active,
	}

	products, err := cf.productRepo.ByFilter(ctx, filter, "name ASC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LIST_FAILED", "Failed to list products", err)
	}
	total, err := cf.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LIST_FAILED", "Failed to count products", err)
	}

	dtos := make([]dto.ProductDTO, 0, len(products))
	for _, product := range products {
		p := dto.ProductDTO{
			ID:        product.ID,
			ModelCode: product.ModelCode,
			Name:      product.Name,
			Price:     product.Price,
		}
		if product.Brand != nil {
			p.Brand = &product.Brand.Name
		}
		if product.Category != nil {
			p.Category = &product.Category.Name
		}
		dtos = append(dtos, p)
	}

	return &dto.ListProductsResponse{
		Message:  "Products retrieved successfully",
		Products: dtos,
		Total:    total,
	}, nil
}

func (cf *CatalogFlowImpl) ListBrands(ctx context.Context) (*dto.ListBrandsResponse, error) {
	brands, err := cf.productRepo.ListBrands(ctx)
	if err != nil {
		return nil, NewBusinessError("BRAND_LIST_FAILED", "Failed to list brands", err)
	}

	dtos := make([]dto.BrandDTO, 0, len(brands))
	for _, brand := range brands {
		dtos = append(dtos, dto.BrandDTO{
			ID:      brand.ID,
			Name:    brand.Name,
			Website: brand.Website,
		})
	}

	return &dto.ListBrandsResponse{
		Message: "Brands retrieved successfully",
		Brands:  dtos,
	}, nil
}

func (cf *CatalogFlowImpl) ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error) {
	categories, err := cf.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	dtos := make([]dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, dto.CategoryDTO{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	return &dto.ListCategoriesResponse{
		Message:    "Categories retrieved successfully",
		Categories: dtos,
	}, nil
}
