package services

import (
	"github.com/plexdi/studio/modules/website/domain/entities/portfolio"
	"github.com/plexdi/studio/modules/website/domain/entities/pricing"
	"github.com/plexdi/studio/modules/website/domain/entities/product"
	"github.com/plexdi/studio/pkg/serrors"
)

var (
	ErrDesignerNotFound = serrors.NewError("NOT_FOUND", "designer not found", "")
	ErrProductNotFound  = serrors.NewError("NOT_FOUND", "product not found", "")
)

// CatalogService serves the public site's static catalog: designer
// showcases, the pricing tables, and the shop listing. The data is
// embedded, so everything here is pure lookup.
type CatalogService struct {
	designers []portfolio.Designer
	pricing   []pricing.Category
	products  []product.Product
}

func NewCatalogService(
	designers []portfolio.Designer,
	pricingCategories []pricing.Category,
	products []product.Product,
) *CatalogService {
	return &CatalogService{
		designers: designers,
		pricing:   pricingCategories,
		products:  products,
	}
}

func (s *CatalogService) Designers() []portfolio.Designer {
	return s.designers
}

func (s *CatalogService) Designer(id string) (portfolio.Designer, error) {
	for _, d := range s.designers {
		if d.ID == id {
			return d, nil
		}
	}
	return portfolio.Designer{}, ErrDesignerNotFound
}

// Categories returns the showcase tabs for one designer.
func (s *CatalogService) Categories(designerID string) ([]portfolio.Category, error) {
	d, err := s.Designer(designerID)
	if err != nil {
		return nil, err
	}
	return portfolio.BuildCategories(d), nil
}

func (s *CatalogService) PricingCategories() []pricing.Category {
	return s.pricing
}

func (s *CatalogService) Products(filter product.Filter) []product.Product {
	return product.Apply(s.products, filter)
}

func (s *CatalogService) Product(slug string) (product.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return product.Product{}, ErrProductNotFound.WithDetails(slug)
}
