package catalog

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductCache caches product detail reads. The Redis implementation lives
// in the infrastructure layer; a nil cache disables caching.
type ProductCache interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, bool)
	SetProduct(ctx context.Context, product *ProductResponse)
	InvalidateProduct(ctx context.Context, productID uuid.UUID)
}

// ProductService handles storefront and admin product operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	cache      ProductCache
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, categories: categories, logger: logger}
}

// SetCache wires the product detail cache
func (s *ProductService) SetCache(cache ProductCache) {
	s.cache = cache
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Unit, req.Price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Origin = req.Origin

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product, serving a cached copy when available
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetProduct(ctx, id); ok {
			return cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	if s.cache != nil {
		s.cache.SetProduct(ctx, &resp)
	}
	return &resp, nil
}

// Update updates a product and drops its cached copy
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Origin); err != nil {
		return nil, err
	}
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product. Historical order items keep their snapshots;
// their product reference goes null at the persistence layer.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}

	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListByCategory retrieves products in a category with pagination
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, 0, err
	}

	products, err := s.products.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.CountByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
