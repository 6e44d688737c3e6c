package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/repository"
)

// ValidationError is a pre-submission input error; handlers surface it next
// to the offending field instead of treating it as a backend failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type CatalogService struct {
	products repository.ProductStore
	logger   *zap.Logger
}

func NewCatalogService(products repository.ProductStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
	}
}

// Browse runs the storefront pipeline; inactive products never appear here.
func (s *CatalogService) Browse(ctx context.Context, q domain.CatalogQuery) ([]domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return q.Apply(all), nil
}

// GetByIDOrSlug resolves a storefront product page key, trying the id first.
func (s *CatalogService) GetByIDOrSlug(ctx context.Context, key string) (domain.Product, error) {
	p, err := s.products.Get(ctx, key)
	if err == nil {
		return p, nil
	}
	return s.products.GetBySlug(ctx, key)
}

// AdminList is the back-office product list: filter, then a fixed-size page.
// The returned total counts the filtered set, not the page.
func (s *CatalogService) AdminList(ctx context.Context, f domain.ProductFilter, page, perPage int) ([]domain.Product, int, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	filtered := f.Apply(all)
	return domain.Paginate(filtered, page, perPage), len(filtered), nil
}

type CreateProductInput struct {
	Title      string
	SKU        string
	Brand      string
	Category   string
	PriceCents int64
	Stock      int
	IsActive   bool
	Images     []domain.Image
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Product{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	category, ok := domain.ParseCategory(in.Category)
	if !ok {
		return domain.Product{}, &ValidationError{Field: "category_id", Reason: "unknown category"}
	}
	if in.PriceCents < 0 {
		return domain.Product{}, &ValidationError{Field: "price_cents", Reason: "must not be negative"}
	}
	if in.Stock < 0 {
		return domain.Product{}, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	p := domain.Product{
		ID:         uuid.New().String(),
		Title:      title,
		Slug:       domain.Slugify(title),
		SKU:        strings.TrimSpace(in.SKU),
		Brand:      strings.TrimSpace(in.Brand),
		Category:   category,
		PriceCents: in.PriceCents,
		Stock:      in.Stock,
		IsActive:   in.IsActive,
		Images:     in.Images,
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create product",
			zap.String("product_id", p.ID),
			zap.Error(err))
		return domain.Product{}, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", p.ID),
		zap.String("slug", p.Slug))
	return p, nil
}

// UpdateProductInput patches a product; nil fields are left untouched.
type UpdateProductInput struct {
	Title      *string
	SKU        *string
	Brand      *string
	Category   *string
	PriceCents *int64
	Stock      *int
	IsActive   *bool
	Images     []domain.Image
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Product{}, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		p.Title = title
		p.Slug = domain.Slugify(title)
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Category != nil {
		category, ok := domain.ParseCategory(*in.Category)
		if !ok {
			return domain.Product{}, &ValidationError{Field: "category_id", Reason: "unknown category"}
		}
		p.Category = category
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return domain.Product{}, &ValidationError{Field: "price_cents", Reason: "must not be negative"}
		}
		p.PriceCents = *in.PriceCents
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, &ValidationError{Field: "stock", Reason: "must not be negative"}
		}
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Images != nil {
		p.Images = in.Images
	}

	if err := s.products.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog going forward. Orders
// keep their snapshots, so history is unaffected.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
