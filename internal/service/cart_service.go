package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/repository"
)

var ErrProductUnavailable = errors.New("product unavailable")

type CartService struct {
	carts    repository.CartStore
	products repository.ProductStore
	logger   *zap.Logger
}

func NewCartService(carts repository.CartStore, products repository.ProductStore, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// Get returns the cart, or an empty cart with that id if none is stored yet.
func (s *CartService) Get(ctx context.Context, id string) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, id)
	if errors.Is(err, repository.ErrCartNotFound) {
		return domain.Cart{ID: id}, nil
	}
	return cart, err
}

// AddItem snapshots the product's title, price and image into the cart at
// this instant. Only active catalog products can be added.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, qty int) (domain.Cart, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.IsActive {
		return domain.Cart{}, fmt.Errorf("%w: %s", ErrProductUnavailable, p.Title)
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.AddItem(p, qty)
	return s.save(ctx, cart)
}

// SetQuantity clamps quantities below 1 to 1; it never removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, qty int) (domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.SetQuantity(productID, qty)
	return s.save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.RemoveItem(productID)
	return s.save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.carts.Delete(ctx, cartID)
}

func (s *CartService) save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart",
			zap.String("cart_id", cart.ID),
			zap.Error(err))
		return domain.Cart{}, err
	}
	return cart, nil
}
