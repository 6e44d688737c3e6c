package repository

import (
	"context"
	"errors"

	"github.com/alex-njugi/talex-app/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartNotFound    = errors.New("cart not found")
)

// ProductStore persists the catalog. List returns products newest-first.
type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OrderStore persists orders. Orders are never deleted, only updated.
type OrderStore interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Create(ctx context.Context, o domain.Order) error
	Update(ctx context.Context, o domain.Order) error
}

// CartStore persists carts across sessions, keyed by cart id.
type CartStore interface {
	Get(ctx context.Context, id string) (domain.Cart, error)
	Save(ctx context.Context, c domain.Cart) error
	Delete(ctx context.Context, id string) error
}

// Seeder loads demo data into an empty store. Implementations against a real
// backend are a no-op.
type Seeder interface {
	SeedIfEmpty(ctx context.Context) error
}
