package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore is the demo/offline backend: an in-process store guarded by a
// single mutex, holding products and orders newest-first the way the real
// backend returns them. It backs all three stores plus demo seeding.
type MemoryStore struct {
	mu       sync.RWMutex
	products []domain.Product
	orders   []domain.Order
	carts    map[string]domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]domain.Cart)}
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (s *MemoryStore) GetBySlug(_ context.Context, slug string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (s *MemoryStore) Create(_ context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product{p}, s.products...)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return nil
		}
	}
	return ErrProductNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// OrderStore backed by the same store.
type MemoryOrderStore struct{ s *MemoryStore }

func (s *MemoryStore) Orders() *MemoryOrderStore { return &MemoryOrderStore{s: s} }

func (m *MemoryOrderStore) List(_ context.Context) ([]domain.Order, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]domain.Order, len(m.s.orders))
	for i, o := range m.s.orders {
		out[i] = copyOrder(o)
	}
	return out, nil
}

func (m *MemoryOrderStore) Get(_ context.Context, id string) (domain.Order, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, o := range m.s.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (m *MemoryOrderStore) Create(_ context.Context, o domain.Order) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.orders = append([]domain.Order{copyOrder(o)}, m.s.orders...)
	return nil
}

func (m *MemoryOrderStore) Update(_ context.Context, o domain.Order) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.orders {
		if m.s.orders[i].ID == o.ID {
			m.s.orders[i] = copyOrder(o)
			return nil
		}
	}
	return ErrOrderNotFound
}

// CartStore backed by the same store.
type MemoryCartStore struct{ s *MemoryStore }

func (s *MemoryStore) Carts() *MemoryCartStore { return &MemoryCartStore{s: s} }

func (m *MemoryCartStore) Get(_ context.Context, id string) (domain.Cart, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	c, ok := m.s.carts[id]
	if !ok {
		return domain.Cart{}, ErrCartNotFound
	}
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c, nil
}

func (m *MemoryCartStore) Save(_ context.Context, c domain.Cart) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	m.s.carts[c.ID] = c
	return nil
}

func (m *MemoryCartStore) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.carts, id)
	return nil
}

// copyOrder detaches the items slice so callers can never mutate stored
// snapshots in place.
func copyOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.Payment != nil {
		p := *o.Payment
		o.Payment = &p
	}
	return o
}

// SeedIfEmpty loads the Talex demo catalog and one historical order. It is
// idempotent: a store that already holds products is left alone.
func (s *MemoryStore) SeedIfEmpty(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) > 0 {
		return nil
	}

	seeded := []domain.Product{
		{
			ID:         uuid.New().String(),
			Title:      "3D Steering Wheel Covers (Assorted)",
			Slug:       "3d-steering-wheel-covers",
			SKU:        "SWC-3D",
			Brand:      "Talex",
			Category:   domain.CategoryCarAccessories,
			PriceCents: 80000,
			Stock:      12,
			IsActive:   true,
			Images:     []domain.Image{{URL: "https://picsum.photos/seed/talex-swc/600/400"}},
		},
		{
			ID:         uuid.New().String(),
			Title:      "Metallic Wiper Blades (Pair)",
			Slug:       "metallic-wiper-blades",
			SKU:        "WIPER-METAL",
			Brand:      "Talex",
			Category:   domain.CategoryCarAccessories,
			PriceCents: 45000,
			Stock:      20,
			IsActive:   true,
			Images:     []domain.Image{{URL: "https://picsum.photos/seed/talex-wiper/600/400"}},
		},
	}
	for i := 0; i < 6; i++ {
		brand := "Talex"
		if i%2 == 1 {
			brand = "Bosch"
		}
		stock := 12
		if i%3 == 0 {
			stock = 0
		}
		seeded = append(seeded, domain.Product{
			ID:         uuid.New().String(),
			Title:      fmt.Sprintf("Premium Car Accessory %d", i+1),
			Slug:       fmt.Sprintf("premium-car-accessory-%d", i+1),
			SKU:        fmt.Sprintf("SKU%d", i+1),
			Brand:      brand,
			Category:   domain.CategoryCarAccessories,
			PriceCents: 249900,
			Stock:      stock,
			IsActive:   true,
			Images:     []domain.Image{{URL: fmt.Sprintf("https://picsum.photos/seed/talex-%d/600/400", i)}},
		})
	}
	s.products = seeded

	s.orders = []domain.Order{{
		ID:        "1725690123",
		CreatedAt: time.Now().UTC(),
		Name:      "Talex Customer",
		Phone:     "254700000000",
		Address:   "Kirinyaga Rd - Kumasi Rd Jct, Nairobi",
		Status:    domain.OrderStatusPaid,
		Payment: &domain.Payment{
			Status:  domain.PaymentStatusConfirmed,
			Receipt: "QHX3ABC123",
			Phone:   "254722690154",
		},
		Items: []domain.OrderItem{
			{Title: "3D Steering Wheel Covers (Assorted)", Quantity: 1, PriceCents: 80000, Image: "https://picsum.photos/seed/talex-swc/120/120"},
			{Title: "Metallic Wiper Blades (Pair)", Quantity: 1, PriceCents: 45900, Image: "https://picsum.photos/seed/talex-wiper/120/120"},
		},
	}}

	return nil
}
