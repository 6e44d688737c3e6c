package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/alex-njugi/talex-app/internal/domain"
)

func TestMemoryStoreProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := domain.Product{ID: "p1", Title: "Wiper Blades", Slug: "wiper-blades", PriceCents: 45000, IsActive: true}
	require.NoError(t, s.Create(ctx, p))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, p, got)

	got, err = s.GetBySlug(ctx, "wiper-blades")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)

	p.PriceCents = 50000
	require.NoError(t, s.Update(ctx, p))
	got, _ = s.Get(ctx, "p1")
	require.Equal(t, int64(50000), got.PriceCents)

	require.NoError(t, s.Delete(ctx, "p1"))
	_, err = s.Get(ctx, "p1")
	require.ErrorIs(t, err, ErrProductNotFound)

	require.ErrorIs(t, s.Update(ctx, p), ErrProductNotFound)
	require.ErrorIs(t, s.Delete(ctx, "p1"), ErrProductNotFound)
}

func TestMemoryStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, domain.Product{ID: "old"}))
	require.NoError(t, s.Create(ctx, domain.Product{ID: "new"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", list[0].ID)
	require.Equal(t, "old", list[1].ID)
}

func TestMemoryStoreOrderSnapshotsDetached(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orders := s.Orders()

	o := domain.Order{
		ID:     "o1",
		Status: domain.OrderStatusPending,
		Items:  []domain.OrderItem{{Title: "P", Quantity: 1, PriceCents: 500}},
	}
	require.NoError(t, orders.Create(ctx, o))

	// mutating what we stored or what we read must not reach the store
	o.Items[0].PriceCents = 1
	got, err := orders.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, int64(500), got.Items[0].PriceCents)

	got.Items[0].Quantity = 99
	again, err := orders.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemoryStoreCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	carts := NewMemoryStore().Carts()

	_, err := carts.Get(ctx, "c1")
	require.ErrorIs(t, err, ErrCartNotFound)

	c := domain.Cart{ID: "c1", Items: []domain.CartItem{{ProductID: "p", Quantity: 2, PriceCents: 100}}}
	require.NoError(t, carts.Save(ctx, c))

	got, err := carts.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 2, got.Items[0].Quantity)

	require.NoError(t, carts.Delete(ctx, "c1"))
	_, err = carts.Get(ctx, "c1")
	require.ErrorIs(t, err, ErrCartNotFound)
	// deleting an absent cart is not an error
	require.NoError(t, carts.Delete(ctx, "c1"))
}

func TestSeedIfEmptyIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SeedIfEmpty(ctx))
	first, err := s.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, s.SeedIfEmpty(ctx))
	second, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	// the historical order carries a confirmed payment
	orders, err := s.Orders().List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, domain.PaymentStatusConfirmed, orders[0].PaymentState())
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	carts := s.Carts()

	const n = 50
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return s.Create(ctx, domain.Product{ID: fmt.Sprintf("p-%d", i)})
		})
		g.Go(func() error {
			return carts.Save(ctx, domain.Cart{ID: "shared"})
		})
	}
	require.NoError(t, g.Wait())

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
}
