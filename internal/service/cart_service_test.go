package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/repository"
)

func newCartFixture(t *testing.T) (*CartService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewCartService(store.Carts(), store, zap.NewNop()), store
}

func seedProduct(t *testing.T, store *repository.MemoryStore, p domain.Product) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), p))
}

func TestCartServiceSnapshotsProductAtAddTime(t *testing.T) {
	ctx := context.Background()
	svc, store := newCartFixture(t)
	seedProduct(t, store, domain.Product{
		ID: "p1", Title: "Wiper Blades", PriceCents: 45000, Stock: 5, IsActive: true,
		Images: []domain.Image{{URL: "https://example.com/wiper.jpg"}},
	})

	cart, err := svc.AddItem(ctx, "c1", "p1", 2)
	require.NoError(t, err)
	require.Equal(t, "Wiper Blades", cart.Items[0].Title)
	require.Equal(t, int64(45000), cart.Items[0].PriceCents)
	require.Equal(t, "https://example.com/wiper.jpg", cart.Items[0].Image)

	// price change after add does not touch the line
	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	p.PriceCents = 99000
	require.NoError(t, store.Update(ctx, p))

	cart, err = svc.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, int64(45000), cart.Items[0].PriceCents)
}

func TestCartServiceRejectsUnknownAndInactiveProducts(t *testing.T) {
	ctx := context.Background()
	svc, store := newCartFixture(t)
	seedProduct(t, store, domain.Product{ID: "hidden", Title: "Old Stock", IsActive: false})

	_, err := svc.AddItem(ctx, "c1", "missing", 1)
	require.ErrorIs(t, err, repository.ErrProductNotFound)

	_, err = svc.AddItem(ctx, "c1", "hidden", 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartServiceGetUnknownCartIsEmpty(t *testing.T) {
	svc, _ := newCartFixture(t)
	cart, err := svc.Get(context.Background(), "fresh")
	require.NoError(t, err)
	require.Equal(t, "fresh", cart.ID)
	require.Empty(t, cart.Items)
}

func TestCartServicePersistsMutations(t *testing.T) {
	ctx := context.Background()
	svc, store := newCartFixture(t)
	seedProduct(t, store, domain.Product{ID: "p1", Title: "A", PriceCents: 100, Stock: 9, IsActive: true})
	seedProduct(t, store, domain.Product{ID: "p2", Title: "B", PriceCents: 200, Stock: 9, IsActive: true})

	_, err := svc.AddItem(ctx, "c1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "c1", "p2", 1)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "c1", "p1", -5)
	require.NoError(t, err)
	for _, it := range cart.Items {
		require.GreaterOrEqual(t, it.Quantity, 1)
	}

	cart, err = svc.RemoveItem(ctx, "c1", "p2")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	require.NoError(t, svc.Clear(ctx, "c1"))
	cart, err = svc.Get(ctx, "c1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
