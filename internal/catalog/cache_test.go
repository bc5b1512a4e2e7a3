package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type stubStore struct {
	values map[string]string
	sets   int
}

func newStubStore() *stubStore {
	return &stubStore{values: map[string]string{}}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", goredis.Nil
}

func (s *stubStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	s.sets++
	return nil
}

func (s *stubStore) CatalogProductKey(id string) string { return "tw:catalog:product:" + id }
func (s *stubStore) CatalogSearchKey(term string) string {
	return "tw:catalog:search:" + term
}

type stubCatalog struct {
	product *Product
	calls   int
}

func (s *stubCatalog) Search(context.Context, string) ([]Product, error) {
	s.calls++
	return []Product{*s.product}, nil
}

func (s *stubCatalog) ByBarcode(context.Context, string) (*Product, error) {
	s.calls++
	return s.product, nil
}

func (s *stubCatalog) Product(context.Context, uuid.UUID) (*Product, error) {
	s.calls++
	return s.product, nil
}

func testProduct() *Product {
	return &Product{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Drip Coffee Beans 1kg",
		SalePrice: decimal.RequireFromString("18.00"),
		Stock:     10,
	}
}

func TestProductLookupHitsCacheOnSecondCall(t *testing.T) {
	t.Parallel()

	inner := &stubCatalog{product: testProduct()}
	cached := NewCachedClient(inner, newStubStore(), time.Minute, nil)

	for i := 0; i < 2; i++ {
		p, err := cached.Product(context.Background(), testProduct().ID)
		if err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
		if p.Stock != 10 {
			t.Fatalf("unexpected stock %d", p.Stock)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.calls)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	inner := &stubCatalog{product: testProduct()}
	store := newStubStore()
	cached := NewCachedClient(inner, store, time.Minute, nil)

	if _, err := cached.Product(context.Background(), testProduct().ID); err != nil {
		t.Fatalf("seed: %v", err)
	}

	inner.product.Stock = 2
	p, err := cached.Refresh(context.Background(), testProduct().ID)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("refresh must bypass the cache, got stock %d", p.Stock)
	}
	if inner.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", inner.calls)
	}

	// Refresh replaces the cached snapshot for subsequent reads.
	p, err = cached.Product(context.Background(), testProduct().ID)
	if err != nil {
		t.Fatalf("read after refresh: %v", err)
	}
	if p.Stock != 2 {
		t.Fatalf("expected refreshed snapshot, got stock %d", p.Stock)
	}
}

func TestSearchCachesResults(t *testing.T) {
	t.Parallel()

	inner := &stubCatalog{product: testProduct()}
	cached := NewCachedClient(inner, newStubStore(), time.Minute, nil)

	for i := 0; i < 3; i++ {
		products, err := cached.Search(context.Background(), "coffee")
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if len(products) != 1 {
			t.Fatalf("expected one product, got %d", len(products))
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected one upstream search, got %d", inner.calls)
	}
}
