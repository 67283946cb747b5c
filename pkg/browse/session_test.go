package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/types"
	"github.com/stretchr/testify/assert"
)

func workedExample() []types.Product {
	return []types.Product{
		{Id: 1, Name: "iPhone 15 Pro Max", Price: 1300000, Brand: "apple", Category: "brand-new", StorageTier: "256 GB", Rating: 4.8, IsNew: true},
		{Id: 2, Name: "Samsung A15", Price: 230000, Brand: "samsung", Category: "uk-used", StorageTier: "128 GB", Rating: 4.2},
	}
}

func largeCatalog() []types.Product {
	brands := []string{"apple", "samsung", "tecno", "infinix", "xiaomi"}
	ret := make([]types.Product, 0, 40)
	for i := range 40 {
		ret = append(ret, types.Product{
			Id:          types.ProductId(i + 1),
			Name:        fmt.Sprintf("Phone %d", i+1),
			Price:       float64(100000 + (i%8)*50000),
			Brand:       brands[i%len(brands)],
			Category:    types.KnownCategories[i%len(types.KnownCategories)],
			StorageTier: types.KnownStorageTiers[i%len(types.KnownStorageTiers)],
			Rating:      float64(i%5) + 0.5,
			IsNew:       i%3 == 0,
		})
	}
	return ret
}

func loadedCatalog(t *testing.T, products []types.Product) *catalog.Catalog {
	t.Helper()
	c := catalog.New(catalog.StaticProvider(products))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}

func newSession(t *testing.T, products []types.Product) *Session {
	t.Helper()
	s, err := NewSession(loadedCatalog(t, products), 12)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func names(items []types.Product) []string {
	ret := make([]string, 0, len(items))
	for _, p := range items {
		ret = append(ret, p.Name)
	}
	return ret
}

func TestNewSessionNotLoaded(t *testing.T) {
	_, err := NewSession(catalog.New(catalog.StaticProvider(nil)), 12)
	if !errors.Is(err, catalog.ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}
}

func TestWorkedExample(t *testing.T) {
	s := newSession(t, workedExample())

	s.ToggleBrand("apple")
	v := s.Query()
	assert.Equal(t, []string{"iPhone 15 Pro Max"}, names(v.Items))
	assert.Equal(t, 1, v.ResultCount)
	assert.Equal(t, 1, v.ActiveFilterCount)

	s.ClearAll()
	s.SetPriceRange(0, 300000)
	v = s.Query()
	assert.Equal(t, []string{"Samsung A15"}, names(v.Items))
	assert.Equal(t, 0, v.ActiveFilterCount)

	s.ClearAll()
	if err := s.SetSortKey("price-asc"); err != nil {
		t.Fatal(err)
	}
	v = s.Query()
	assert.Equal(t, []string{"Samsung A15", "iPhone 15 Pro Max"}, names(v.Items))

	s.ClearAll()
	s.ToggleCategory(types.CategorySwapDeal)
	v = s.Query()
	assert.Empty(t, v.Items)
	assert.NotNil(t, v.Items)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.Page)
}

func TestQueryIdempotent(t *testing.T) {
	s := newSession(t, largeCatalog())
	s.ToggleBrand("samsung")
	s.ToggleCategory(types.CategoryUkUsed)
	first := s.Query()
	second := s.Query()
	assert.Equal(t, first, second)
}

func TestToggleSymmetry(t *testing.T) {
	s := newSession(t, largeCatalog())
	before := s.State()
	first := s.Query()

	s.ToggleCategory(types.CategoryBrandNew)
	assert.NotEqual(t, first.ResultCount, s.Query().ResultCount)
	s.ToggleCategory(types.CategoryBrandNew)

	assert.True(t, before.Categories.Equal(s.State().Categories))
	assert.Equal(t, first, s.Query())
}

func TestBrandToggleIgnoresCase(t *testing.T) {
	s := newSession(t, workedExample())
	s.ToggleBrand("Apple")
	assert.Equal(t, 1, s.Query().ResultCount)
	s.ToggleBrand("apple")
	assert.Equal(t, 0, s.State().Brands.Len())
	assert.Equal(t, 2, s.Query().ResultCount)
}

func TestMonotonicShrink(t *testing.T) {
	s := newSession(t, largeCatalog())
	steps := []func(){
		func() { s.ToggleBrand("apple") },
		func() { s.ToggleCategory(types.CategoryBrandNew) },
		func() { s.ToggleStorageTier("32 GB") },
		func() { s.SetPriceRange(100000, 400000) },
		func() { s.SetPriceRange(150000, 300000) },
		func() { s.SetTextQuery("phone 1") },
	}
	previous := s.Query().ResultCount
	for i, step := range steps {
		step()
		count := s.Query().ResultCount
		if count > previous {
			t.Errorf("step %d: expected at most %d results, got %d", i, previous, count)
		}
		previous = count
	}
}

func TestInclusivePriceBounds(t *testing.T) {
	s := newSession(t, workedExample())
	s.SetPriceRange(230000, 1300000)
	assert.Equal(t, 2, s.Query().ResultCount)
	s.SetPriceRange(230000, 230000)
	assert.Equal(t, []string{"Samsung A15"}, names(s.Query().Items))
	s.SetPriceRange(1300000, 1300000)
	assert.Equal(t, []string{"iPhone 15 Pro Max"}, names(s.Query().Items))
}

func TestSetPriceRangeClampsAndSwaps(t *testing.T) {
	s := newSession(t, workedExample())
	s.SetPriceRange(2000000, -5)
	assert.Equal(t, types.PriceRange{Min: 230000, Max: 1300000}, s.State().Price)
	s.SetPriceRange(500000, 300000)
	assert.Equal(t, types.PriceRange{Min: 300000, Max: 500000}, s.State().Price)
	assert.Equal(t, 0, s.Query().ResultCount)
}

func TestResetEquivalence(t *testing.T) {
	c := loadedCatalog(t, largeCatalog())
	fresh, err := NewSession(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	want := fresh.Query()

	s, err := NewSession(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	s.ToggleBrand("tecno")
	s.ToggleStorageTier("1 TB")
	s.SetTextQuery("  phone ")
	s.SetPriceRange(200000, 250000)
	_ = s.SetSortKey("rating-desc")
	s.SetPage(3)
	s.Query()
	s.ClearAll()

	got := s.Query()
	assert.Equal(t, want.ResultCount, got.ResultCount)
	assert.Equal(t, want.Items, got.Items)
	assert.True(t, want.State.Equal(got.State))
}

func TestMutationsResetPage(t *testing.T) {
	s := newSession(t, largeCatalog())
	mutate := map[string]func(){
		"category": func() { s.ToggleCategory(types.CategoryUkUsed) },
		"brand":    func() { s.ToggleBrand("apple") },
		"storage":  func() { s.ToggleStorageTier("64 GB") },
		"price":    func() { s.SetPriceRange(0, 1e9) },
		"query":    func() { s.SetTextQuery("") },
		"sort":     func() { _ = s.SetSortKey("name-asc") },
		"clear":    func() { s.ClearAll() },
	}
	for name, fn := range mutate {
		s.SetPage(2)
		fn()
		if s.State().Page != 1 {
			t.Errorf("%s: expected page 1, got %d", name, s.State().Page)
		}
	}
}

func TestPageClamping(t *testing.T) {
	s := newSession(t, largeCatalog())
	v := s.Query()
	assert.Equal(t, 40, v.ResultCount)
	assert.Equal(t, 4, v.TotalPages)
	assert.Len(t, v.Items, 12)

	s.SetPage(4)
	v = s.Query()
	assert.Equal(t, 4, v.Page)
	assert.Len(t, v.Items, 4)

	s.SetPage(99)
	v = s.Query()
	assert.Equal(t, 4, v.Page)
	assert.Equal(t, 4, s.State().Page)

	s.SetPage(-1)
	assert.Equal(t, 1, s.Query().Page)
}

func TestUnknownSortKeyKeepsState(t *testing.T) {
	s := newSession(t, workedExample())
	s.SetPage(2)
	before := s.State()
	err := s.SetSortKey("cheapest")
	if !errors.Is(err, types.ErrUnknownSortKey) {
		t.Errorf("Expected ErrUnknownSortKey, got %v", err)
	}
	assert.True(t, before.Equal(s.State()))
}

func TestSortStability(t *testing.T) {
	s := newSession(t, largeCatalog())
	_ = s.SetSortKey("price-asc")
	s.SetPriceRange(100000, 100000)
	v := s.Query()
	for i := 1; i < len(v.Items); i++ {
		if v.Items[i-1].Id > v.Items[i].Id {
			t.Errorf("Expected catalog order among equal prices, got %d before %d", v.Items[i-1].Id, v.Items[i].Id)
		}
	}
}

func TestTextQueryIsTrimmed(t *testing.T) {
	s := newSession(t, workedExample())
	s.SetTextQuery("  A15 ")
	assert.Equal(t, "A15", s.State().Query)
	assert.Equal(t, []string{"Samsung A15"}, names(s.Query().Items))
}

func TestStateIsNotShared(t *testing.T) {
	s := newSession(t, workedExample())
	before := s.State()
	s.ToggleCategory(types.CategoryBrandNew)
	s.ToggleBrand("apple")
	assert.Equal(t, 0, before.Categories.Len())
	assert.Equal(t, 0, before.Brands.Len())
}

func TestSessionFollowsRefresh(t *testing.T) {
	products := workedExample()
	calls := 0
	c := catalog.New(catalog.ProviderFunc(func(ctx context.Context) ([]types.Product, error) {
		calls++
		if calls == 1 {
			return products, nil
		}
		return append(products, types.Product{Id: 3, Name: "Tecno Spark", Price: 90000, Brand: "tecno", Category: "brand-new", StorageTier: "64 GB"}), nil
	}))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	unrestricted, err := NewSession(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	narrowed, err := NewSession(c, 12)
	if err != nil {
		t.Fatal(err)
	}
	narrowed.SetPriceRange(230000, 500000)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	v := unrestricted.Query()
	assert.Equal(t, 3, v.ResultCount)
	assert.Equal(t, types.PriceRange{Min: 90000, Max: 1300000}, v.State.Price)

	v = narrowed.Query()
	assert.Equal(t, types.PriceRange{Min: 230000, Max: 500000}, v.State.Price)
	assert.Equal(t, []string{"Samsung A15"}, names(v.Items))
}
