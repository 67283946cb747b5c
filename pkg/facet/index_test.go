package facet

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/matst80/slask-market/pkg/types"
)

var bounds = types.PriceRange{Min: 0, Max: 2000000}

func testProducts() []types.Product {
	return []types.Product{
		{Id: 1, Name: "iPhone 15 Pro Max", Price: 1300000, Brand: "apple", Category: "brand-new", StorageTier: "256 GB", Rating: 4.8, IsNew: true},
		{Id: 2, Name: "Samsung A15", Price: 230000, Brand: "samsung", Category: "uk-used", StorageTier: "128 GB", Rating: 4.2},
		{Id: 3, Name: "iPhone 13", Price: 520000, Brand: "Apple", Category: "uk-used", StorageTier: "128 GB", Rating: 4.5},
		{Id: 4, Name: "Pixel 8", Price: 610000, Brand: "google", Category: "brand-new", StorageTier: "128 GB", Rating: 4.6, IsNew: true},
		{Id: 5, Name: "Galaxy S23", Price: 900000, Brand: "Samsung", Category: "swap-deal", StorageTier: "256 GB", Rating: 4.7},
	}
}

func stateWith(mod func(f *types.FilterState)) types.FilterState {
	f := types.DefaultFilterState(bounds)
	mod(&f)
	return f
}

func ids(products []types.Product) []types.ProductId {
	ret := make([]types.ProductId, len(products))
	for i, p := range products {
		ret[i] = p.Id
	}
	return ret
}

func TestIndexEvaluateFacets(t *testing.T) {
	idx := NewIndex(testProducts())
	cases := []struct {
		name  string
		state types.FilterState
		want  []types.ProductId
	}{
		{"defaults", stateWith(func(f *types.FilterState) {}), []types.ProductId{1, 2, 3, 4, 5}},
		{"brand folded", stateWith(func(f *types.FilterState) { f.Brands = types.NewSet("APPLE") }), []types.ProductId{1, 3}},
		{"brand or", stateWith(func(f *types.FilterState) { f.Brands = types.NewSet("apple", "google") }), []types.ProductId{1, 3, 4}},
		{"category and brand", stateWith(func(f *types.FilterState) {
			f.Categories = types.NewSet("uk-used")
			f.Brands = types.NewSet("samsung")
		}), []types.ProductId{2}},
		{"storage exact", stateWith(func(f *types.FilterState) { f.StorageTiers = types.NewSet("256 GB") }), []types.ProductId{1, 5}},
		{"storage no fold", stateWith(func(f *types.FilterState) { f.StorageTiers = types.NewSet("256 gb") }), []types.ProductId{}},
		{"text", stateWith(func(f *types.FilterState) { f.Query = "IPHONE" }), []types.ProductId{1, 3}},
		{"text substring", stateWith(func(f *types.FilterState) { f.Query = "xel" }), []types.ProductId{4}},
		{"price inclusive", stateWith(func(f *types.FilterState) { f.Price = types.PriceRange{Min: 230000, Max: 610000} }), []types.ProductId{2, 3, 4}},
		{"unknown category", stateWith(func(f *types.FilterState) { f.Categories = types.NewSet("refurbished") }), []types.ProductId{}},
	}
	for _, c := range cases {
		got := ids(idx.Evaluate(c.state))
		if !slices.Equal(got, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func randomCatalog(r *rand.Rand, n int) []types.Product {
	brands := []string{"apple", "Apple", "samsung", "google", "tecno", "infinix"}
	ret := make([]types.Product, n)
	for i := range ret {
		ret[i] = types.Product{
			Id:          types.ProductId(i + 1),
			Name:        fmt.Sprintf("%s phone %d", brands[r.Intn(len(brands))], r.Intn(50)),
			Price:       float64(r.Intn(100) * 10000),
			Brand:       brands[r.Intn(len(brands))],
			Category:    types.KnownCategories[r.Intn(len(types.KnownCategories))],
			StorageTier: types.KnownStorageTiers[r.Intn(len(types.KnownStorageTiers))],
			Rating:      float64(r.Intn(51)) / 10,
			IsNew:       r.Intn(2) == 0,
		}
	}
	return ret
}

func randomState(r *rand.Rand) types.FilterState {
	f := types.DefaultFilterState(types.PriceRange{Min: 0, Max: 990000})
	for _, c := range types.KnownCategories {
		if r.Intn(4) == 0 {
			f.Categories = f.Categories.Toggle(c)
		}
	}
	for _, b := range []string{"APPLE", "samsung", "nokia"} {
		if r.Intn(4) == 0 {
			f.Brands = f.Brands.ToggleFold(b)
		}
	}
	for _, s := range types.KnownStorageTiers {
		if r.Intn(5) == 0 {
			f.StorageTiers = f.StorageTiers.Toggle(s)
		}
	}
	if r.Intn(3) == 0 {
		f.Query = []string{"phone 1", "APPLE", "z"}[r.Intn(3)]
	}
	if r.Intn(2) == 0 {
		f.Price = types.PriceRange{Min: float64(r.Intn(50) * 10000), Max: float64(500000 + r.Intn(50)*10000)}
	}
	return f
}

func TestIndexMatchesScanningFilter(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	products := randomCatalog(r, 500)
	idx := NewIndex(products)
	for i := 0; i < 200; i++ {
		f := randomState(r)
		want := ids(Filter(products, f))
		got := ids(idx.Evaluate(f))
		if !slices.Equal(got, want) {
			t.Fatalf("state %+v: index gave %d items, scan gave %d", f, len(got), len(want))
		}
	}
}

func TestIndexEmptyCatalog(t *testing.T) {
	idx := NewIndex(nil)
	got := idx.Evaluate(types.DefaultFilterState(types.PriceRange{}))
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", got)
	}
	counts := idx.Counts(types.DefaultFilterState(types.PriceRange{}))
	if len(counts.Brands) != 0 {
		t.Errorf("Expected no brand counts, got %v", counts.Brands)
	}
}

func TestIndexCountsIgnoreOwnSelection(t *testing.T) {
	idx := NewIndex(testProducts())
	f := stateWith(func(f *types.FilterState) {
		f.Brands = types.NewSet("apple")
		f.Categories = types.NewSet("uk-used")
	})
	counts := idx.Counts(f)

	// brand counts only see the category filter
	if counts.Brands["apple"] != 1 || counts.Brands["samsung"] != 1 || counts.Brands["google"] != 0 {
		t.Errorf("Unexpected brand counts %v", counts.Brands)
	}
	// category counts only see the brand filter
	if counts.Categories["brand-new"] != 1 || counts.Categories["uk-used"] != 1 || counts.Categories["swap-deal"] != 0 {
		t.Errorf("Unexpected category counts %v", counts.Categories)
	}
	if counts.StorageTiers["128 GB"] != 1 || counts.StorageTiers["256 GB"] != 0 {
		t.Errorf("Unexpected storage counts %v", counts.StorageTiers)
	}
}

func TestKeyFieldValues(t *testing.T) {
	idx := NewIndex(testProducts())
	brands := idx.Field(BrandField).Values()
	if !slices.Equal(brands, []string{"apple", "google", "samsung"}) {
		t.Errorf("Expected first seen spellings, got %v", brands)
	}
	if idx.Field(StorageField).UniqueCount() != 2 {
		t.Errorf("Expected 2 storage tiers, got %d", idx.Field(StorageField).UniqueCount())
	}
}
