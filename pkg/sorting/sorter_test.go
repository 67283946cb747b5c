package sorting

import (
	"slices"
	"testing"

	"github.com/matst80/slask-market/pkg/types"
)

func catalog() []types.Product {
	return []types.Product{
		{Id: 1, Name: "b phone", Price: 300, Rating: 4.0, IsNew: false},
		{Id: 2, Name: "A phone", Price: 100, Rating: 4.5, IsNew: true},
		{Id: 3, Name: "c phone", Price: 300, Rating: 4.0, IsNew: false},
		{Id: 4, Name: "B Phone", Price: 100, Rating: 5.0, IsNew: true},
		{Id: 5, Name: "a phone", Price: 200, Rating: 4.5, IsNew: false},
	}
}

func order(items []types.Product) []types.ProductId {
	ret := make([]types.ProductId, len(items))
	for i, p := range items {
		ret[i] = p.Id
	}
	return ret
}

func TestSortKeys(t *testing.T) {
	cases := map[types.SortKey][]types.ProductId{
		types.SortFeatured:    {1, 2, 3, 4, 5},
		types.SortPriceAsc:    {2, 4, 5, 1, 3},
		types.SortPriceDesc:   {1, 3, 5, 2, 4},
		types.SortNameAsc:     {2, 5, 1, 4, 3},
		types.SortRatingDesc:  {4, 2, 5, 1, 3},
		types.SortNewestFirst: {2, 4, 1, 3, 5},
	}
	for key, want := range cases {
		got := order(Sort(catalog(), key))
		if !slices.Equal(got, want) {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	items := catalog()
	Sort(items, types.SortPriceAsc)
	if !slices.Equal(order(items), []types.ProductId{1, 2, 3, 4, 5}) {
		t.Errorf("Input was reordered: %v", order(items))
	}
}

func TestSortStableForEqualKeys(t *testing.T) {
	items := make([]types.Product, 100)
	for i := range items {
		items[i] = types.Product{Id: types.ProductId(i), Price: float64(i % 3), IsNew: i%2 == 0}
	}
	for _, key := range types.SortKeys {
		sorted := Sort(items, key)
		fn, ok := Comparator(key)
		if !ok {
			continue
		}
		for i := 1; i < len(sorted); i++ {
			if fn(sorted[i-1], sorted[i]) == 0 && sorted[i-1].Id > sorted[i].Id {
				t.Fatalf("%s: equal elements %d and %d out of catalog order", key, sorted[i-1].Id, sorted[i].Id)
			}
		}
	}
}

func TestSortEmpty(t *testing.T) {
	got := Sort(nil, types.SortNameAsc)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty slice, got %v", got)
	}
}
