package sorting

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matst80/slask-market/pkg/types"
)

type CompareFunc func(a, b types.Product) int

var comparators = map[types.SortKey]CompareFunc{
	types.SortPriceAsc: func(a, b types.Product) int {
		return cmp.Compare(a.Price, b.Price)
	},
	types.SortPriceDesc: func(a, b types.Product) int {
		return cmp.Compare(b.Price, a.Price)
	},
	types.SortNameAsc: func(a, b types.Product) int {
		return strings.Compare(types.Fold(a.Name), types.Fold(b.Name))
	},
	types.SortRatingDesc: func(a, b types.Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	},
	types.SortNewestFirst: func(a, b types.Product) int {
		if a.IsNew == b.IsNew {
			return 0
		}
		if a.IsNew {
			return -1
		}
		return 1
	},
}

// Comparator returns the ordering for key. Featured has none, it keeps
// catalog order.
func Comparator(key types.SortKey) (CompareFunc, bool) {
	fn, ok := comparators[key]
	return fn, ok
}

// Sort returns a sorted copy of items. Equal elements keep their relative
// input order, so ties fall back to catalog order when items come straight
// from the evaluator.
func Sort(items []types.Product, key types.SortKey) []types.Product {
	ret := slices.Clone(items)
	if ret == nil {
		ret = []types.Product{}
	}
	if fn, ok := Comparator(key); ok {
		slices.SortStableFunc(ret, fn)
	}
	return ret
}
