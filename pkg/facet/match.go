package facet

import (
	"strings"

	"github.com/matst80/slask-market/pkg/types"
)

// Matches reports whether p passes every filter of f. Facets combine with
// AND, selected values inside one facet with OR.
func Matches(p types.Product, f types.FilterState) bool {
	return MatchesText(p, f.Query) &&
		MatchesCategory(p, f.Categories) &&
		MatchesBrand(p, f.Brands) &&
		MatchesStorageTier(p, f.StorageTiers) &&
		MatchesPrice(p, f.Price)
}

// MatchesText is a case-insensitive substring test on the name.
func MatchesText(p types.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(types.Fold(p.Name), types.Fold(query))
}

func MatchesCategory(p types.Product, selected types.Set) bool {
	return selected.Len() == 0 || selected.Has(p.Category)
}

func MatchesBrand(p types.Product, selected types.Set) bool {
	return selected.Len() == 0 || selected.HasFold(p.Brand)
}

// MatchesStorageTier uses exact equality, tiers are fixed labels.
func MatchesStorageTier(p types.Product, selected types.Set) bool {
	return selected.Len() == 0 || selected.Has(p.StorageTier)
}

func MatchesPrice(p types.Product, r types.PriceRange) bool {
	return r.Contains(p.Price)
}

// Filter is the scanning evaluator: it keeps catalog order and allocates
// a new slice.
func Filter(products []types.Product, f types.FilterState) []types.Product {
	ret := make([]types.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, f) {
			ret = append(ret, p)
		}
	}
	return ret
}

func containsFolded(folded, query string) bool {
	return strings.Contains(folded, query)
}
