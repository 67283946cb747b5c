package types

import (
	"errors"
	"fmt"
	"strings"
)

type SortKey string

const (
	SortFeatured    SortKey = "featured"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortNameAsc     SortKey = "name-asc"
	SortRatingDesc  SortKey = "rating-desc"
	SortNewestFirst SortKey = "newest-first"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

var SortKeys = []SortKey{
	SortFeatured,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortRatingDesc,
	SortNewestFirst,
}

func (k SortKey) IsValid() bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// ParseSortKey accepts exactly one of the enumerated keys, surrounding
// whitespace aside.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.TrimSpace(value))
	if !key.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, value)
	}
	return key, nil
}
