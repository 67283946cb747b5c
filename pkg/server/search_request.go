package server

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-market/pkg/types"
)

// SearchRequest is the stateless query accepted by /api/search. Repeated
// category, brand and storage parameters select several values in one
// facet.
type SearchRequest struct {
	Query      string   `schema:"query"`
	Categories []string `schema:"category"`
	Brands     []string `schema:"brand"`
	Storage    []string `schema:"storage"`
	Min        *float64 `schema:"min"`
	Max        *float64 `schema:"max"`
	Sort       string   `schema:"sort"`
	Page       int      `schema:"page"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// lenient parameters fall back to their defaults when they fail to parse.
var lenient = map[string]bool{
	"min": true,
	"max": true,
}

func DecodeSearchRequest(query url.Values) (*SearchRequest, error) {
	sr := &SearchRequest{}
	err := decoder.Decode(sr, query)
	if err == nil {
		return sr, nil
	}
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return nil, err
	}
	for key, fieldErr := range multi {
		if !lenient[key] {
			return nil, fieldErr
		}
	}
	return sr, nil
}

// FilterState turns the request into a filter state for a catalog with the
// given bounds. Repeated values collapse into one selection.
func (sr *SearchRequest) FilterState(bounds types.PriceRange) (types.FilterState, error) {
	f := types.DefaultFilterState(bounds)
	if sr.Sort != "" {
		key, err := types.ParseSortKey(sr.Sort)
		if err != nil {
			return f, err
		}
		f.Sort = key
	}
	f.Query = strings.TrimSpace(sr.Query)
	f.Categories = types.NewSet(sr.Categories...)
	f.StorageTiers = types.NewSet(sr.Storage...)
	for _, brand := range sr.Brands {
		if !f.Brands.HasFold(brand) {
			f.Brands[brand] = struct{}{}
		}
	}
	price := bounds
	if sr.Min != nil {
		price.Min = *sr.Min
	}
	if sr.Max != nil {
		price.Max = *sr.Max
	}
	f.Price = price.Clamp(bounds)
	if sr.Page > 0 {
		f.Page = sr.Page
	}
	return f, nil
}
