package browse

import (
	"time"

	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/facet"
	"github.com/matst80/slask-market/pkg/paging"
	"github.com/matst80/slask-market/pkg/sorting"
	"github.com/matst80/slask-market/pkg/types"
)

// View is one rendered result page plus the metrics derived from it.
type View struct {
	Items             []types.Product   `json:"items"`
	ResultCount       int               `json:"resultCount"`
	TotalPages        int               `json:"totalPages"`
	Page              int               `json:"page"`
	PageSize          int               `json:"pageSize"`
	ActiveFilterCount int               `json:"activeFilterCount"`
	Facets            facet.Counts      `json:"facets"`
	PriceBounds       types.PriceRange  `json:"priceBounds"`
	State             types.FilterState `json:"state"`
}

// ActiveFilterCount counts the selected discrete facet values. Text query
// and price range are not counted.
func ActiveFilterCount(f types.FilterState) int {
	return f.Categories.Len() + f.Brands.Len() + f.StorageTiers.Len()
}

// Query runs evaluate, sort, paginate and derive metrics, in that order,
// with the default page size.
func Query(s *catalog.Snapshot, f types.FilterState) View {
	return QueryPage(s, f, paging.DefaultPageSize)
}

// QueryPage is Query with an explicit page size. It does not modify f; the
// clamped page is reported in View.Page and View.State.
func QueryPage(s *catalog.Snapshot, f types.FilterState, pageSize int) View {
	start := time.Now()
	defer func() {
		queries.Inc()
		queryDuration.Observe(time.Since(start).Seconds())
	}()
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	idx := s.Index()
	matching := idx.Evaluate(f)
	sorted := sorting.Sort(matching, f.Sort)
	page := paging.Window(sorted, f.Page, pageSize)

	state := f.Clone()
	state.Page = page.Page
	return View{
		Items:             page.Items,
		ResultCount:       page.Total,
		TotalPages:        page.TotalPages,
		Page:              page.Page,
		PageSize:          pageSize,
		ActiveFilterCount: ActiveFilterCount(f),
		Facets:            idx.Counts(f),
		PriceBounds:       s.PriceBounds(),
		State:             state,
	}
}
