package browse

import (
	"strings"

	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/paging"
	"github.com/matst80/slask-market/pkg/types"
)

type Source interface {
	Current() (*catalog.Snapshot, error)
}

// Session owns the filter state of one browsing session. It is not safe
// for concurrent use; every caller holds its own Session.
type Session struct {
	source   Source
	snapshot *catalog.Snapshot
	state    types.FilterState
	pageSize int
}

// NewSession starts at the catalog defaults. It fails with
// catalog.ErrNotLoaded until the first successful load.
func NewSession(source Source, pageSize int) (*Session, error) {
	s, err := source.Current()
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &Session{
		source:   source,
		snapshot: s,
		state:    types.DefaultFilterState(s.PriceBounds()),
		pageSize: pageSize,
	}, nil
}

// State returns the current filter state. The returned value is never
// modified by later mutations.
func (s *Session) State() types.FilterState {
	return s.state
}

// sync picks up a refreshed catalog and re-clamps the price range into
// the new bounds. A range covering the old bounds follows the new bounds.
func (s *Session) sync() {
	current, err := s.source.Current()
	if err != nil || current == s.snapshot {
		return
	}
	old := s.snapshot.PriceBounds()
	bounds := current.PriceBounds()
	if s.state.Price == old {
		s.state.Price = bounds
	} else {
		s.state.Price = s.state.Price.Clamp(bounds)
	}
	s.snapshot = current
}

func (s *Session) update(op string, fn func(f *types.FilterState)) {
	s.sync()
	fn(&s.state)
	s.state.Page = 1
	mutations.WithLabelValues(op).Inc()
}

func (s *Session) ToggleCategory(code string) {
	s.update("category", func(f *types.FilterState) {
		f.Categories = f.Categories.Toggle(code)
	})
}

// ToggleBrand flips brand membership ignoring case.
func (s *Session) ToggleBrand(name string) {
	s.update("brand", func(f *types.FilterState) {
		f.Brands = f.Brands.ToggleFold(name)
	})
}

func (s *Session) ToggleStorageTier(tier string) {
	s.update("storage", func(f *types.FilterState) {
		f.StorageTiers = f.StorageTiers.Toggle(tier)
	})
}

// SetPriceRange clamps both ends into the catalog bounds and swaps them
// if needed.
func (s *Session) SetPriceRange(min, max float64) {
	s.update("price", func(f *types.FilterState) {
		f.Price = types.PriceRange{Min: min, Max: max}.Clamp(s.snapshot.PriceBounds())
	})
}

func (s *Session) SetTextQuery(query string) {
	s.update("query", func(f *types.FilterState) {
		f.Query = strings.TrimSpace(query)
	})
}

// SetSortKey rejects unknown keys with types.ErrUnknownSortKey and leaves
// the state untouched.
func (s *Session) SetSortKey(key string) error {
	parsed, err := types.ParseSortKey(key)
	if err != nil {
		return err
	}
	s.update("sort", func(f *types.FilterState) {
		f.Sort = parsed
	})
	return nil
}

// SetPage stores n as is, Query clamps it.
func (s *Session) SetPage(n int) {
	s.sync()
	s.state.Page = n
	mutations.WithLabelValues("page").Inc()
}

func (s *Session) ClearAll() {
	s.update("clear", func(f *types.FilterState) {
		*f = types.DefaultFilterState(s.snapshot.PriceBounds())
	})
}

// Query renders the current state and stores the clamped page.
func (s *Session) Query() View {
	s.sync()
	view := QueryPage(s.snapshot, s.state, s.pageSize)
	s.state.Page = view.Page
	return view
}
