package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/matst80/slask-market/pkg/facet"
	"github.com/matst80/slask-market/pkg/types"
)

var (
	ErrDuplicateId      = errors.New("duplicate product id")
	ErrNegativePrice    = errors.New("negative or invalid price")
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrNegativeReviews  = errors.New("negative review count")
)

// Snapshot is one immutable catalog load.
type Snapshot struct {
	products []types.Product
	byId     map[types.ProductId]int
	bounds   types.PriceRange
	index    *facet.Index
	version  uint64
	loadedAt time.Time
}

func validate(p types.Product) error {
	if !(p.Price >= 0) || math.IsInf(p.Price, 1) {
		return fmt.Errorf("%w: product %d price %v", ErrNegativePrice, p.Id, p.Price)
	}
	if !(p.Rating >= 0 && p.Rating <= 5) {
		return fmt.Errorf("%w: product %d rating %v", ErrRatingOutOfRange, p.Id, p.Rating)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("%w: product %d reviews %d", ErrNegativeReviews, p.Id, p.ReviewCount)
	}
	return nil
}

// Validate reports the first product a Snapshot would reject, without
// building the index.
func Validate(products []types.Product) error {
	seen := make(map[types.ProductId]struct{}, len(products))
	for _, p := range products {
		if err := validate(p); err != nil {
			return err
		}
		if _, found := seen[p.Id]; found {
			return fmt.Errorf("%w: %d", ErrDuplicateId, p.Id)
		}
		seen[p.Id] = struct{}{}
	}
	return nil
}

// NewSnapshot validates products and computes the price bounds and facet
// index once. The input slice is copied.
func NewSnapshot(products []types.Product) (*Snapshot, error) {
	if err := Validate(products); err != nil {
		return nil, err
	}
	items := slices.Clone(products)
	byId := make(map[types.ProductId]int, len(items))
	bounds := types.PriceRange{}
	for i, p := range items {
		byId[p.Id] = i
		if i == 0 {
			bounds = types.PriceRange{Min: p.Price, Max: p.Price}
		} else {
			bounds.Min = min(bounds.Min, p.Price)
			bounds.Max = max(bounds.Max, p.Price)
		}
	}
	return &Snapshot{
		products: items,
		byId:     byId,
		bounds:   bounds,
		index:    facet.NewIndex(items),
		loadedAt: time.Now(),
	}, nil
}

// GetAll returns a copy of the products in catalog order.
func (s *Snapshot) GetAll() []types.Product {
	return slices.Clone(s.products)
}

func (s *Snapshot) Get(id types.ProductId) (types.Product, bool) {
	i, ok := s.byId[id]
	if !ok {
		return types.Product{}, false
	}
	return s.products[i], true
}

// PriceBounds is the observed min and max price, both 0 for an empty
// catalog.
func (s *Snapshot) PriceBounds() types.PriceRange {
	return s.bounds
}

func (s *Snapshot) Index() *facet.Index {
	return s.index
}

func (s *Snapshot) Len() int {
	return len(s.products)
}

// Version increases with every snapshot published by a Catalog; a
// snapshot that was never published has version 0.
func (s *Snapshot) Version() uint64 {
	return s.version
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
