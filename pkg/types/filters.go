package types

// FilterState describes the current selections of one browsing session.
// It is a plain value; Set fields are replaced, never modified in place,
// so copies handed out stay stable.
type FilterState struct {
	Query        string     `json:"query"`
	Categories   Set        `json:"categories"`
	Brands       Set        `json:"brands"`
	StorageTiers Set        `json:"storage"`
	Price        PriceRange `json:"price"`
	Sort         SortKey    `json:"sort"`
	Page         int        `json:"page"`
}

// DefaultFilterState is the state a fresh session starts in for a catalog
// with the given price bounds.
func DefaultFilterState(bounds PriceRange) FilterState {
	return FilterState{
		Query:        "",
		Categories:   Set{},
		Brands:       Set{},
		StorageTiers: Set{},
		Price:        bounds,
		Sort:         SortFeatured,
		Page:         1,
	}
}

func (f FilterState) Clone() FilterState {
	f.Categories = f.Categories.Clone()
	f.Brands = f.Brands.Clone()
	f.StorageTiers = f.StorageTiers.Clone()
	return f
}

func (f FilterState) Equal(other FilterState) bool {
	return f.Query == other.Query &&
		f.Categories.Equal(other.Categories) &&
		f.Brands.Equal(other.Brands) &&
		f.StorageTiers.Equal(other.StorageTiers) &&
		f.Price == other.Price &&
		f.Sort == other.Sort &&
		f.Page == other.Page
}
