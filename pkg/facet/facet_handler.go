package facet

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/slask-market/pkg/types"
)

// Index is an immutable facet index over one catalog snapshot. Positions
// in the bitmaps are indexes into the product slice, so iterating a
// result bitmap yields products in catalog order.
type Index struct {
	products []types.Product
	names    []string
	all      *roaring.Bitmap
	fields   map[FieldId]*KeyField
}

// NewIndex indexes products. The slice is kept, not copied; callers must
// not modify it afterwards.
func NewIndex(products []types.Product) *Index {
	idx := &Index{
		products: products,
		names:    make([]string, len(products)),
		all:      roaring.New(),
		fields: map[FieldId]*KeyField{
			CategoryField: EmptyKeyField(CategoryField.String(), false),
			BrandField:    EmptyKeyField(BrandField.String(), true),
			StorageField:  EmptyKeyField(StorageField.String(), false),
		},
	}
	for i, p := range products {
		pos := uint32(i)
		idx.all.Add(pos)
		idx.names[i] = types.Fold(p.Name)
		idx.fields[CategoryField].AddValueLink(p.Category, pos)
		idx.fields[BrandField].AddValueLink(p.Brand, pos)
		idx.fields[StorageField].AddValueLink(p.StorageTier, pos)
	}
	return idx
}

func (i *Index) Len() int {
	return len(i.products)
}

func (i *Index) Field(id FieldId) *KeyField {
	return i.fields[id]
}

func selection(f types.FilterState, id FieldId) types.Set {
	switch id {
	case CategoryField:
		return f.Categories
	case BrandField:
		return f.Brands
	case StorageField:
		return f.StorageTiers
	}
	return nil
}

// textAndPrice scans for the two non-facet filters.
func (i *Index) textAndPrice(f types.FilterState) *roaring.Bitmap {
	query := types.Fold(f.Query)
	ret := roaring.New()
	for pos, p := range i.products {
		if !f.Price.Contains(p.Price) {
			continue
		}
		if query != "" && !containsFolded(i.names[pos], query) {
			continue
		}
		ret.Add(uint32(pos))
	}
	return ret
}

// facets intersects base with every facet selection except skip.
func (i *Index) facets(base *roaring.Bitmap, f types.FilterState, skip FieldId) *roaring.Bitmap {
	ret := base.Clone()
	for _, id := range fieldIds {
		if id == skip {
			continue
		}
		if match := i.fields[id].Match(selection(f, id)); match != nil {
			ret.And(match)
		}
	}
	return ret
}

// Match returns the positions of all products passing f.
func (i *Index) Match(f types.FilterState) *roaring.Bitmap {
	return i.facets(i.textAndPrice(f), f, -1)
}

// Evaluate returns the products passing f in catalog order.
func (i *Index) Evaluate(f types.FilterState) []types.Product {
	ids := i.Match(f)
	ret := make([]types.Product, 0, ids.GetCardinality())
	it := ids.Iterator()
	for it.HasNext() {
		ret = append(ret, i.products[it.Next()])
	}
	return ret
}

func (i *Index) Counts(f types.FilterState) Counts {
	base := i.textAndPrice(f)
	return Counts{
		Categories:   i.fields[CategoryField].Counts(i.facets(base, f, CategoryField)),
		Brands:       i.fields[BrandField].Counts(i.facets(base, f, BrandField)),
		StorageTiers: i.fields[StorageField].Counts(i.facets(base, f, StorageField)),
	}
}
