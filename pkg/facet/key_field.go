package facet

import (
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/slask-market/pkg/types"
)

// KeyField maps every distinct value of a string facet to the catalog
// positions carrying it. Folded fields key values by types.Fold and keep
// the first spelling seen as label.
type KeyField struct {
	Name   string
	fold   bool
	keys   map[string]*roaring.Bitmap
	labels map[string]string
}

func EmptyKeyField(name string, fold bool) *KeyField {
	return &KeyField{
		Name:   name,
		fold:   fold,
		keys:   map[string]*roaring.Bitmap{},
		labels: map[string]string{},
	}
}

func (f *KeyField) key(value string) string {
	if f.fold {
		return types.Fold(value)
	}
	return value
}

func (f *KeyField) AddValueLink(value string, position uint32) {
	k := f.key(value)
	if bm, ok := f.keys[k]; ok {
		bm.Add(position)
		return
	}
	f.keys[k] = roaring.BitmapOf(position)
	f.labels[k] = value
}

// Match returns the union of the positions for all selected values, or nil
// when nothing is selected (no restriction).
func (f *KeyField) Match(selected types.Set) *roaring.Bitmap {
	if selected.Len() == 0 {
		return nil
	}
	ret := roaring.New()
	for value := range selected {
		if bm, ok := f.keys[f.key(value)]; ok {
			ret.Or(bm)
		}
	}
	return ret
}

// Counts returns how many positions of base carry each value.
func (f *KeyField) Counts(base *roaring.Bitmap) map[string]int {
	ret := make(map[string]int, len(f.keys))
	for k, bm := range f.keys {
		label := f.labels[k]
		if label == "" {
			continue
		}
		ret[label] = int(bm.AndCardinality(base))
	}
	return ret
}

// Values returns the labels of all indexed values in sorted order.
func (f *KeyField) Values() []string {
	ret := slices.Collect(maps.Values(f.labels))
	ret = slices.DeleteFunc(ret, func(s string) bool { return s == "" })
	slices.Sort(ret)
	return ret
}

func (f *KeyField) UniqueCount() int {
	return len(f.keys)
}
