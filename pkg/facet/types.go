package facet

type FieldId int

const (
	CategoryField FieldId = iota
	BrandField
	StorageField
)

var fieldIds = []FieldId{CategoryField, BrandField, StorageField}

func (id FieldId) String() string {
	switch id {
	case CategoryField:
		return "category"
	case BrandField:
		return "brand"
	case StorageField:
		return "storage"
	}
	return "unknown"
}

// Counts holds, per facet value, the number of results a query would have
// if that facet's own selection were ignored. Text and price filters and
// the other facets still apply.
type Counts struct {
	Categories   map[string]int `json:"categories"`
	Brands       map[string]int `json:"brands"`
	StorageTiers map[string]int `json:"storage"`
}
