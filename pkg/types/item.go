package types

type ProductId uint32

// Product is a single catalog record. Price is a whole currency amount
// without minor units.
type Product struct {
	Id          ProductId `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	StorageTier string    `json:"storage"`
	InStock     bool      `json:"inStock"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviews"`
	IsNew       bool      `json:"isNew"`
}

const (
	CategoryBrandNew     = "brand-new"
	CategoryUkUsed       = "uk-used"
	CategoryNigerianUsed = "nigerian-used"
	CategorySwapDeal     = "swap-deal"
)

var KnownCategories = []string{
	CategoryBrandNew,
	CategoryUkUsed,
	CategoryNigerianUsed,
	CategorySwapDeal,
}

var KnownStorageTiers = []string{
	"32 GB",
	"64 GB",
	"128 GB",
	"256 GB",
	"512 GB",
	"1 TB",
}

func IsKnownCategory(code string) bool {
	for _, c := range KnownCategories {
		if c == code {
			return true
		}
	}
	return false
}

func IsKnownStorageTier(tier string) bool {
	for _, t := range KnownStorageTiers {
		if t == tier {
			return true
		}
	}
	return false
}
